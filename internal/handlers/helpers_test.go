package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
	"gemtrade/internal/services"
	"gemtrade/internal/validator"
)

const (
	testUserID  = "0190f5e2-8c3a-7b21-9d4e-1a2b3c4d5e6f"
	testAssetID = "0190f5e2-9d4b-7c32-8e5f-2b3c4d5e6f70"
)

// --- mock services ---

type mockUserService struct {
	createUserFn func(ctx context.Context, username string, openingBalance decimal.Decimal) (*models.User, error)
	getUserFn    func(ctx context.Context, id string) (*models.User, error)
	listUsersFn  func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	depositFn    func(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error)
	withdrawFn   func(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, username string, openingBalance decimal.Decimal) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, username, openingBalance)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, page)
	}
	return &pagination.PageResponse[models.User]{}, nil
}

func (m *mockUserService) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error) {
	if m.depositFn != nil {
		return m.depositFn(ctx, id, amount)
	}
	return &models.User{}, nil
}

func (m *mockUserService) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error) {
	if m.withdrawFn != nil {
		return m.withdrawFn(ctx, id, amount)
	}
	return &models.User{}, nil
}

type mockAssetService struct {
	createAssetFn func(ctx context.Context, name string, price decimal.Decimal) (*models.Asset, error)
	getAssetFn    func(ctx context.Context, id string) (*models.Asset, error)
	listAssetsFn  func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	updateAssetFn func(ctx context.Context, id string, name *string, price *decimal.Decimal) (*models.Asset, error)
	deleteAssetFn func(ctx context.Context, id string) error
}

func (m *mockAssetService) CreateAsset(ctx context.Context, name string, price decimal.Decimal) (*models.Asset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(ctx, name, price)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	if m.getAssetFn != nil {
		return m.getAssetFn(ctx, id)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) ListAssets(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	if m.listAssetsFn != nil {
		return m.listAssetsFn(ctx, page)
	}
	return &pagination.PageResponse[models.Asset]{}, nil
}

func (m *mockAssetService) UpdateAsset(ctx context.Context, id string, name *string, price *decimal.Decimal) (*models.Asset, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(ctx, id, name, price)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) DeleteAsset(ctx context.Context, id string) error {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(ctx, id)
	}
	return nil
}

type mockPortfolioService struct {
	createPortfolioFn func(ctx context.Context, userID string) (*models.Portfolio, error)
	getPortfolioFn    func(ctx context.Context, userID string) (*models.Portfolio, error)
	valueFn           func(ctx context.Context, userID string) (decimal.Decimal, error)
	listHoldingsFn    func(ctx context.Context, userID string) ([]models.Holding, error)
	getHoldingFn      func(ctx context.Context, userID, assetID string) (*models.Holding, error)
}

func (m *mockPortfolioService) CreatePortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	if m.createPortfolioFn != nil {
		return m.createPortfolioFn(ctx, userID)
	}
	return &models.Portfolio{}, nil
}

func (m *mockPortfolioService) GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	if m.getPortfolioFn != nil {
		return m.getPortfolioFn(ctx, userID)
	}
	return &models.Portfolio{}, nil
}

func (m *mockPortfolioService) Buy(context.Context, string, string, int64, decimal.Decimal) (*models.Holding, error) {
	return &models.Holding{}, nil
}

func (m *mockPortfolioService) Sell(context.Context, string, string, int64) (*models.Holding, error) {
	return &models.Holding{}, nil
}

func (m *mockPortfolioService) Value(ctx context.Context, userID string) (decimal.Decimal, error) {
	if m.valueFn != nil {
		return m.valueFn(ctx, userID)
	}
	return decimal.Zero, nil
}

func (m *mockPortfolioService) ListHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	if m.listHoldingsFn != nil {
		return m.listHoldingsFn(ctx, userID)
	}
	return []models.Holding{}, nil
}

func (m *mockPortfolioService) GetHolding(ctx context.Context, userID, assetID string) (*models.Holding, error) {
	if m.getHoldingFn != nil {
		return m.getHoldingFn(ctx, userID, assetID)
	}
	return &models.Holding{}, nil
}

type mockTradeService struct {
	executeBuyFn  func(ctx context.Context, userID, assetID string, quantity int64, price *decimal.Decimal) (*services.TradeResult, error)
	executeSellFn func(ctx context.Context, userID, assetID string, quantity int64) (*services.TradeResult, error)
	listTradesFn  func(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
}

func (m *mockTradeService) ExecuteBuy(ctx context.Context, userID, assetID string, quantity int64, price *decimal.Decimal) (*services.TradeResult, error) {
	if m.executeBuyFn != nil {
		return m.executeBuyFn(ctx, userID, assetID, quantity, price)
	}
	return &services.TradeResult{Trade: &models.Trade{}}, nil
}

func (m *mockTradeService) ExecuteSell(ctx context.Context, userID, assetID string, quantity int64) (*services.TradeResult, error) {
	if m.executeSellFn != nil {
		return m.executeSellFn(ctx, userID, assetID, quantity)
	}
	return &services.TradeResult{Trade: &models.Trade{}}, nil
}

func (m *mockTradeService) ListTrades(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	if m.listTradesFn != nil {
		return m.listTradesFn(ctx, userID, page)
	}
	return &pagination.PageResponse[models.Trade]{}, nil
}

type mockRankingService struct {
	assignRanksFn func(ctx context.Context) ([]services.LeaderboardEntry, error)
	topNFn        func(ctx context.Context, n int) ([]models.User, error)
	leaderboardFn func(ctx context.Context, n int) ([]services.LeaderboardEntry, error)
}

func (m *mockRankingService) AssignRanks(ctx context.Context) ([]services.LeaderboardEntry, error) {
	if m.assignRanksFn != nil {
		return m.assignRanksFn(ctx)
	}
	return nil, nil
}

func (m *mockRankingService) TopN(ctx context.Context, n int) ([]models.User, error) {
	if m.topNFn != nil {
		return m.topNFn(ctx, n)
	}
	return nil, nil
}

func (m *mockRankingService) Leaderboard(ctx context.Context, n int) ([]services.LeaderboardEntry, error) {
	if m.leaderboardFn != nil {
		return m.leaderboardFn(ctx, n)
	}
	return nil, nil
}

type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Record(_ context.Context, entry services.AuditEntry) {
	m.actions = append(m.actions, entry.Action)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]any, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
