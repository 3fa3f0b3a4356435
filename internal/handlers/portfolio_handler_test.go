package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/models"
)

func setupPortfolioRouter(handler *PortfolioHandler) *gin.Engine {
	r := gin.New()
	r.POST("/portfolios", handler.CreatePortfolio)
	r.GET("/portfolios/:user_id", handler.GetPortfolio)
	r.GET("/portfolios/:user_id/value", handler.GetValue)
	r.GET("/portfolios/:user_id/holdings", handler.ListHoldings)
	r.GET("/portfolios/:user_id/holdings/:asset_id", handler.GetHolding)
	return r
}

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("returns 201", func(t *testing.T) {
		svc := &mockPortfolioService{
			createPortfolioFn: func(_ context.Context, userID string) (*models.Portfolio, error) {
				return &models.Portfolio{UserID: userID, Holdings: []models.Holding{}}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/portfolios", `{"user_id":"`+testUserID+`"}`)
		assertStatus(t, rec, http.StatusCreated)
	})

	t.Run("returns 400 for non uuid", func(t *testing.T) {
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, "USD"))
		rec := doRequest(r, http.MethodPost, "/portfolios", `{"user_id":"abc"}`)
		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("returns 409 when exists", func(t *testing.T) {
		svc := &mockPortfolioService{
			createPortfolioFn: func(context.Context, string) (*models.Portfolio, error) {
				return nil, apperrors.ErrPortfolioExists
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, "USD"))
		rec := doRequest(r, http.MethodPost, "/portfolios", `{"user_id":"`+testUserID+`"}`)
		assertStatus(t, rec, http.StatusConflict)
		assertErrorCode(t, parseJSON(t, rec), "PORTFOLIO_ALREADY_EXISTS")
	})
}

func TestPortfolioHandler_GetValue(t *testing.T) {
	svc := &mockPortfolioService{
		valueFn: func(context.Context, string) (decimal.Decimal, error) {
			return decimal.RequireFromString("1234.5"), nil
		},
	}
	r := setupPortfolioRouter(NewPortfolioHandler(svc, "USD"))
	rec := doRequest(r, http.MethodGet, "/portfolios/"+testUserID+"/value", "")
	assertStatus(t, rec, http.StatusOK)

	body := parseJSON(t, rec)
	if body["value"] != "1234.5" || body["display"] != "$1,234.50" || body["user_id"] != testUserID {
		t.Errorf("unexpected body %v", body)
	}
}

func TestPortfolioHandler_Holdings(t *testing.T) {
	t.Run("lists holdings", func(t *testing.T) {
		svc := &mockPortfolioService{
			listHoldingsFn: func(context.Context, string) ([]models.Holding, error) {
				return []models.Holding{{AssetID: testAssetID, Name: "Gold", Quantity: 2}}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, "USD"))
		rec := doRequest(r, http.MethodGet, "/portfolios/"+testUserID+"/holdings", "")
		assertStatus(t, rec, http.StatusOK)
		holdings := parseJSON(t, rec)["holdings"].([]any)
		if len(holdings) != 1 || holdings[0].(map[string]any)["name"] != "Gold" {
			t.Errorf("unexpected holdings %v", holdings)
		}
	})

	t.Run("returns 404 for missing holding", func(t *testing.T) {
		svc := &mockPortfolioService{
			getHoldingFn: func(context.Context, string, string) (*models.Holding, error) {
				return nil, apperrors.ErrHoldingNotFound
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, "USD"))
		rec := doRequest(r, http.MethodGet, "/portfolios/"+testUserID+"/holdings/"+testAssetID, "")
		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "HOLDING_NOT_FOUND")
	})

	t.Run("returns 400 for bad asset id", func(t *testing.T) {
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, "USD"))
		rec := doRequest(r, http.MethodGet, "/portfolios/"+testUserID+"/holdings/gold", "")
		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("returns 404 for missing portfolio", func(t *testing.T) {
		svc := &mockPortfolioService{
			getPortfolioFn: func(context.Context, string) (*models.Portfolio, error) {
				return nil, apperrors.ErrPortfolioNotFound
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc, "USD"))
		rec := doRequest(r, http.MethodGet, "/portfolios/"+testUserID, "")
		assertStatus(t, rec, http.StatusNotFound)
	})
}
