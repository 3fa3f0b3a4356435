package services

import (
	"context"

	"github.com/shopspring/decimal"

	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
)

// UserServicer defines the contract for user management.
type UserServicer interface {
	CreateUser(ctx context.Context, username string, openingBalance decimal.Decimal) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	Deposit(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error)
	Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*models.User, error)
}

// AssetServicer defines the contract for asset administration.
type AssetServicer interface {
	CreateAsset(ctx context.Context, name string, price decimal.Decimal) (*models.Asset, error)
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	UpdateAsset(ctx context.Context, id string, name *string, price *decimal.Decimal) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
}

// WalletLedger owns a user's cash balance and trade/gem counters. Every
// method joins the transaction carried by ctx when there is one.
type WalletLedger interface {
	Debit(ctx context.Context, userID string, amount decimal.Decimal) (*models.User, error)
	Credit(ctx context.Context, userID string, amount decimal.Decimal) (*models.User, error)
	// RecordTrade bumps the trade counter, awards gems and returns the
	// updated user with the number of gems awarded by this call.
	RecordTrade(ctx context.Context, userID string) (*models.User, int64, error)
}

// PortfolioServicer owns a user's holdings and their cost basis.
type PortfolioServicer interface {
	CreatePortfolio(ctx context.Context, userID string) (*models.Portfolio, error)
	GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error)
	Buy(ctx context.Context, userID, assetID string, quantity int64, price decimal.Decimal) (*models.Holding, error)
	Sell(ctx context.Context, userID, assetID string, quantity int64) (*models.Holding, error)
	Value(ctx context.Context, userID string) (decimal.Decimal, error)
	ListHoldings(ctx context.Context, userID string) ([]models.Holding, error)
	GetHolding(ctx context.Context, userID, assetID string) (*models.Holding, error)
}

// TradeResult is the post-settlement state returned to callers.
type TradeResult struct {
	Trade   *models.Trade   `json:"trade"`
	Holding *models.Holding `json:"holding"`
	User    *models.User    `json:"user"`
}

// TradeServicer settles buys and sells atomically.
type TradeServicer interface {
	// ExecuteBuy buys at price, or at the asset's current price when price is nil.
	ExecuteBuy(ctx context.Context, userID, assetID string, quantity int64, price *decimal.Decimal) (*TradeResult, error)
	ExecuteSell(ctx context.Context, userID, assetID string, quantity int64) (*TradeResult, error)
	ListTrades(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
}

// LeaderboardEntry is one row of the public leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	GemCount int64  `json:"gem_count"`
}

// RankingServicer recomputes and reads leaderboard ranks.
type RankingServicer interface {
	AssignRanks(ctx context.Context) ([]LeaderboardEntry, error)
	TopN(ctx context.Context, n int) ([]models.User, error)
	Leaderboard(ctx context.Context, n int) ([]LeaderboardEntry, error)
}

// AuditEntry describes one audited operation. UserID is empty for
// operator actions such as asset administration.
type AuditEntry struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	ClientIP     string
	RequestID    string
	Changes      map[string]any
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Record(ctx context.Context, entry AuditEntry)
}
