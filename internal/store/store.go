// Package store is the account store: persistence for users, assets,
// portfolios, holdings and the trade journal. All operations accept a
// context that may carry an open transaction; see Transaction.
package store

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gemtrade/internal/models"
	"gemtrade/internal/pagination"
)

// Position is a holding joined with its asset's current name and price.
type Position struct {
	AssetID  string
	Name     string
	Quantity int64
	Price    decimal.Decimal
}

// RankAssignment pairs a user with a computed leaderboard rank.
type RankAssignment struct {
	UserID string
	Rank   int
}

// Store defines the persistence contract used by the services.
type Store interface {
	// Transaction runs fn inside one transaction carried in the context passed
	// to fn. Calls made with that context join the transaction; a nested
	// Transaction call joins the outer one instead of opening another.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserForUpdate(ctx context.Context, id string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, page pagination.PageRequest) ([]models.User, int64, error)
	RankedUsers(ctx context.Context) ([]models.User, error)
	TopUsers(ctx context.Context, n int) ([]models.User, error)
	UpdateRanks(ctx context.Context, ranks []RankAssignment) error

	CreateAsset(ctx context.Context, asset *models.Asset) error
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context, page pagination.PageRequest) ([]models.Asset, int64, error)
	SaveAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, id string) error
	CountHoldingsForAsset(ctx context.Context, assetID string) (int64, error)

	CreatePortfolio(ctx context.Context, portfolio *models.Portfolio) error
	GetPortfolioByUser(ctx context.Context, userID string) (*models.Portfolio, error)

	GetHolding(ctx context.Context, portfolioID, assetID string) (*models.Holding, error)
	GetHoldingForUpdate(ctx context.Context, portfolioID, assetID string) (*models.Holding, error)
	SaveHolding(ctx context.Context, holding *models.Holding) error
	DeleteHolding(ctx context.Context, holding *models.Holding) error
	ListHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error)
	ListPositions(ctx context.Context, portfolioID string) ([]Position, error)

	CreateTrade(ctx context.Context, trade *models.Trade) error
	ListTrades(ctx context.Context, userID string, page pagination.PageRequest) ([]models.Trade, int64, error)

	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}

type txKey struct{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}

// InTx reports whether ctx carries an open store transaction.
func InTx(ctx context.Context) bool {
	_, ok := txFrom(ctx)
	return ok
}
