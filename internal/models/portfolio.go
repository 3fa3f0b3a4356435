package models

import "github.com/shopspring/decimal"

// Portfolio groups a user's holdings. Each user has at most one.
type Portfolio struct {
	Base
	UserID   string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Holdings []Holding `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
}

// Holding is a position in one asset. Rows are hard-deleted when the
// quantity reaches zero, so a persisted holding always has Quantity > 0.
type Holding struct {
	Base
	PortfolioID string          `gorm:"type:uuid;not null;uniqueIndex:idx_holdings_portfolio_asset" json:"portfolio_id"`
	AssetID     string          `gorm:"type:uuid;not null;uniqueIndex:idx_holdings_portfolio_asset;index" json:"asset_id"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	AvgCost     decimal.Decimal `gorm:"type:text;not null" json:"avg_cost"`
	Name        string          `gorm:"->;-:migration" json:"name"` // Joined from assets at read time
}

// MarketValue returns quantity × price.
func (h *Holding) MarketValue(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(h.Quantity))
}
