package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a settled trade.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Trade is the immutable journal entry written in the same transaction as
// the settlement it records.
type Trade struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AssetID     string          `gorm:"type:uuid;not null;index" json:"asset_id"`
	AssetName   string          `gorm:"size:200;not null" json:"asset_name"`
	Side        TradeSide       `gorm:"size:4;not null" json:"side"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:text;not null" json:"price"`
	Total       decimal.Decimal `gorm:"type:text;not null" json:"total"`
	GemsAwarded int64           `gorm:"not null" json:"gems_awarded"`
	TradeCount  int64           `gorm:"not null" json:"trade_count"`
	ExecutedAt  time.Time       `gorm:"not null;index" json:"executed_at"`
}
