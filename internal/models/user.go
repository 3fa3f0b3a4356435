package models

import "github.com/shopspring/decimal"

// User is a trader with a cash balance and gamification counters.
// Rank stays nil until the first ranking pass.
type User struct {
	Base
	Username   string          `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Balance    decimal.Decimal `gorm:"type:text;not null" json:"balance"`
	GemCount   int64           `gorm:"not null;default:0" json:"gem_count"`
	TradeCount int64           `gorm:"not null;default:0" json:"trade_count"`
	Rank       *int            `json:"rank"`
}
