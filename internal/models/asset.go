package models

import "github.com/shopspring/decimal"

// Asset is a tradable instrument with a store-resident price.
type Asset struct {
	Base
	Name  string          `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:text;not null" json:"price"`
}
