// Package models defines the GORM models persisted by gemtrade.
package models

// All lists every model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Asset{},
		&Portfolio{},
		&Holding{},
		&Trade{},
		&AuditLog{},
	}
}
