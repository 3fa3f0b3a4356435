package models

import (
	"time"

	"gorm.io/gorm"

	"gemtrade/internal/uuid"
)

// Base is embedded by every table. Rows are hard-deleted: a sold-out holding
// or a removed asset must not linger behind a soft-delete marker.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a time-ordered UUIDv7 unless the caller chose an ID.
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
