package services

import (
	"context"
	"testing"

	"gemtrade/internal/models"
	"gemtrade/internal/store"
	"gemtrade/internal/testutil"
)

func TestAuditService_Record(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(store.NewGormStore(db))

	t.Run("with_changes", func(t *testing.T) {
		svc.Record(context.Background(), AuditEntry{
			UserID:       "user-1",
			Action:       "DEPOSIT",
			ResourceType: "user",
			ResourceID:   "user-1",
			ClientIP:     "10.0.0.1",
			RequestID:    "req-1",
			Changes:      map[string]any{"amount": "3"},
		})

		var entry models.AuditLog
		if err := db.Where("action = ?", "DEPOSIT").Take(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.UserID != "user-1" || entry.RequestID != "req-1" || entry.Changes != `{"amount":"3"}` {
			t.Errorf("unexpected entry %+v", entry)
		}
	})

	t.Run("without_changes", func(t *testing.T) {
		svc.Record(context.Background(), AuditEntry{Action: "DELETE_ASSET", ResourceType: "asset", ResourceID: "asset-1"})

		var entry models.AuditLog
		if err := db.Where("action = ?", "DELETE_ASSET").Take(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.Changes != "" || entry.UserID != "" {
			t.Errorf("unexpected entry %+v", entry)
		}
	})

	t.Run("unencodable_changes", func(t *testing.T) {
		svc.Record(context.Background(), AuditEntry{
			Action:       "UPDATE_ASSET",
			ResourceType: "asset",
			Changes:      map[string]any{"bad": make(chan int)},
		})

		var entry models.AuditLog
		if err := db.Where("action = ?", "UPDATE_ASSET").Take(&entry).Error; err != nil {
			t.Fatalf("expected audit entry: %v", err)
		}
		if entry.Changes != "{}" {
			t.Errorf("expected {} changes, got %q", entry.Changes)
		}
	})
}
