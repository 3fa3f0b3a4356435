package services

import (
	"context"
	"encoding/json"

	"gemtrade/internal/logger"
	"gemtrade/internal/models"
	"gemtrade/internal/store"
)

// auditService appends entries to the audit trail.
type auditService struct {
	store store.Store
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(s store.Store) AuditServicer {
	return &auditService{store: s}
}

// Record writes the entry outside of any caller transaction. Failures are
// logged and swallowed so an audit outage never fails the audited operation.
func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	row := &models.AuditLog{
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.ClientIP,
		RequestID:    entry.RequestID,
		Changes:      encodeChanges(entry),
	}

	if err := s.store.CreateAuditLog(ctx, row); err != nil {
		logger.Get().Errorw("audit entry not recorded",
			"error", err,
			"action", entry.Action,
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
			"request_id", entry.RequestID,
		)
	}
}

func encodeChanges(entry AuditEntry) string {
	if len(entry.Changes) == 0 {
		return ""
	}
	data, err := json.Marshal(entry.Changes)
	if err != nil {
		logger.Get().Warnw("audit changes not encodable", "error", err, "action", entry.Action)
		return "{}"
	}
	return string(data)
}
