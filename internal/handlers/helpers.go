package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "gemtrade/internal/errors"
	"gemtrade/internal/middleware"
	"gemtrade/internal/services"
	"gemtrade/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// parsePathID reads a UUID path parameter in canonical form.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. AppErrors keep
// their status and code; anything else becomes a generic internal error.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// bindError wraps a binding failure as INVALID_INPUT.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// auditEntry stamps an audit entry with the caller's address and request ID.
func auditEntry(c *gin.Context, userID, action, resourceType, resourceID string, changes map[string]any) services.AuditEntry {
	return services.AuditEntry{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ClientIP:     c.ClientIP(),
		RequestID:    middleware.RequestID(c),
		Changes:      changes,
	}
}
