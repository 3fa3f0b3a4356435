package models

// AuditLog records sensitive non-trade operations such as deposits and asset changes.
type AuditLog struct {
	Base
	UserID       string `gorm:"index" json:"user_id,omitempty"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	RequestID    string `json:"request_id,omitempty"`
	Changes      string `json:"changes,omitempty"`
}
