package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Security event type constants
const (
	SecurityEventLoginFailed        = "login_failed"
	SecurityEventUnauthorizedAccess = "unauthorized_access"
	SecurityEventSuspiciousActivity = "suspicious_activity"
	SecurityEventRateLimited        = "rate_limited"
	SecurityEventPasswordReset      = "password_reset"
)

// SecurityLog is an append-only audit trail row. IP and user agent are
// resolved from the request when the caller omits them.
type SecurityLog struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	EventType string          `gorm:"size:64;not null;index:idx_security_logs_event_type" json:"event_type"`
	UserID    *uuid.UUID      `gorm:"type:uuid;index:idx_security_logs_user_id" json:"user_id,omitempty"`
	IPAddress *string         `gorm:"type:inet;index:idx_security_logs_ip_address" json:"ip_address,omitempty"`
	UserAgent *string         `gorm:"type:text" json:"user_agent,omitempty"`
	Metadata  json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_security_logs_created_at" json:"created_at"`
}

// TableName returns the table name for SecurityLog
func (SecurityLog) TableName() string { return "security_logs" }

// IsAlertable reports whether the event type triggers the console alert marker.
// No external paging integration exists; this is the hook point.
func (s *SecurityLog) IsAlertable() bool {
	switch s.EventType {
	case SecurityEventLoginFailed, SecurityEventUnauthorizedAccess, SecurityEventSuspiciousActivity:
		return true
	}
	return false
}

// SecurityLogFilter provides filter fields for repository queries
type SecurityLogFilter struct {
	ID            *uint
	EventType     *string
	UserID        *uuid.UUID
	IPAddress     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
