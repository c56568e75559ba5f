package models

import "time"

// RateLimitLog is one admitted request for a composite identifier
// (logical key + client IP). The current count inside a window is derived
// by range-querying these rows; there is no separate counter state.
type RateLimitLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Identifier string    `gorm:"size:255;not null;index:idx_rate_limit_logs_identifier" json:"identifier"`
	IPAddress  *string   `gorm:"type:inet" json:"ip_address,omitempty"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_rate_limit_logs_created_at" json:"created_at"`
}

// TableName returns the table name for RateLimitLog
func (RateLimitLog) TableName() string { return "rate_limit_logs" }

// RateLimitLogFilter provides filter fields for repository queries
type RateLimitLogFilter struct {
	Identifier   *string
	CreatedAfter *time.Time
}
