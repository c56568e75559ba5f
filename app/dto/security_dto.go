package dto

import "time"

// LogSecurityEventRequest defines input for the append-only audit trail.
// IPAddress is resolved from the request when omitted.
type LogSecurityEventRequest struct {
	EventType string         `json:"event_type" validate:"required"`
	UserID    *string        `json:"user_id,omitempty" validate:"omitempty,uuid"`
	Metadata  map[string]any `json:"metadata,omitempty" validate:"omitempty"`
	IPAddress *string        `json:"ip_address,omitempty" validate:"omitempty"`
}

// LogSecurityEventResponse confirms the insert
type LogSecurityEventResponse struct {
	Success bool `json:"success"`
	Logged  bool `json:"logged"`
}

// RateLimitCheckRequest defines input for the advisory sliding-window limiter
type RateLimitCheckRequest struct {
	Identifier    string `json:"identifier" validate:"required"`
	MaxRequests   *int   `json:"max_requests,omitempty" validate:"omitempty,gte=1"`
	WindowMinutes *int   `json:"window_minutes,omitempty" validate:"omitempty,gte=1"`
}

// RateLimitCheckResponse reports the window state. CurrentCount is the
// count before this request was admitted.
type RateLimitCheckResponse struct {
	Allowed      bool      `json:"allowed"`
	CurrentCount int64     `json:"current_count"`
	MaxRequests  int       `json:"max_requests"`
	ResetTime    time.Time `json:"reset_time"`
}
