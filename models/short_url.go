// Package models contains domain entities and business models for the Saj Tem backend
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sajtem/sajtem-backend/utils"
)

// ShortURL maps a generated short code to an original URL.
// ShortCode is unique and URL-safe; ClickCount is a best-effort analytics
// counter and is updated outside the redirect critical path.
// CreatedBy is the authenticated caller when present, anonymous creation allowed.
type ShortURL struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ShortCode   string     `gorm:"size:64;not null;uniqueIndex:uk_short_urls_short_code" json:"short_code"`
	OriginalURL string     `gorm:"type:text;not null" json:"original_url"`
	ExpiresAt   *time.Time `gorm:"index:idx_short_urls_expires_at" json:"expires_at,omitempty"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index:idx_short_urls_created_by" json:"created_by,omitempty"`
	ClickCount  int64      `gorm:"not null;default:0" json:"click_count"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_short_urls_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

// TableName returns the table name for ShortURL
func (ShortURL) TableName() string { return "short_urls" }

// IsExpired reports whether the short URL has passed its expiry, if any
func (s *ShortURL) IsExpired() bool {
	return utils.IsExpiredPtr(s.ExpiresAt)
}

// ShortURLFilter provides filter fields for repository queries
type ShortURLFilter struct {
	ID            *uint
	ShortCode     *string
	CreatedBy     *uuid.UUID
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
