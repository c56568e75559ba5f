package models

import "time"

// ShortURLClick represents a single resolution event of a short URL.
// UserAgent and IP capture click-time context; rows are append-only and
// feed the admin export alongside the aggregate counter.
type ShortURLClick struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ShortURLID uint      `gorm:"index:idx_short_url_clicks_short_url_id;not null" json:"short_url_id"`
	ShortCode  *string   `gorm:"size:64;index:idx_short_url_clicks_short_code" json:"short_code,omitempty"`
	UserAgent  *string   `gorm:"type:text" json:"user_agent,omitempty"`
	IP         *string   `gorm:"size:64" json:"ip,omitempty"`
	CreatedAt  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_short_url_clicks_created_at" json:"created_at"`
}

// TableName returns the table name for ShortURLClick
func (ShortURLClick) TableName() string { return "short_url_clicks" }
