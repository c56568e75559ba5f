package dto

import "time"

// CreateShortURLRequest defines input for creating a short URL.
// OriginalURL must be an absolute URL; anonymous callers are allowed.
type CreateShortURLRequest struct {
	OriginalURL string     `json:"original_url" validate:"required"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" validate:"omitempty"`
}

// CreateShortURLResponse is the created mapping returned to the caller
type CreateShortURLResponse struct {
	ShortURL    string     `json:"short_url"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ResolveShortURLResponse carries the target URL; the client performs the navigation
type ResolveShortURLResponse struct {
	OriginalURL string `json:"original_url"`
}

// ShortURLStatsDTO is one row of the admin listing/export
type ShortURLStatsDTO struct {
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	ClickCount  int64      `json:"click_count"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
