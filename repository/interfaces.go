// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/sajtem/sajtem-backend/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ShortURLRepository defines operations for short URL mappings
type ShortURLRepository interface {
	Repository[models.ShortURL, models.ShortURLFilter]
	ByCode(ctx context.Context, code string) (*models.ShortURL, error)
	IncrementClicks(ctx context.Context, code string) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ShortURLClickRepository defines operations for short URL click events
type ShortURLClickRepository interface {
	Repository[models.ShortURLClick, any]
	CountByShortURL(ctx context.Context, shortURLID uint) (int64, error)
}

// PlanoRepository defines read operations for subscription plans
type PlanoRepository interface {
	Repository[models.Plano, models.PlanoFilter]
}

// PagamentoRepository defines operations for confirmed payments
type PagamentoRepository interface {
	Repository[models.Pagamento, models.PagamentoFilter]
	ByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*models.Pagamento, error)
	Update(ctx context.Context, entity *models.Pagamento) error
}

// SecurityLogRepository defines operations for the append-only audit trail
type SecurityLogRepository interface {
	Repository[models.SecurityLog, models.SecurityLogFilter]
}

// RateLimitLogRepository defines operations for windowed rate limit rows
type RateLimitLogRepository interface {
	Repository[models.RateLimitLog, models.RateLimitLogFilter]
	CountSince(ctx context.Context, identifier string, since time.Time) (int64, error)
	OldestSince(ctx context.Context, identifier string, since time.Time) (*models.RateLimitLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
