package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sajtem/sajtem-backend/models"
	"gorm.io/gorm"
)

// RateLimitLogRepositoryImpl implements RateLimitLogRepository
type RateLimitLogRepositoryImpl struct {
	*BaseRepository[models.RateLimitLog, models.RateLimitLogFilter]
}

func NewRateLimitLogRepository(db *gorm.DB) RateLimitLogRepository {
	return &RateLimitLogRepositoryImpl{BaseRepository: NewBaseRepository[models.RateLimitLog, models.RateLimitLogFilter](db)}
}

// CountSince counts admitted requests for an identifier inside the trailing window
func (r *RateLimitLogRepositoryImpl) CountSince(ctx context.Context, identifier string, since time.Time) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	err := db.Model(&models.RateLimitLog{}).
		Where("identifier = ? AND created_at >= ?", identifier, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// OldestSince returns the earliest row in the window, used to compute reset_time
func (r *RateLimitLogRepositoryImpl) OldestSince(ctx context.Context, identifier string, since time.Time) (*models.RateLimitLog, error) {
	db := r.getDB(ctx)
	var row models.RateLimitLog
	err := db.Where("identifier = ? AND created_at >= ?", identifier, since).
		Order("created_at ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// DeleteOlderThan removes rows that fell out of every possible window.
// The window query derives counts from rows, so old ones are pure bloat.
func (r *RateLimitLogRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	db := r.getDB(ctx)
	res := db.Where("created_at < ?", cutoff).Delete(&models.RateLimitLog{})
	return res.RowsAffected, res.Error
}

func (r *RateLimitLogRepositoryImpl) applyFilter(db *gorm.DB, f models.RateLimitLogFilter) *gorm.DB {
	if f.Identifier != nil {
		db = db.Where("identifier = ?", *f.Identifier)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	return db
}

func (r *RateLimitLogRepositoryImpl) ByFilter(ctx context.Context, filter models.RateLimitLogFilter, orderBy string, limit, offset int) ([]*models.RateLimitLog, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.RateLimitLog{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.RateLimitLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RateLimitLogRepositoryImpl) Count(ctx context.Context, filter models.RateLimitLogFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.RateLimitLog{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RateLimitLogRepositoryImpl) Exists(ctx context.Context, filter models.RateLimitLogFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
