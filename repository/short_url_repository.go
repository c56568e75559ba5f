package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sajtem/sajtem-backend/models"
	"gorm.io/gorm"
)

// ShortURLRepositoryImpl implements ShortURLRepository
type ShortURLRepositoryImpl struct {
	*BaseRepository[models.ShortURL, models.ShortURLFilter]
}

func NewShortURLRepository(db *gorm.DB) ShortURLRepository {
	return &ShortURLRepositoryImpl{BaseRepository: NewBaseRepository[models.ShortURL, models.ShortURLFilter](db)}
}

func (r *ShortURLRepositoryImpl) ByCode(ctx context.Context, code string) (*models.ShortURL, error) {
	db := r.getDB(ctx)
	var row models.ShortURL
	if err := db.Where("short_code = ?", code).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// IncrementClicks bumps the analytics counter for a code. Read and update
// are not atomic with resolution; concurrent resolutions may under-count.
func (r *ShortURLRepositoryImpl) IncrementClicks(ctx context.Context, code string) error {
	db := r.getDB(ctx)
	return db.Model(&models.ShortURL{}).
		Where("short_code = ?", code).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

// DeleteExpiredBefore removes mappings whose expiry passed before cutoff.
// Click rows are kept for historical exports.
func (r *ShortURLRepositoryImpl) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	db := r.getDB(ctx)
	res := db.Where("expires_at IS NOT NULL AND expires_at < ?", cutoff).Delete(&models.ShortURL{})
	return res.RowsAffected, res.Error
}

func (r *ShortURLRepositoryImpl) applyFilter(db *gorm.DB, f models.ShortURLFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.ShortCode != nil {
		db = db.Where("short_code = ?", *f.ShortCode)
	}
	if f.CreatedBy != nil {
		db = db.Where("created_by = ?", *f.CreatedBy)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *ShortURLRepositoryImpl) ByFilter(ctx context.Context, filter models.ShortURLFilter, orderBy string, limit, offset int) ([]*models.ShortURL, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ShortURL{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.ShortURL
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ShortURLRepositoryImpl) Count(ctx context.Context, filter models.ShortURLFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ShortURL{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ShortURLRepositoryImpl) Exists(ctx context.Context, filter models.ShortURLFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
