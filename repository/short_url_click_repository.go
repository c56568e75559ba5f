package repository

import (
	"context"

	"github.com/sajtem/sajtem-backend/models"
	"gorm.io/gorm"
)

// ShortURLClickRepositoryImpl implements ShortURLClickRepository
type ShortURLClickRepositoryImpl struct {
	*BaseRepository[models.ShortURLClick, any]
}

func NewShortURLClickRepository(db *gorm.DB) ShortURLClickRepository {
	return &ShortURLClickRepositoryImpl{BaseRepository: NewBaseRepository[models.ShortURLClick, any](db)}
}

// ByFilter: since no filter is defined, return with order/limit/offset only
func (r *ShortURLClickRepositoryImpl) ByFilter(ctx context.Context, _ any, orderBy string, limit, offset int) ([]*models.ShortURLClick, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ShortURLClick{})
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.ShortURLClick
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ShortURLClickRepositoryImpl) Count(ctx context.Context, _ any) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	if err := db.Model(&models.ShortURLClick{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ShortURLClickRepositoryImpl) Exists(ctx context.Context, filter any) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *ShortURLClickRepositoryImpl) CountByShortURL(ctx context.Context, shortURLID uint) (int64, error) {
	db := r.getDB(ctx)
	var count int64
	if err := db.Model(&models.ShortURLClick{}).Where("short_url_id = ?", shortURLID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
