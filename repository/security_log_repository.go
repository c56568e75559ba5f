package repository

import (
	"context"

	"github.com/sajtem/sajtem-backend/models"
	"gorm.io/gorm"
)

// SecurityLogRepositoryImpl implements SecurityLogRepository
type SecurityLogRepositoryImpl struct {
	*BaseRepository[models.SecurityLog, models.SecurityLogFilter]
}

func NewSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &SecurityLogRepositoryImpl{BaseRepository: NewBaseRepository[models.SecurityLog, models.SecurityLogFilter](db)}
}

func (r *SecurityLogRepositoryImpl) applyFilter(db *gorm.DB, f models.SecurityLogFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.EventType != nil {
		db = db.Where("event_type = ?", *f.EventType)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.IPAddress != nil {
		db = db.Where("ip_address = ?", *f.IPAddress)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *SecurityLogRepositoryImpl) ByFilter(ctx context.Context, filter models.SecurityLogFilter, orderBy string, limit, offset int) ([]*models.SecurityLog, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SecurityLog{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.SecurityLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SecurityLogRepositoryImpl) Count(ctx context.Context, filter models.SecurityLogFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SecurityLog{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SecurityLogRepositoryImpl) Exists(ctx context.Context, filter models.SecurityLogFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
