package repository

import (
	"context"

	"github.com/sajtem/sajtem-backend/models"
	"gorm.io/gorm"
)

// PlanoRepositoryImpl implements PlanoRepository
type PlanoRepositoryImpl struct {
	*BaseRepository[models.Plano, models.PlanoFilter]
}

func NewPlanoRepository(db *gorm.DB) PlanoRepository {
	return &PlanoRepositoryImpl{BaseRepository: NewBaseRepository[models.Plano, models.PlanoFilter](db)}
}

func (r *PlanoRepositoryImpl) applyFilter(db *gorm.DB, f models.PlanoFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Nome != nil {
		db = db.Where("nome = ?", *f.Nome)
	}
	if f.Ativo != nil {
		db = db.Where("ativo = ?", *f.Ativo)
	}
	return db
}

func (r *PlanoRepositoryImpl) ByFilter(ctx context.Context, filter models.PlanoFilter, orderBy string, limit, offset int) ([]*models.Plano, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Plano{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Plano
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PlanoRepositoryImpl) Count(ctx context.Context, filter models.PlanoFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Plano{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PlanoRepositoryImpl) Exists(ctx context.Context, filter models.PlanoFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
