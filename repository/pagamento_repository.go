package repository

import (
	"context"
	"errors"

	"github.com/sajtem/sajtem-backend/models"
	"gorm.io/gorm"
)

// PagamentoRepositoryImpl implements PagamentoRepository
type PagamentoRepositoryImpl struct {
	*BaseRepository[models.Pagamento, models.PagamentoFilter]
}

func NewPagamentoRepository(db *gorm.DB) PagamentoRepository {
	return &PagamentoRepositoryImpl{BaseRepository: NewBaseRepository[models.Pagamento, models.PagamentoFilter](db)}
}

func (r *PagamentoRepositoryImpl) ByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*models.Pagamento, error) {
	db := r.getDB(ctx)
	var row models.Pagamento
	if err := db.Where("gateway_payment_id = ?", gatewayPaymentID).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Update persists changes to an existing payment row
func (r *PagamentoRepositoryImpl) Update(ctx context.Context, entity *models.Pagamento) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Save(entity).Error
	return err
}

func (r *PagamentoRepositoryImpl) applyFilter(db *gorm.DB, f models.PagamentoFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.GatewayPaymentID != nil {
		db = db.Where("gateway_payment_id = ?", *f.GatewayPaymentID)
	}
	if f.PlanoID != nil {
		db = db.Where("plano_id = ?", *f.PlanoID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *PagamentoRepositoryImpl) ByFilter(ctx context.Context, filter models.PagamentoFilter, orderBy string, limit, offset int) ([]*models.Pagamento, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Pagamento{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Pagamento
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PagamentoRepositoryImpl) Count(ctx context.Context, filter models.PagamentoFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Pagamento{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PagamentoRepositoryImpl) Exists(ctx context.Context, filter models.PagamentoFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
