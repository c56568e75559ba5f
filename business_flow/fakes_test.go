package businessflow

import (
	"context"
	"sync"
	"time"

	"github.com/sajtem/sajtem-backend/models"
	"gorm.io/gorm"
)

// In-memory repository fakes for flow tests. Only the methods the flows
// exercise carry real behavior.

type fakeShortURLRepo struct {
	mu     sync.Mutex
	rows   map[string]*models.ShortURL
	nextID uint

	saveErr       error
	failSaves     int
	incrementErrs int
}

func newFakeShortURLRepo() *fakeShortURLRepo {
	return &fakeShortURLRepo{rows: make(map[string]*models.ShortURL)}
}

func (r *fakeShortURLRepo) ByID(_ context.Context, id uint) (*models.ShortURL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeShortURLRepo) ByCode(_ context.Context, code string) (*models.ShortURL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[code]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeShortURLRepo) Save(_ context.Context, entity *models.ShortURL) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.failSaves > 0 {
		r.failSaves--
		return gorm.ErrDuplicatedKey
	}
	if _, ok := r.rows[entity.ShortCode]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	entity.ID = r.nextID
	cp := *entity
	r.rows[entity.ShortCode] = &cp
	return nil
}

func (r *fakeShortURLRepo) SaveBatch(ctx context.Context, entities []*models.ShortURL) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeShortURLRepo) ByFilter(_ context.Context, _ models.ShortURLFilter, _ string, limit, offset int) ([]*models.ShortURL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ShortURL
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeShortURLRepo) Count(_ context.Context, _ models.ShortURLFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeShortURLRepo) Exists(ctx context.Context, filter models.ShortURLFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	return c > 0, err
}

func (r *fakeShortURLRepo) IncrementClicks(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErrs > 0 {
		r.incrementErrs--
		return gorm.ErrInvalidDB
	}
	if row, ok := r.rows[code]; ok {
		row.ClickCount++
	}
	return nil
}

func (r *fakeShortURLRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for code, row := range r.rows {
		if row.ExpiresAt != nil && row.ExpiresAt.Before(cutoff) {
			delete(r.rows, code)
			n++
		}
	}
	return n, nil
}

func (r *fakeShortURLRepo) clickCount(code string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[code]; ok {
		return row.ClickCount
	}
	return 0
}

type fakeClickRepo struct {
	mu   sync.Mutex
	rows []*models.ShortURLClick
}

func newFakeClickRepo() *fakeClickRepo {
	return &fakeClickRepo{}
}

func (r *fakeClickRepo) ByID(_ context.Context, _ uint) (*models.ShortURLClick, error) {
	return nil, nil
}

func (r *fakeClickRepo) Save(_ context.Context, entity *models.ShortURLClick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity.ID = uint(len(r.rows) + 1)
	cp := *entity
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeClickRepo) SaveBatch(ctx context.Context, entities []*models.ShortURLClick) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeClickRepo) ByFilter(_ context.Context, _ any, _ string, _, _ int) ([]*models.ShortURLClick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ShortURLClick, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *fakeClickRepo) Count(_ context.Context, _ any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeClickRepo) Exists(ctx context.Context, filter any) (bool, error) {
	c, err := r.Count(ctx, filter)
	return c > 0, err
}

func (r *fakeClickRepo) CountByShortURL(_ context.Context, shortURLID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.rows {
		if row.ShortURLID == shortURLID {
			n++
		}
	}
	return n, nil
}

func (r *fakeClickRepo) all() []*models.ShortURLClick {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ShortURLClick, len(r.rows))
	copy(out, r.rows)
	return out
}

type fakePlanoRepo struct {
	rows map[uint]*models.Plano
}

func newFakePlanoRepo(planos ...*models.Plano) *fakePlanoRepo {
	r := &fakePlanoRepo{rows: make(map[uint]*models.Plano)}
	for _, p := range planos {
		r.rows[p.ID] = p
	}
	return r
}

func (r *fakePlanoRepo) ByID(_ context.Context, id uint) (*models.Plano, error) {
	if row, ok := r.rows[id]; ok {
		return row, nil
	}
	return nil, nil
}

func (r *fakePlanoRepo) Save(_ context.Context, entity *models.Plano) error {
	r.rows[entity.ID] = entity
	return nil
}

func (r *fakePlanoRepo) SaveBatch(ctx context.Context, entities []*models.Plano) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakePlanoRepo) ByFilter(_ context.Context, _ models.PlanoFilter, _ string, _, _ int) ([]*models.Plano, error) {
	var out []*models.Plano
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakePlanoRepo) Count(_ context.Context, _ models.PlanoFilter) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakePlanoRepo) Exists(ctx context.Context, filter models.PlanoFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	return c > 0, err
}

type fakePagamentoRepo struct {
	mu   sync.Mutex
	rows map[string]*models.Pagamento
}

func newFakePagamentoRepo() *fakePagamentoRepo {
	return &fakePagamentoRepo{rows: make(map[string]*models.Pagamento)}
}

func (r *fakePagamentoRepo) ByID(_ context.Context, id uint) (*models.Pagamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakePagamentoRepo) ByGatewayPaymentID(_ context.Context, gatewayPaymentID string) (*models.Pagamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[gatewayPaymentID]; ok {
		return row, nil
	}
	return nil, nil
}

func (r *fakePagamentoRepo) Save(_ context.Context, entity *models.Pagamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[entity.GatewayPaymentID]; ok {
		return gorm.ErrDuplicatedKey
	}
	entity.ID = uint(len(r.rows) + 1)
	r.rows[entity.GatewayPaymentID] = entity
	return nil
}

func (r *fakePagamentoRepo) SaveBatch(ctx context.Context, entities []*models.Pagamento) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakePagamentoRepo) Update(_ context.Context, entity *models.Pagamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[entity.GatewayPaymentID] = entity
	return nil
}

func (r *fakePagamentoRepo) ByFilter(_ context.Context, _ models.PagamentoFilter, _ string, _, _ int) ([]*models.Pagamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Pagamento
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakePagamentoRepo) Count(_ context.Context, _ models.PagamentoFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakePagamentoRepo) Exists(ctx context.Context, filter models.PagamentoFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	return c > 0, err
}

type fakeSecurityLogRepo struct {
	mu   sync.Mutex
	rows []*models.SecurityLog

	saveErr error
}

func newFakeSecurityLogRepo() *fakeSecurityLogRepo {
	return &fakeSecurityLogRepo{}
}

func (r *fakeSecurityLogRepo) ByID(_ context.Context, _ uint) (*models.SecurityLog, error) {
	return nil, nil
}

func (r *fakeSecurityLogRepo) Save(_ context.Context, entity *models.SecurityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	entity.ID = uint(len(r.rows) + 1)
	cp := *entity
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeSecurityLogRepo) SaveBatch(ctx context.Context, entities []*models.SecurityLog) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeSecurityLogRepo) ByFilter(_ context.Context, _ models.SecurityLogFilter, _ string, _, _ int) ([]*models.SecurityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.SecurityLog, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *fakeSecurityLogRepo) Count(_ context.Context, _ models.SecurityLogFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeSecurityLogRepo) Exists(ctx context.Context, filter models.SecurityLogFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	return c > 0, err
}

func (r *fakeSecurityLogRepo) all() []*models.SecurityLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.SecurityLog, len(r.rows))
	copy(out, r.rows)
	return out
}

type fakeRateLimitRepo struct {
	mu   sync.Mutex
	rows []*models.RateLimitLog
}

func newFakeRateLimitRepo() *fakeRateLimitRepo {
	return &fakeRateLimitRepo{}
}

func (r *fakeRateLimitRepo) ByID(_ context.Context, _ uint) (*models.RateLimitLog, error) {
	return nil, nil
}

func (r *fakeRateLimitRepo) Save(_ context.Context, entity *models.RateLimitLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity.ID = uint(len(r.rows) + 1)
	cp := *entity
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeRateLimitRepo) SaveBatch(ctx context.Context, entities []*models.RateLimitLog) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRateLimitRepo) ByFilter(_ context.Context, _ models.RateLimitLogFilter, _ string, _, _ int) ([]*models.RateLimitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.RateLimitLog, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *fakeRateLimitRepo) Count(_ context.Context, _ models.RateLimitLogFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeRateLimitRepo) Exists(ctx context.Context, filter models.RateLimitLogFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	return c > 0, err
}

func (r *fakeRateLimitRepo) CountSince(_ context.Context, identifier string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.rows {
		if row.Identifier == identifier && !row.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRateLimitRepo) OldestSince(_ context.Context, identifier string, since time.Time) (*models.RateLimitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var oldest *models.RateLimitLog
	for _, row := range r.rows {
		if row.Identifier != identifier || row.CreatedAt.Before(since) {
			continue
		}
		if oldest == nil || row.CreatedAt.Before(oldest.CreatedAt) {
			oldest = row
		}
	}
	return oldest, nil
}

func (r *fakeRateLimitRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*models.RateLimitLog
	var n int64
	for _, row := range r.rows {
		if row.CreatedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return n, nil
}
