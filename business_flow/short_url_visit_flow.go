package businessflow

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sajtem/sajtem-backend/app/dto"
	"github.com/sajtem/sajtem-backend/config"
	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/repository"
	"github.com/sajtem/sajtem-backend/utils"
)

// ShortURLVisitFlow resolves a short code to its original URL and tracks
// the click. The caller performs the navigation; resolution only returns
// the target. Click tracking happens off the request path and must never
// delay or fail the resolution.
// Public flow, no authentication required.
type ShortURLVisitFlow interface {
	Visit(ctx context.Context, code string, metadata *ClientMetadata) (*dto.ResolveShortURLResponse, error)
}

type ShortURLVisitFlowImpl struct {
	shortURLRepo repository.ShortURLRepository
	clickRepo    repository.ShortURLClickRepository
	rc           *redis.Client
	cacheConfig  *config.CacheConfig
}

func NewShortURLVisitFlow(
	shortURLRepo repository.ShortURLRepository,
	clickRepo repository.ShortURLClickRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) ShortURLVisitFlow {
	return &ShortURLVisitFlowImpl{
		shortURLRepo: shortURLRepo,
		clickRepo:    clickRepo,
		rc:           rc,
		cacheConfig:  cacheConfig,
	}
}

// cachedShortURL is the redis representation of a resolved mapping
type cachedShortURL struct {
	ID          uint   `json:"id"`
	OriginalURL string `json:"original_url"`
}

func (f *ShortURLVisitFlowImpl) Visit(ctx context.Context, code string, metadata *ClientMetadata) (*dto.ResolveShortURLResponse, error) {
	if cached := f.fromCache(ctx, code); cached != nil {
		go f.trackClick(cached.ID, code, metadata)
		return &dto.ResolveShortURLResponse{OriginalURL: cached.OriginalURL}, nil
	}

	row, err := f.shortURLRepo.ByCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("SHORT_URL_LOOKUP_FAILED", "Failed to lookup short URL", err)
	}
	if row == nil {
		return nil, ErrShortURLNotFound
	}
	if row.IsExpired() {
		return nil, ErrShortURLExpired
	}

	f.toCache(ctx, row)
	go f.trackClick(row.ID, code, metadata)

	return &dto.ResolveShortURLResponse{OriginalURL: row.OriginalURL}, nil
}

func (f *ShortURLVisitFlowImpl) fromCache(ctx context.Context, code string) *cachedShortURL {
	if f.rc == nil || f.cacheConfig == nil || !f.cacheConfig.Enabled {
		return nil
	}
	bs, err := f.rc.Get(ctx, redisKey(*f.cacheConfig, "shorturl:"+code)).Bytes()
	if err != nil || len(bs) == 0 {
		return nil
	}
	var out cachedShortURL
	if err := json.Unmarshal(bs, &out); err != nil {
		return nil
	}
	return &out
}

// toCache stores the mapping with a TTL capped at the time left until
// expiry, so an expired code is never served from cache.
func (f *ShortURLVisitFlowImpl) toCache(ctx context.Context, row *models.ShortURL) {
	if f.rc == nil || f.cacheConfig == nil || !f.cacheConfig.Enabled {
		return
	}
	ttl := utils.ShortURLCacheTTL
	if row.ExpiresAt != nil {
		until := time.Until(*row.ExpiresAt)
		if until <= 0 {
			return
		}
		if until < ttl {
			ttl = until
		}
	}
	bs, err := json.Marshal(cachedShortURL{ID: row.ID, OriginalURL: row.OriginalURL})
	if err != nil {
		return
	}
	if err := f.rc.Set(ctx, redisKey(*f.cacheConfig, "shorturl:"+row.ShortCode), bs, ttl).Err(); err != nil {
		log.Printf("short url cache write failed for %s: %v", row.ShortCode, err)
	}
}

// trackClick increments the aggregate counter and appends a click row.
// Runs detached from the request; failures are logged and dropped.
func (f *ShortURLVisitFlowImpl) trackClick(shortURLID uint, code string, metadata *ClientMetadata) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := f.shortURLRepo.IncrementClicks(ctx, code); err != nil {
		log.Printf("short url click increment failed for %s: %v", code, err)
	}

	click := &models.ShortURLClick{
		ShortURLID: shortURLID,
		ShortCode:  utils.ToPtr(code),
		CreatedAt:  utils.UTCNow(),
	}
	if metadata != nil {
		if metadata.UserAgent != "" {
			click.UserAgent = utils.ToPtr(metadata.UserAgent)
		}
		if metadata.IPAddress != "" {
			click.IP = utils.ToPtr(metadata.IPAddress)
		}
	}
	if err := f.clickRepo.Save(ctx, click); err != nil {
		log.Printf("short url click insert failed for %s: %v", code, err)
	}
}

func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}
