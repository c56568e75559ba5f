// Package scheduler runs background maintenance jobs on a fixed interval
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/sajtem/sajtem-backend/config"
	"github.com/sajtem/sajtem-backend/repository"
	"github.com/sajtem/sajtem-backend/utils"
)

// MaintenanceScheduler periodically purges rows that no request path reads
// anymore: short URLs past their expiry and rate limit entries that fell out
// of every window. Resolution already refuses expired codes, so the purge is
// storage hygiene, not correctness.
type MaintenanceScheduler struct {
	shortURLRepo  repository.ShortURLRepository
	rateLimitRepo repository.RateLimitLogRepository
	interval      time.Duration
	retention     time.Duration
}

func NewMaintenanceScheduler(
	shortURLRepo repository.ShortURLRepository,
	rateLimitRepo repository.RateLimitLogRepository,
	cfg config.MaintenanceConfig,
) *MaintenanceScheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	retention := cfg.RateLimitRetention
	if retention <= 0 {
		retention = 24 * time.Hour
	}

	return &MaintenanceScheduler{
		shortURLRepo:  shortURLRepo,
		rateLimitRepo: rateLimitRepo,
		interval:      interval,
		retention:     retention,
	}
}

// Start launches the cleanup loop. The returned cancel function stops it.
func (s *MaintenanceScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Printf("Maintenance scheduler started (interval=%s, rate limit retention=%s)", s.interval, s.retention)

		for {
			select {
			case <-ctx.Done():
				log.Println("Maintenance scheduler stopped")
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

// runOnce executes one cleanup pass. Each job fails independently.
func (s *MaintenanceScheduler) runOnce(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
	defer cancel()

	deleted, err := s.shortURLRepo.DeleteExpiredBefore(ctx, utils.UTCNow())
	if err != nil {
		log.Printf("Maintenance: failed to purge expired short URLs: %v", err)
	} else if deleted > 0 {
		log.Printf("Maintenance: purged %d expired short URLs", deleted)
	}

	deleted, err = s.rateLimitRepo.DeleteOlderThan(ctx, utils.UTCNowAdd(-s.retention))
	if err != nil {
		log.Printf("Maintenance: failed to purge rate limit rows: %v", err)
	} else if deleted > 0 {
		log.Printf("Maintenance: purged %d stale rate limit rows", deleted)
	}
}
