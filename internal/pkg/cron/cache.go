package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/cache"
)

const JobCacheSweep = "cache-sweep"

// CacheJobs keeps the request cache from growing with expired entries.
type CacheJobs struct {
	cache    *cache.Cache
	interval time.Duration
}

func NewCacheJobs(c *cache.Cache, interval time.Duration) *CacheJobs {
	return &CacheJobs{
		cache:    c,
		interval: interval,
	}
}

func (j *CacheJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobCacheSweep, j.interval, j.Sweep)
}

// Sweep evicts expired cache entries.
func (j *CacheJobs) Sweep(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if evicted := j.cache.Sweep(); evicted > 0 {
		slog.Debug("Cron: cache sweep", "evicted", evicted, "remaining", j.cache.Len())
	}
	return nil
}
