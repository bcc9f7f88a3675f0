package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
)

const JobSessionSweep = "session-sweep"

type SessionJobs struct {
	store    *session.Store
	interval time.Duration
}

func NewSessionJobs(store *session.Store, interval time.Duration) *SessionJobs {
	return &SessionJobs{
		store:    store,
		interval: interval,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobSessionSweep, j.interval, j.Sweep)
}

// Sweep forgets expired and idle sessions.
func (j *SessionJobs) Sweep(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dropped := j.store.Sweep(); dropped > 0 {
		slog.Debug("Cron: session sweep", "dropped", dropped, "remaining", j.store.Len())
	}
	return nil
}
