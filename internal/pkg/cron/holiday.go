package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
)

const JobHolidaySeed = "holiday-seed"

// HolidayJobs makes sure the built-in holidays of the current and next year
// are stored, so custom edits have a baseline to start from.
type HolidayJobs struct {
	holidays holiday.HolidayService
	interval time.Duration
	now      func() time.Time
}

func NewHolidayJobs(holidays holiday.HolidayService, interval time.Duration) *HolidayJobs {
	return &HolidayJobs{
		holidays: holidays,
		interval: interval,
		now:      time.Now,
	}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobHolidaySeed, j.interval, j.Seed)
}

// Seed is idempotent: holidays already stored are skipped.
func (j *HolidayJobs) Seed(ctx context.Context) error {
	year := j.now().Year()
	inserted, err := j.holidays.SeedBuiltin(ctx, year, year+1)
	if err != nil {
		return err
	}
	if inserted > 0 {
		slog.Info("Cron: built-in holidays seeded", "inserted", inserted, "years", []int{year, year + 1})
	}
	return nil
}
