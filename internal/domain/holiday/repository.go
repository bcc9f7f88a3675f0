package holiday

import (
	"context"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	// CreateMany inserts the holidays that do not exist yet and returns how
	// many were added.
	CreateMany(ctx context.Context, holidays []Holiday) (int, error)
	Delete(ctx context.Context, id string) error
	ListBetween(ctx context.Context, country string, from, to leave.Date) ([]Holiday, error)
}
