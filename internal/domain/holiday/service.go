package holiday

import (
	"context"
	"time"
)

type HolidayService interface {
	List(ctx context.Context, req ListHolidaysRequest) ([]Holiday, error)
	ListForMonth(ctx context.Context, year int, month time.Month) ([]Holiday, error)
	Create(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	Delete(ctx context.Context, id string) error
	// SeedBuiltin stores the built-in holidays of the given years.
	SeedBuiltin(ctx context.Context, years ...int) (int, error)
}
