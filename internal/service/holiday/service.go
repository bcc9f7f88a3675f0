package holiday

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

type HolidayServiceImpl struct {
	repo    holiday.HolidayRepository
	country string
}

// NewHolidayService builds the service. repo may be nil, in which case only
// the built-in calendar is served and writes fail with ErrStoreNotAvailable.
func NewHolidayService(repo holiday.HolidayRepository, country string) holiday.HolidayService {
	if country == "" {
		country = holiday.DefaultCountry
	}
	return &HolidayServiceImpl{repo: repo, country: country}
}

// List implements holiday.HolidayService. Years without any stored holiday
// fall back to the built-in list.
func (s *HolidayServiceImpl) List(ctx context.Context, req holiday.ListHolidaysRequest) ([]holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	country := req.Country
	if country == "" {
		country = s.country
	}

	var stored []holiday.Holiday
	if s.repo != nil {
		var err error
		stored, err = s.repo.ListBetween(ctx, country, req.From, req.To)
		if err != nil {
			slog.Warn("Failed to load stored holidays, using built-in list",
				"from", req.From.String(),
				"to", req.To.String(),
				"error", err)
			stored = nil
		}
	}

	storedYears := make(map[int]bool)
	for _, h := range stored {
		storedYears[h.Date.Year] = true
	}

	result := append([]holiday.Holiday{}, stored...)
	for year := req.From.Year; year <= req.To.Year; year++ {
		if storedYears[year] {
			continue
		}
		for _, h := range BuiltinHolidays(country, year) {
			if h.Date.Before(req.From) || h.Date.After(req.To) {
				continue
			}
			result = append(result, h)
		}
	}

	slices.SortStableFunc(result, func(a, b holiday.Holiday) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return result, nil
}

// ListForMonth implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListForMonth(ctx context.Context, year int, month time.Month) ([]holiday.Holiday, error) {
	first, last := leave.MonthBounds(year, month)
	return s.List(ctx, holiday.ListHolidaysRequest{From: first, To: last})
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}
	if s.repo == nil {
		return holiday.Holiday{}, holiday.ErrStoreNotAvailable
	}

	h := req.ToHoliday()
	if req.Country == "" {
		h.Country = s.country
	}

	created, err := s.repo.Create(ctx, h)
	if err != nil {
		return holiday.Holiday{}, err
	}
	slog.Info("Holiday created", "id", created.ID, "date", created.Date.String(), "name", created.Name)
	return created, nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return holiday.ErrStoreNotAvailable
	}
	return s.repo.Delete(ctx, id)
}

// SeedBuiltin implements holiday.HolidayService.
func (s *HolidayServiceImpl) SeedBuiltin(ctx context.Context, years ...int) (int, error) {
	if s.repo == nil {
		return 0, holiday.ErrStoreNotAvailable
	}

	var batch []holiday.Holiday
	for _, year := range years {
		batch = append(batch, BuiltinHolidays(s.country, year)...)
	}
	if len(batch) == 0 {
		return 0, nil
	}
	return s.repo.CreateMany(ctx, batch)
}
