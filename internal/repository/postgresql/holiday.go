package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("generate holiday id: %w", err)
	}
	h.ID = id.String()

	query := `
		INSERT INTO holidays (id, name, date, description, country, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	var createdAt time.Time
	err = q.QueryRow(ctx, query,
		h.ID, h.Name, h.Date.Time(), h.Description, h.Country, string(h.Source),
	).Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, err
	}
	h.CreatedAt = &createdAt

	return h, nil
}

// CreateMany implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) CreateMany(ctx context.Context, holidays []holiday.Holiday) (int, error) {
	inserted := 0
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		query := `
			INSERT INTO holidays (id, name, date, description, country, source, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			ON CONFLICT (country, date, name) DO NOTHING
		`
		for _, h := range holidays {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generate holiday id: %w", err)
			}
			tag, err := q.Exec(ctx, query,
				id.String(), h.Name, h.Date.Time(), h.Description, h.Country, string(h.Source),
			)
			if err != nil {
				return fmt.Errorf("insert holiday %s on %s: %w", h.Name, h.Date, err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM holidays
		WHERE id = $1
	`
	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, country string, from, to leave.Date) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, date, description, country, source, created_at
		FROM holidays
		WHERE country = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, name
	`
	rows, err := q.Query(ctx, query, country, from.Time(), to.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		var (
			h         holiday.Holiday
			date      time.Time
			source    string
			createdAt time.Time
		)
		if err := rows.Scan(&h.ID, &h.Name, &date, &h.Description, &h.Country, &source, &createdAt); err != nil {
			return nil, err
		}
		h.Date = leave.DateOf(date)
		h.Source = holiday.Source(source)
		h.CreatedAt = &createdAt
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}
