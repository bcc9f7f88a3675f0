package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/database"
)

//go:embed schema/holidays.sql
var holidaysSchema string

// EnsureSchema creates the tables this service owns. Leave data lives in the
// external backend; only holidays are stored locally.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, holidaysSchema); err != nil {
		return fmt.Errorf("apply holidays schema: %w", err)
	}
	return nil
}
