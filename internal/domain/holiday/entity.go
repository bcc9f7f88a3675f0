package holiday

import (
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
)

// Source tells where a holiday came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceCustom  Source = "custom"
)

// DefaultCountry is the ISO 3166 alpha-2 code of the built-in calendar.
const DefaultCountry = "RW"

type Holiday struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Date        leave.Date `json:"date"`
	Description string     `json:"description,omitempty"`
	Country     string     `json:"country"`
	Source      Source     `json:"source"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}
