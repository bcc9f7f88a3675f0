package holiday

import (
	"strings"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Country != "" && len(strings.TrimSpace(r.Country)) != 2 {
		errs = append(errs, validator.ValidationError{
			Field:   "country",
			Message: "country must be a 2-letter code",
		})
	}

	return errs.OrNil()
}

// ToHoliday converts a validated request.
func (r *CreateHolidayRequest) ToHoliday() Holiday {
	country := strings.ToUpper(strings.TrimSpace(r.Country))
	if country == "" {
		country = DefaultCountry
	}
	date, _ := leave.ParseDate(r.Date)
	return Holiday{
		Name:        strings.TrimSpace(r.Name),
		Date:        date,
		Description: strings.TrimSpace(r.Description),
		Country:     country,
		Source:      SourceCustom,
	}
}

// ListHolidaysRequest selects an inclusive date window.
type ListHolidaysRequest struct {
	From    leave.Date
	To      leave.Date
	Country string
}

func (r *ListHolidaysRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.From.IsZero() || r.To.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from and to are required",
		})
	} else if r.To.Before(r.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}
	return errs.OrNil()
}
