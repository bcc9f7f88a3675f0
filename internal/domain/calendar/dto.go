package calendar

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/export"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

type MonthViewRequest struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	DepartmentID string `json:"departmentId"`
}

func (r *MonthViewRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if err := leave.ValidateYear(r.Year); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	return errs.OrNil()
}

func (r MonthViewRequest) TimeMonth() time.Month {
	return time.Month(r.Month)
}

func (r MonthViewRequest) Bounds() (leave.Date, leave.Date) {
	return leave.MonthBounds(r.Year, r.TimeMonth())
}

func (r MonthViewRequest) String() string {
	return r.TimeMonth().String() + " " + strconv.Itoa(r.Year)
}

type DayViewRequest struct {
	Date         string `json:"date"`
	DepartmentID string `json:"departmentId"`
}

func (r *DayViewRequest) Validate() error {
	if _, err := leave.ParseDate(r.Date); err != nil {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

type ExportRequest struct {
	MonthViewRequest
	Format string `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.MonthViewRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if _, err := export.ParseFormat(r.Format); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be csv or pdf",
		})
	}
	return errs.OrNil()
}
