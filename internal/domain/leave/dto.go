package leave

import (
	"strconv"

	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	maxReasonLength = 1000
)

// CreateLeaveRequestRequest is forwarded to the backend as-is once valid.
type CreateLeaveRequestRequest struct {
	Type         Type         `json:"type"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	Reason       string       `json:"reason"`
	DurationType DurationType `json:"durationType,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(string(r.Type)) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	}

	errs = append(errs, validateRange(r.StartDate, r.EndDate)...)

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if !r.DurationType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "durationType",
			Message: "durationType must be FULL_DAY or HALF_DAY",
		})
	} else if r.DurationType == DurationHalfDay && r.StartDate != r.EndDate {
		errs = append(errs, validator.ValidationError{
			Field:   "durationType",
			Message: "HALF_DAY is only allowed for single-day requests",
		})
	}

	return errs.OrNil()
}

// Range returns the parsed dates. Call after Validate.
func (r *CreateLeaveRequestRequest) Range() (Date, Date) {
	start, _ := ParseDate(r.StartDate)
	end, _ := ParseDate(r.EndDate)
	return start, end
}

type UpdateLeaveRequestStatusRequest struct {
	ID                string `json:"-"`
	Status            Status `json:"status"`
	RejectionReason   string `json:"rejectionReason,omitempty"`
	SupervisorComment string `json:"supervisorComment,omitempty"`
	ApproverComment   string `json:"approverComment,omitempty"`
}

func (r *UpdateLeaveRequestStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	switch r.Status {
	case StatusApproved:
	case StatusRejected:
		if validator.IsEmpty(r.RejectionReason) {
			errs = append(errs, validator.ValidationError{
				Field:   "rejectionReason",
				Message: "rejectionReason is required when rejecting",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	return errs.OrNil()
}

// LeaveRequestFilter selects a page of leave requests. Page is zero-based,
// as the backend expects.
type LeaveRequestFilter struct {
	Status       *string
	EmployeeName *string
	Page         int
	Size         int
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PENDING, APPROVED, REJECTED",
		})
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must not be negative",
		})
	}
	if f.Size < 0 || f.Size > MaxPageSize {
		errs = append(errs, validator.ValidationError{
			Field:   "size",
			Message: "size must be between 1 and " + validator.Itoa(MaxPageSize),
		})
	}

	return errs.OrNil()
}

// Params is the canonical query form of the filter, used both for the
// backend URL and as the cache key.
func (f LeaveRequestFilter) Params() map[string]string {
	size := f.Size
	if size == 0 {
		size = DefaultPageSize
	}
	params := map[string]string{
		"page": strconv.Itoa(f.Page),
		"size": strconv.Itoa(size),
	}
	if f.Status != nil && *f.Status != "" {
		params["status"] = *f.Status
	}
	if f.EmployeeName != nil && *f.EmployeeName != "" {
		params["employeeName"] = *f.EmployeeName
	}
	return params
}

type DurationRequest struct {
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	DurationType DurationType `json:"durationType,omitempty"`
}

func (r *DurationRequest) Validate() error {
	errs := validateRange(r.StartDate, r.EndDate)
	if !r.DurationType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "durationType",
			Message: "durationType must be FULL_DAY or HALF_DAY",
		})
	}
	return errs.OrNil()
}

type DurationResponse struct {
	StartDate    Date         `json:"startDate"`
	EndDate      Date         `json:"endDate"`
	DurationType DurationType `json:"durationType,omitempty"`
	Days         float64      `json:"days"`
}

func validateRange(startStr, endStr string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	start, startErr := ParseDate(startStr)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}
	end, endErr := ParseDate(endStr)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}
	return errs
}

// ValidateYear bounds the year accepted by statistics and calendar views.
func ValidateYear(year int) error {
	if year < 1970 || year > 9999 {
		return validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		}}
	}
	return nil
}
