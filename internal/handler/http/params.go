package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

// sessionFromRequest returns the session placed by middleware.SessionRequired,
// writing a 401 when it is absent.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return nil, false
	}
	return sess, true
}

// getIntQueryParam gets an int query parameter with a default value. A value
// that is present but not a number is a validation error on key.
func getIntQueryParam(r *http.Request, key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(r.URL.Query().Get(key))
	if val == "" {
		return defaultVal, nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0, validator.ValidationErrors{{
			Field:   key,
			Message: key + " must be a number",
		}}
	}
	return intVal, nil
}

func optionalQuery(r *http.Request, key string) *string {
	if !r.URL.Query().Has(key) {
		return nil
	}
	val := strings.TrimSpace(r.URL.Query().Get(key))
	return &val
}

// parseLeaveFilter reads status, employeeName, page and size. Page is
// zero-based, as on the backend.
func parseLeaveFilter(r *http.Request) (leave.LeaveRequestFilter, error) {
	var errs validator.ValidationErrors
	filter := leave.LeaveRequestFilter{
		Status:       optionalQuery(r, "status"),
		EmployeeName: optionalQuery(r, "employeeName"),
	}

	var err error
	if filter.Page, err = getIntQueryParam(r, "page", 0); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if filter.Size, err = getIntQueryParam(r, "size", leave.DefaultPageSize); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if filter.Status != nil && *filter.Status == "" {
		filter.Status = nil
	}

	return filter, errs.OrNil()
}
