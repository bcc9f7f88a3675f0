package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/backend"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/export"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session errors
	case errors.Is(err, session.ErrMissingToken):
		Unauthorized(w, "Missing access token")
	case errors.Is(err, session.ErrSessionExpired):
		Unauthorized(w, "Session expired")
	case errors.Is(err, session.ErrSessionInvalidated), errors.Is(err, leave.ErrUnauthorized):
		Unauthorized(w, "Unauthorized")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists")
	case errors.Is(err, holiday.ErrStoreNotAvailable):
		ServiceUnavailable(w, "Holiday storage is not configured")

	case errors.Is(err, export.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", nil)

	// Leave backend errors
	case errors.Is(err, backend.ErrRequestRejected):
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusForbidden {
				Forbidden(w, "Not allowed by the leave backend")
				return
			}
			Upstream(w, apiErr.StatusCode, apiErr.Message)
			return
		}
		BadRequest(w, "Request rejected by the leave backend", nil)
	case errors.Is(err, leave.ErrBackendUnavailable):
		slog.Error("Leave backend unavailable", "error", err)
		BadGateway(w, "Leave backend unavailable")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
