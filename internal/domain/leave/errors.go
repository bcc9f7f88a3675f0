package leave

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange      = errors.New("Invalid date range")
	ErrUnrecognizedLeaveType = errors.New("Unrecognized leave type")
	ErrLeaveRequestNotFound  = errors.New("Leave request not found")
	ErrUnauthorized          = errors.New("Unauthorized")
	ErrBackendUnavailable    = errors.New("Leave backend unavailable")
)

// InvalidRangeError identifies the record whose range is missing a date or
// whose end date precedes its start.
type InvalidRangeError struct {
	RecordID string
	Start    Date
	End      Date
}

func (e *InvalidRangeError) Error() string {
	var reason string
	switch {
	case e.Start.IsZero() && e.End.IsZero():
		reason = "missing start and end date"
	case e.Start.IsZero():
		reason = "missing start date"
	case e.End.IsZero():
		reason = "missing end date"
	default:
		reason = fmt.Sprintf("end %s before start %s", e.End, e.Start)
	}
	if e.RecordID == "" {
		return "invalid date range: " + reason
	}
	return fmt.Sprintf("invalid date range on record %s: %s", e.RecordID, reason)
}

func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidDateRange
}
