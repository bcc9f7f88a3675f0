package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("Holiday not found")
	ErrHolidayExists     = errors.New("Holiday already exists on this date")
	ErrStoreNotAvailable = errors.New("Holiday store is not configured")
)
