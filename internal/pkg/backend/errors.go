package backend

import (
	"errors"
	"fmt"
)

// ErrRequestRejected marks a 4xx answer other than 401/404: the backend
// understood the call and refused it (validation, overlap, permissions).
var ErrRequestRejected = errors.New("Leave backend rejected the request")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
