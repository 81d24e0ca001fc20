package regsdk

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the registry, carrying the decoded
// error body alongside the HTTP status.
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("regsdk: %s (%d): %s", e.Code, e.Status, e.Description)
	}
	return fmt.Sprintf("regsdk: %s (%d)", e.Code, e.Status)
}

// IsForbidden reports whether err is an APIError with HTTP status 403.
func IsForbidden(err error) bool { return hasStatus(err, 403) }

// IsNotFound reports whether err is an APIError with HTTP status 404.
func IsNotFound(err error) bool { return hasStatus(err, 404) }

// IsConflict reports whether err is an APIError with HTTP status 409.
func IsConflict(err error) bool { return hasStatus(err, 409) }

// IsUnprocessable reports whether err is an APIError with HTTP status 422.
func IsUnprocessable(err error) bool { return hasStatus(err, 422) }

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
