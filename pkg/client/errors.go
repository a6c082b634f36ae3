package client

import (
	"errors"
	"fmt"
)

// ErrUnsuccessful is returned when a 2xx response carries a false success flag.
var ErrUnsuccessful = errors.New("api reported failure")

// HTTPError represents a non-2xx HTTP response from the API.
// The response body is never read into it.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s failed (%d)", e.Method, e.Path, e.StatusCode)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
