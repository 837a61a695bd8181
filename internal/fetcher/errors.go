package fetcher

import (
	"errors"
	"fmt"
)

// ErrEmptyURL is returned when Fetch is called without a URL.
var ErrEmptyURL = errors.New("fetch: empty url")

// StatusError reports a response whose status is not in the 200-399 range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// IsStatus reports whether err is a *StatusError carrying code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
