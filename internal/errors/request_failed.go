package errors

import (
	stdErrors "errors"
	"fmt"
)

// RequestFailedError is a transport-level failure talking to the metadata
// service or the thumbnail host.
type RequestFailedError struct {
	Target     string
	StatusCode int
	Err        error
}

func (e *RequestFailedError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("request to %s failed (HTTP %d): %v", e.Target, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("request to %s failed (HTTP %d)", e.Target, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("request to %s failed: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("request to %s failed", e.Target)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// NewRequestFailedError wraps a transport or decoding error.
func NewRequestFailedError(target string, err error) *RequestFailedError {
	return &RequestFailedError{Target: target, Err: err}
}

// NewRequestStatusError records an unexpected HTTP status.
func NewRequestStatusError(target string, statusCode int) *RequestFailedError {
	return &RequestFailedError{Target: target, StatusCode: statusCode}
}

// IsRequestFailedError reports whether err is a RequestFailedError (even when wrapped).
func IsRequestFailedError(err error) bool {
	var reqErr *RequestFailedError
	return stdErrors.As(err, &reqErr)
}
