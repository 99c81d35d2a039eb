// Package errorwrapper holds the error types shared by the livereload packages.
package errorwrapper

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNetworkFailure       = errors.New("network failure")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnexpectedStatus     = errors.New("unexpected HTTP status")
)

// WrapError prefixes err with message. A nil err still yields an error so a
// failed call with no cause is not silently dropped.
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

func NewError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// ValidationError reports a config field that failed a check.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	URL     string
	Reason  string
	Wrapped error
}

func NewNetworkError(url, reason string, wrapped error) *NetworkError {
	return &NetworkError{URL: url, Reason: reason, Wrapped: wrapped}
}

func (e *NetworkError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("%s %s", e.Reason, e.URL)
	}
	return fmt.Sprintf("%s %s: %v", e.Reason, e.URL, e.Wrapped)
}

func (e *NetworkError) Unwrap() error { return e.Wrapped }

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetworkFailure
}

// StatusError is a response whose status the caller cannot use.
type StatusError struct {
	URL        string
	StatusCode int
	Op         string
}

func NewStatusError(url string, statusCode int, op string) *StatusError {
	return &StatusError{URL: url, StatusCode: statusCode, Op: op}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Op, e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
