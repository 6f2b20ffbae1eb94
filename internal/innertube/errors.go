package innertube

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound             = errors.New("innertube: not found")
	ErrRateLimited          = errors.New("innertube: rate limited")
	ErrUnauthorized         = errors.New("innertube: unauthorized")
	ErrInternalUpstream     = errors.New("innertube: upstream internal error")
	ErrUnknownStatus        = errors.New("innertube: unexpected status")
	ErrDecode               = errors.New("innertube: undecodable response")
	ErrTransport            = errors.New("innertube: transport failure")
	ErrRequiredFieldMissing = errors.New("innertube: required field missing")
	ErrInvalidInput         = errors.New("innertube: invalid input")

	ErrCredentialsRequired = fmt.Errorf("%w: credentials required", ErrInvalidInput)
)

// Error is a failed call. Kind is one of the sentinels above and is what
// errors.Is matches; Err carries the underlying cause when there is one.
type Error struct {
	Op         string
	Kind       error
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.StatusCode != 0 && e.StatusCode != http.StatusOK {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode extracts the upstream status of a failed call, 0 if none.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// classify maps a response status to the error taxonomy. 200 is success.
func classify(status int) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return ErrInternalUpstream
	default:
		return ErrUnknownStatus
	}
}
