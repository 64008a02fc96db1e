package types

import (
	"errors"
	"fmt"
)

// Validation errors are reported to the caller as HTTP 400.
var (
	ErrEventRequired = errors.New("Event required")
	ErrMalformedBody = errors.New("Invalid JSON body")
)

// UpstreamError marks a failure of an external API. It is always absorbed
// into fallback data and never reaches the client.
type UpstreamError struct {
	Upstream string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Upstream, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Upstream wraps err as an UpstreamError for the named service.
func Upstream(name string, err error) error {
	return &UpstreamError{Upstream: name, Err: err}
}

// IsValidation reports whether err should be surfaced as a 400.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEventRequired) || errors.Is(err, ErrMalformedBody)
}
