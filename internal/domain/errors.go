package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a request rejected before any engine call.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUpstream signals a non-success status from the search engine.
	ErrUpstream = errors.New("search engine error")
	// ErrMalformedResponse signals an engine response missing required keys.
	ErrMalformedResponse = errors.New("malformed search engine response")
	// ErrCoreNotFound signals that the admin status lacks the expected core.
	ErrCoreNotFound = errors.New("expected core not found")
)

// UpstreamError wraps ErrUpstream with the engine's status code and body.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrUpstream.Error(), e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// NewUpstreamError creates an upstream error.
func NewUpstreamError(status int, body string) error {
	return &UpstreamError{Status: status, Body: body}
}

// InvalidRequestf formats a validation error wrapping ErrInvalidRequest.
func InvalidRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
