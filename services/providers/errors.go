package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies a provider failure. The orchestrator treats every
// kind the same (try the next provider); the kind is preserved for
// statistics and diagnostics.
type ErrorKind string

const (
	// ErrKindTimeout marks an attempt that exceeded its bounded wait
	ErrKindTimeout ErrorKind = "timeout"

	// ErrKindAuth marks a bad or expired credential
	ErrKindAuth ErrorKind = "auth_failure"

	// ErrKindRateLimited marks an upstream rate-limit rejection
	ErrKindRateLimited ErrorKind = "rate_limited"

	// ErrKindMalformedResponse marks an empty or unparseable upstream reply
	ErrKindMalformedResponse ErrorKind = "malformed_response"

	// ErrKindNetwork marks transport-level failures
	ErrKindNetwork ErrorKind = "network_error"
)

// ProviderError is the normalized failure returned by every adapter
type ProviderError struct {
	Provider   Name
	Kind       ErrorKind
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Provider, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// Unwrap implements error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a normalized provider error
func NewProviderError(provider Name, kind ErrorKind, message string, statusCode int, cause error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Kind:       kind,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// ErrorFromStatus maps an upstream HTTP status to a normalized error
func ErrorFromStatus(provider Name, statusCode int, message string) *ProviderError {
	kind := ErrKindNetwork
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		kind = ErrKindAuth
	case statusCode == http.StatusTooManyRequests:
		kind = ErrKindRateLimited
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		kind = ErrKindTimeout
	}
	return NewProviderError(provider, kind, message, statusCode, nil)
}

// ErrorFromTransport maps a transport error (client.Do failure) to a
// normalized error, distinguishing timeouts from other network failures.
func ErrorFromTransport(provider Name, err error) *ProviderError {
	kind := ErrKindNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = ErrKindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = ErrKindTimeout
	}
	return NewProviderError(provider, kind, "request failed", 0, err)
}

// KindOf extracts the error kind, or an empty kind for non-provider errors
func KindOf(err error) ErrorKind {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind
	}
	return ""
}
