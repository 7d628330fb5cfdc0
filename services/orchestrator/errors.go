package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Matloob11/AURA-AI-AGENT/services/providers"
)

var (
	// ErrEmptyMessage is returned for an empty or whitespace-only chat
	// message, before any provider is attempted.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrNotConfigured is returned when zero providers are credentialed.
	// Distinct from a runtime dispatch failure.
	ErrNotConfigured = errors.New("AI engine not configured: no provider credentials set")
)

// Attempt records one failed provider attempt within a dispatch
type Attempt struct {
	Provider providers.Name
	Err      error
}

// ExhaustedError is returned when every credentialed provider failed for
// a single request. It carries each provider's last error.
type ExhaustedError struct {
	Attempts []Attempt
}

// Error implements the error interface
func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Provider, a.Err))
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

// ErrorFor returns the recorded error for a provider, or nil
func (e *ExhaustedError) ErrorFor(name providers.Name) error {
	for _, a := range e.Attempts {
		if a.Provider == name {
			return a.Err
		}
	}
	return nil
}
