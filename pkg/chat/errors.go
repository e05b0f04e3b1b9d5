package chat

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("chat: API key required")

	// ErrNoChoices is returned when the API answers with zero completions.
	ErrNoChoices = errors.New("chat: no choices returned")
)

// UpstreamError represents a failed request to the chat provider, either a
// transport failure or a non-success status. The pipeline treats any
// UpstreamError as fatal for the invocation; there are no retries.
type UpstreamError struct {
	// StatusCode is the HTTP status code, or 0 for transport failures.
	StatusCode int

	// Message is the provider error message, logged server-side only.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat [openai]: API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("chat [openai]: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
