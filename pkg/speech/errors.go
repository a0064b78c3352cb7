package speech

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoSynthURL is returned when the synthesizer URL is missing.
	ErrNoSynthURL = errors.New("speech: synthesizer URL required")

	// ErrNoPrompt is returned when a prompt file is missing from the cache.
	ErrNoPrompt = errors.New("speech: no cached prompt for phrase")

	// ErrSynthUnavailable is returned when no synthesizer backend is available.
	ErrSynthUnavailable = errors.New("speech: no synthesizer available")
)

// SynthError wraps an error with backend context.
type SynthError struct {
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *SynthError) Error() string {
	return fmt.Sprintf("speech [%s]: %v", e.Backend, e.Err)
}

// Unwrap returns the underlying error.
func (e *SynthError) Unwrap() error {
	return e.Err
}

// wrapErr wraps an error with backend context.
func wrapErr(backend string, err error) error {
	if err == nil {
		return nil
	}
	return &SynthError{Backend: backend, Err: err}
}
