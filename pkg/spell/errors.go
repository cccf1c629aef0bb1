package spell

import (
	"errors"
	"fmt"
)

// ErrInvalidWord is returned for empty input. Never retried.
var ErrInvalidWord = errors.New("spell: word must not be empty")

// ErrNotInitialized is returned when operations run before Initialize.
var ErrNotInitialized = errors.New("spell: checker not initialized")

// InitializationError wraps a fatal default-language load failure during
// Initialize.
type InitializationError struct {
	Language string
	Err      error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("spell: initialization failed for default language %s: %v", e.Language, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }
