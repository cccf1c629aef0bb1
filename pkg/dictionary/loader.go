package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Backoff selects the delay policy between retry attempts.
type Backoff int

const (
	// BackoffFixed waits the same delay between every attempt.
	BackoffFixed Backoff = iota
	// BackoffExponential doubles the delay after each failed attempt.
	BackoffExponential
)

// LoadError reports that every attempt to load a language's dictionary
// failed. It wraps the last attempt's error.
type LoadError struct {
	Language string
	Attempts int
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dictionary %s: %d attempts failed: %v", e.Language, e.Attempts, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader fetches and parses dictionaries with a retry policy. The zero
// value is not usable; construct with NewLoader.
type Loader struct {
	source       ByteSource
	pathTemplate string
	maxAttempts  int
	retryDelay   time.Duration
	backoff      Backoff
}

// NewLoader creates a Loader. pathTemplate must contain a "{language}"
// placeholder. maxAttempts is the total number of fetch attempts (the first
// attempt counts); values below 1 are clamped to 1.
func NewLoader(source ByteSource, pathTemplate string, maxAttempts int, retryDelay time.Duration, backoff Backoff) *Loader {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Loader{
		source:       source,
		pathTemplate: pathTemplate,
		maxAttempts:  maxAttempts,
		retryDelay:   retryDelay,
		backoff:      backoff,
	}
}

// Load resolves lang to a parsed Dictionary. Transient fetch and parse
// failures are retried up to the configured attempt budget; exhaustion
// returns a *LoadError. A source reporting ErrNotFound fails immediately.
func (l *Loader) Load(ctx context.Context, lang string) (*Dictionary, error) {
	locator := strings.ReplaceAll(l.pathTemplate, "{language}", lang)

	var lastErr error
	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		dict, err := l.attempt(ctx, lang, locator)
		if err == nil {
			if attempt > 1 {
				log.Debugf("Loaded %s on attempt %d/%d", lang, attempt, l.maxAttempts)
			}
			return dict, nil
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		lastErr = err
		log.Warnf("Dictionary load %s attempt %d/%d failed: %v", lang, attempt, l.maxAttempts, err)

		if attempt < l.maxAttempts {
			if err := l.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	return nil, &LoadError{Language: lang, Attempts: l.maxAttempts, Err: lastErr}
}

func (l *Loader) attempt(ctx context.Context, lang, locator string) (*Dictionary, error) {
	files, err := l.source.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	return Parse(lang, files.Affix, files.Words)
}

// wait sleeps the configured backoff delay for the given (1-based) attempt,
// or returns early when the context is canceled.
func (l *Loader) wait(ctx context.Context, attempt int) error {
	delay := l.retryDelay
	if l.backoff == BackoffExponential {
		delay = l.retryDelay << (attempt - 1)
	}
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
