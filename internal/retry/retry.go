// internal/retry/retry.go
package retry

import (
	"context"
	"errors"
	"time"
)

// Defaults applied when the caller leaves Config fields zero.
const (
	DefaultMaxAttempts = 3
	DefaultDelay       = time.Second
)

// Config tunes one bounded-retry execution.
type Config struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
	// OnAttemptFailed is invoked once per failed retryable attempt,
	// before any delay. Attempt numbering starts at 1.
	OnAttemptFailed func(attempt int, err error)
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying; Do stops immediately and
// returns the wrapped error unchanged.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do executes op up to cfg.MaxAttempts times with a fixed delay between
// attempts, reporting each failed attempt to the observer. A Permanent
// error or a cancelled context stops the loop early. The last error is
// returned when every attempt fails.
func Do[T any](ctx context.Context, cfg Config, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}

		lastErr = err
		if cfg.OnAttemptFailed != nil {
			cfg.OnAttemptFailed(attempt, err)
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, lastErr
}
