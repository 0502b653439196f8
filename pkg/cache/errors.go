package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a backend error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff controls RetryWithBackoff.
type Backoff struct {
	Attempts int
	Delay    time.Duration // doubled after every failed attempt
}

// DefaultBackoff tries three times starting at 250ms.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 250 * time.Millisecond}

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// runs out of attempts or ctx is done.
func RetryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
