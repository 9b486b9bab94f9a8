package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend connection failures and timeouts.
var ErrNetwork = errors.New("network error")

// Retry tuning for [RetryWithBackoff]. Tests shorten BackoffBase.
var (
	MaxAttempts = 3
	BackoffBase = 100 * time.Millisecond
)

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// retryable, or MaxAttempts calls have failed. The delay starts at
// BackoffBase and doubles after every attempt. The last error is returned,
// or ctx.Err() if ctx ends while waiting.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := BackoffBase
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= MaxAttempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
