package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports a key or file that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBackend reports a remote cache backend that cannot be reached.
	ErrBackend = errors.New("cache backend unavailable")
)

// RetryableError marks a transient failure. RetryWithBackoff only retries
// errors that carry this marker somewhere in their chain.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// retryBaseDelay is the wait after the first failure. Each later wait doubles.
var retryBaseDelay = 100 * time.Millisecond

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// or has failed retryAttempts times. Waiting between attempts stops early
// when ctx ends.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var err error
	wait := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
