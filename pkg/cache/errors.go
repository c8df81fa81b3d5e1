package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss reports an absent or expired entry where a value was required.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork reports an unreachable remote backend.
	ErrNetwork = errors.New("network error")
)

// transient marks an error worth another attempt.
type transient struct{ err error }

func (t *transient) Error() string { return t.err.Error() }
func (t *transient) Unwrap() error { return t.err }

// Retryable marks err as transient for [RetryWithBackoff]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &transient{err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked by [Retryable].
func IsRetryable(err error) bool {
	var t *transient
	return errors.As(err, &t)
}

// Backoff schedule used when connecting to remote backends. Tests shorten
// retryDelay.
const retryAttempts = 3

var retryDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// retryable, or retryAttempts calls have failed. The wait doubles after each
// failure and is cut short by ctx.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
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
