// Package httputil provides retry support for the outbound HTTP clients.
//
// The search index and the inference gateway both have transient 5xx
// windows and rate limits; clients wrap those failures in [RetryableError]
// and route requests through [Retry] so a short blip does not surface as a
// failed ranking.
package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. Only errors wrapped in this
// type are retried; everything else is returned to the caller on the first
// attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between tries. It
// gives up immediately on non-retryable errors and on context
// cancellation, and returns the last transient error once attempts are
// exhausted.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) {
			return lastErr
		}
		if attempt == attempts {
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

// RetryWithBackoff applies the clients' default policy: 3 attempts
// starting at one second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
