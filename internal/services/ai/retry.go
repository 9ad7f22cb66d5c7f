// File: internal/services/ai/retry.go
package ai

import (
	"context"
	"errors"
	"time"
)

// withRetry runs fn up to maxAttempts times with a fixed delay between
// attempts. Non-retryable failures short-circuit immediately.
func withRetry(ctx context.Context, maxAttempts int, delay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			return err
		}

		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return lastErr
}

// isRetryable reports whether a failed call may succeed on a later attempt.
// Config and validation errors never will; a failed delta delivery means the
// caller went away, so repeating the call is pointless.
func isRetryable(err error) bool {
	if IsDeliveryError(err) {
		return false
	}
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		switch aiErr.Type {
		case ErrTypeConfig, ErrTypeValidation:
			return false
		}
	}
	return true
}
