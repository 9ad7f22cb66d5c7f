// File: internal/services/billing/retry.go
package billing

import (
	"context"
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

		if !IsRetryable(err) {
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
