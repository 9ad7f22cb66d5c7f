// File: internal/services/billing/interface.go
package billing

import (
	"context"
	"time"

	"github.com/launchkit/launchkit/internal/domain"
)

// Provider fetches billing metrics for a user's account over a date range.
// All monetary amounts are integer minor units.
type Provider interface {
	GetMetrics(ctx context.Context, userID uint, from, to time.Time) (*domain.BillingMetrics, error)
}

// Logger matches the application logging interface so the package carries no
// dependency on the services package.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
}
