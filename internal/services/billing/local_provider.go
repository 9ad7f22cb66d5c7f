// File: internal/services/billing/local_provider.go
package billing

import (
	"context"
	"time"

	"github.com/launchkit/launchkit/internal/domain"
)

// LocalProvider returns empty metrics. Used in development when no billing
// API key is configured, so the assistant tooling stays exercisable.
type LocalProvider struct {
	logger Logger
}

func NewLocalProvider(logger Logger) *LocalProvider {
	return &LocalProvider{logger: logger}
}

func (p *LocalProvider) GetMetrics(ctx context.Context, userID uint, from, to time.Time) (*domain.BillingMetrics, error) {
	p.logger.Debug("Billing running in local mode, returning empty metrics",
		"user_id", userID)
	return &domain.BillingMetrics{From: from, To: to}, nil
}
