// File: internal/repository/flag/interface.go
package flag

import (
	"context"

	"github.com/launchkit/launchkit/internal/domain"
)

// FlagRepository handles feature flag data operations.
type FlagRepository interface {
	Upsert(ctx context.Context, flag *domain.FeatureFlag) error
	FindByKey(ctx context.Context, key string) (*domain.FeatureFlag, error)
	FindAll(ctx context.Context) ([]domain.FeatureFlag, error)
}
