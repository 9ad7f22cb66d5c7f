// File: internal/services/flags/service.go
package flags

import (
	"context"
	"errors"
	"fmt"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/flag"
)

type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
}

// Service evaluates feature flags. Unknown keys evaluate to disabled so a
// missing row can never accidentally enable a feature.
type Service struct {
	flags  flag.FlagRepository
	logger Logger
}

func NewService(flags flag.FlagRepository, logger Logger) (*Service, error) {
	if flags == nil {
		return nil, errors.New("flags service: repository is required")
	}
	if logger == nil {
		return nil, errors.New("flags service: logger is required")
	}
	return &Service{flags: flags, logger: logger}, nil
}

func (s *Service) IsEnabled(ctx context.Context, key string) bool {
	f, err := s.flags.FindByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, flag.ErrFlagNotFound) {
			s.logger.Error("Feature flag lookup failed, treating as disabled",
				"key", key, "error", err)
		}
		return false
	}
	return f.Enabled
}

func (s *Service) Set(ctx context.Context, key string, enabled bool, description string) error {
	f := &domain.FeatureFlag{Key: key, Enabled: enabled, Description: description}
	if err := f.IsValid(); err != nil {
		return fmt.Errorf("invalid feature flag: %w", err)
	}
	if err := s.flags.Upsert(ctx, f); err != nil {
		return fmt.Errorf("failed to save feature flag %q: %w", key, err)
	}
	s.logger.Info("Feature flag updated", "key", key, "enabled", enabled)
	return nil
}

func (s *Service) All(ctx context.Context) ([]domain.FeatureFlag, error) {
	all, err := s.flags.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feature flags: %w", err)
	}
	return all, nil
}
