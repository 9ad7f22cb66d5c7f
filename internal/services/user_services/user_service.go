// File: internal/services/user_services/user_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/user"
)

type UserService struct {
	userRepo user.UserRepository
	logger   Logger
}

func NewUserService(userRepo user.UserRepository, logger Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetByID(ctx context.Context, userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

func (s *UserService) UpdateName(ctx context.Context, userID uint, name string) (*domain.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Name = name
	if err := u.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		s.logger.Error("user update failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}
