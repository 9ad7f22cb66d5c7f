// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/launchkit/launchkit/internal/domain"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := user.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Printf("[UserRepository] Database error creating user: %v", err)
		return nil, errors.New("database error creating user")
	}
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("invalid email")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

func (r *gormUserRepository) Update(ctx context.Context, user *domain.User) error {
	if user.ID == 0 {
		return errors.New("invalid user ID")
	}

	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		log.Printf("[UserRepository] Database error updating user ID %d: %v", user.ID, result.Error)
		return errors.New("database error updating user")
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *gormUserRepository) Delete(ctx context.Context, userID uint) error {
	if userID == 0 {
		return errors.New("invalid user ID")
	}

	result := r.db.WithContext(ctx).Delete(&domain.User{}, userID)
	if result.Error != nil {
		log.Printf("[UserRepository] Database error deleting user ID %d: %v", userID, result.Error)
		return errors.New("database error deleting user")
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// handleFindError - secure error handling without data leakage
func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	log.Printf("[UserRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
