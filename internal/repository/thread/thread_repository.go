// File: internal/repository/thread/thread_repository.go
package thread

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/launchkit/launchkit/internal/domain"
	"gorm.io/gorm"
)

var ErrThreadNotFound = errors.New("thread not found")
var ErrUnauthorizedAccess = errors.New("unauthorized access to thread")

type gormThreadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &gormThreadRepository{db: db}
}

func (r *gormThreadRepository) Create(ctx context.Context, thread *domain.Thread) (*domain.Thread, error) {
	if err := r.validateThreadInput(thread); err != nil {
		log.Printf("[ThreadRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
		log.Printf("[ThreadRepository] Database error during thread creation for user ID %d: %v", thread.UserID, err)
		return nil, errors.New("database error creating thread")
	}
	return thread, nil
}

func (r *gormThreadRepository) FindByID(ctx context.Context, id string) (*domain.Thread, error) {
	if id == "" {
		return nil, errors.New("invalid thread ID")
	}

	var thread domain.Thread
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		log.Printf("[ThreadRepository] FindByID database error: %v", err)
		return nil, errors.New("database query failed")
	}
	return &thread, nil
}

func (r *gormThreadRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Thread, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var threads []domain.Thread
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&threads).Error
	if err != nil {
		log.Printf("[ThreadRepository] Database error finding threads for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching threads")
	}
	return threads, nil
}

// UpdateTitle replaces the thread title. Used once per thread by the title
// summarizer, after which NeedsTitle no longer holds.
func (r *gormThreadRepository) UpdateTitle(ctx context.Context, threadID string, title string) error {
	if threadID == "" {
		return errors.New("invalid thread ID")
	}
	if err := r.validateTitle(title); err != nil {
		return fmt.Errorf("title validation: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Thread{}).
		Where("id = ?", threadID).
		Update("title", title)
	if result.Error != nil {
		log.Printf("[ThreadRepository] Database error updating title for thread %s: %v", threadID, result.Error)
		return errors.New("database error updating thread title")
	}
	if result.RowsAffected == 0 {
		return ErrThreadNotFound
	}
	return nil
}

func (r *gormThreadRepository) TouchUpdatedAt(ctx context.Context, threadID string) error {
	if threadID == "" {
		return errors.New("invalid thread ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Thread{}).
		Where("id = ?", threadID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if result.Error != nil {
		log.Printf("[ThreadRepository] Database error updating timestamp for thread %s: %v", threadID, result.Error)
		return errors.New("database error updating thread timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrThreadNotFound
	}
	return nil
}

// Delete removes a thread only when it belongs to userID. Deletion happens
// only on explicit user action, never automatically.
func (r *gormThreadRepository) Delete(ctx context.Context, threadID string, userID uint) error {
	if threadID == "" || userID == 0 {
		return errors.New("invalid thread ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", threadID, userID).
		Delete(&domain.Thread{})
	if result.Error != nil {
		log.Printf("[ThreadRepository] Database error deleting thread %s for user ID %d: %v", threadID, userID, result.Error)
		return errors.New("database error deleting thread")
	}
	if result.RowsAffected == 0 {
		return ErrUnauthorizedAccess
	}
	return nil
}

func (r *gormThreadRepository) validateThreadInput(thread *domain.Thread) error {
	if thread == nil {
		return errors.New("thread cannot be nil")
	}
	if thread.ID == "" {
		return errors.New("thread ID is required")
	}
	if thread.UserID == 0 {
		return errors.New("user ID is required")
	}
	return r.validateTitle(thread.Title)
}

func (r *gormThreadRepository) validateTitle(title string) error {
	if len(title) > 200 {
		return errors.New("title must be 200 characters or less")
	}
	if strings.Contains(title, "<script") || strings.Contains(title, "javascript:") {
		return errors.New("invalid characters detected in title")
	}
	return nil
}
