// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/launchkit/launchkit/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Upsert writes a message, overwriting any existing row with the same ID.
func (r *gormMessageRepository) Upsert(ctx context.Context, message *domain.Message) error {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "parts", "user_id"}),
		}).
		Create(message).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error saving message %s for thread %s: %v", message.ID, message.ThreadID, err)
		return errors.New("database error saving message")
	}
	return nil
}

// UpsertBatch writes each message in order, stopping at the first failure so
// the stored prefix stays consistent with creation order.
func (r *gormMessageRepository) UpsertBatch(ctx context.Context, messages []*domain.Message) error {
	for _, m := range messages {
		if err := r.Upsert(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// FindByThreadID returns all messages of a thread in creation order.
func (r *gormMessageRepository) FindByThreadID(ctx context.Context, threadID string) ([]domain.Message, error) {
	if threadID == "" {
		return nil, errors.New("invalid thread ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for thread %s: %v", threadID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) CountByThreadID(ctx context.Context, threadID string) (int64, error) {
	if threadID == "" {
		return 0, errors.New("invalid thread ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("thread_id = ?", threadID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for thread %s: %v", threadID, err)
		return 0, errors.New("database error counting messages")
	}
	return count, nil
}

// DeleteByThreadID performs a bulk deletion of all messages in a thread.
func (r *gormMessageRepository) DeleteByThreadID(ctx context.Context, threadID string) error {
	if threadID == "" {
		return errors.New("invalid thread ID")
	}

	result := r.db.WithContext(ctx).Where("thread_id = ?", threadID).Delete(&domain.Message{})
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deleting messages for thread %s: %v", threadID, result.Error)
		return errors.New("database error deleting messages by thread ID")
	}
	return nil
}

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	return message.IsValid()
}
