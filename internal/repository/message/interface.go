// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/launchkit/launchkit/internal/domain"
)

// MessageRepository handles message data operations.
//
// Upsert is keyed by message ID: re-saving an ID overwrites the stored record
// rather than duplicating it, so the persistence sink can safely retry.
type MessageRepository interface {
	Upsert(ctx context.Context, message *domain.Message) error
	UpsertBatch(ctx context.Context, messages []*domain.Message) error
	FindByThreadID(ctx context.Context, threadID string) ([]domain.Message, error)
	CountByThreadID(ctx context.Context, threadID string) (int64, error)
	DeleteByThreadID(ctx context.Context, threadID string) error
}
