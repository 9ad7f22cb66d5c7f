// File: internal/repository/thread/interface.go
package thread

import (
	"context"

	"github.com/launchkit/launchkit/internal/domain"
)

// ThreadRepository handles conversation thread data operations. Every
// mutating operation that takes a userID scopes the query to it, so one
// user's threads are never reachable through another user's requests.
type ThreadRepository interface {
	Create(ctx context.Context, thread *domain.Thread) (*domain.Thread, error)
	FindByID(ctx context.Context, id string) (*domain.Thread, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Thread, error)
	UpdateTitle(ctx context.Context, threadID string, title string) error
	TouchUpdatedAt(ctx context.Context, threadID string) error
	Delete(ctx context.Context, threadID string, userID uint) error
}
