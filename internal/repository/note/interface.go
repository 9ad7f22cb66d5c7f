// File: internal/repository/note/interface.go
package note

import (
	"context"

	"github.com/launchkit/launchkit/internal/domain"
)

// NoteRepository handles note data operations, always scoped by owner.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.Note, error)
	Search(ctx context.Context, userID uint, term string, limit int) ([]domain.Note, error)
	Delete(ctx context.Context, noteID, userID uint) error
}
