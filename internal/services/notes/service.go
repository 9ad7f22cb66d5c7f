// File: internal/services/notes/service.go
package notes

import (
	"context"
	"errors"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/note"
)

type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
}

// Service wraps note persistence for handlers and assistant tools.
type Service struct {
	notes  note.NoteRepository
	logger Logger
}

func NewService(notes note.NoteRepository, logger Logger) (*Service, error) {
	if notes == nil {
		return nil, errors.New("notes service: repository is required")
	}
	if logger == nil {
		return nil, errors.New("notes service: logger is required")
	}
	return &Service{notes: notes, logger: logger}, nil
}

func (s *Service) Create(ctx context.Context, userID uint, title, content string) (*domain.Note, error) {
	n := &domain.Note{UserID: userID, Title: title, Content: content}
	created, err := s.notes.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Note created", "user_id", userID, "note_id", created.ID)
	return created, nil
}

func (s *Service) List(ctx context.Context, userID uint, limit int) ([]domain.Note, error) {
	return s.notes.FindByUserID(ctx, userID, limit)
}

func (s *Service) Search(ctx context.Context, userID uint, term string, limit int) ([]domain.Note, error) {
	return s.notes.Search(ctx, userID, term, limit)
}

func (s *Service) Delete(ctx context.Context, noteID, userID uint) error {
	return s.notes.Delete(ctx, noteID, userID)
}
