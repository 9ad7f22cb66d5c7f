// File: internal/repository/note/note_repository.go
package note

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/launchkit/launchkit/internal/domain"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrUnauthorizedNoteAccess = errors.New("unauthorized access to note")
var ErrInvalidSearchTerm = errors.New("invalid search term")

type gormNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{db: db}
}

func (r *gormNoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, errors.New("note cannot be nil")
	}
	if note.UserID == 0 {
		return nil, errors.New("user ID is required")
	}
	if err := note.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		log.Printf("[NoteRepository] Database error creating note for user ID %d: %v", note.UserID, err)
		return nil, errors.New("database error creating note")
	}
	return note, nil
}

func (r *gormNoteRepository) FindByUserID(ctx context.Context, userID uint, limit int) ([]domain.Note, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var notes []domain.Note
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		log.Printf("[NoteRepository] Database error finding notes for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching notes")
	}
	return notes, nil
}

// Search matches the term against note titles and contents, scoped to one
// user.
func (r *gormNoteRepository) Search(ctx context.Context, userID uint, term string, limit int) ([]domain.Note, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}
	if err := r.validateSearchTerm(term); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSearchTerm, err)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var notes []domain.Note
	pattern := fmt.Sprintf("%%%s%%", term)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (title LIKE ? OR content LIKE ?)", userID, pattern, pattern).
		Order("updated_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		log.Printf("[NoteRepository] Database error searching notes for user ID %d: %v", userID, err)
		return nil, errors.New("database error searching notes")
	}
	return notes, nil
}

func (r *gormNoteRepository) Delete(ctx context.Context, noteID, userID uint) error {
	if noteID == 0 || userID == 0 {
		return errors.New("invalid note ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteID, userID).
		Delete(&domain.Note{})
	if result.Error != nil {
		log.Printf("[NoteRepository] Database error deleting note ID %d for user ID %d: %v", noteID, userID, result.Error)
		return errors.New("database error deleting note")
	}
	if result.RowsAffected == 0 {
		return ErrUnauthorizedNoteAccess
	}
	return nil
}

// validateSearchTerm prevents LIKE wildcard injection.
func (r *gormNoteRepository) validateSearchTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return errors.New("search term is required")
	}
	if len(term) > 100 {
		return errors.New("search term too long")
	}
	if strings.ContainsAny(term, `%_\`) {
		return errors.New("invalid characters in search term")
	}
	return nil
}
