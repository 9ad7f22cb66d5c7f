// File: internal/domain/note.go
package domain

import (
	"errors"
	"strings"
	"time"
)

// Note is a free-form user note, reachable both from the notes API and from
// the assistant's note tools.
type Note struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Note) IsValid() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("note title is required")
	}
	if len(n.Title) > 200 {
		return errors.New("note title must be 200 characters or less")
	}
	if len(n.Content) > 20000 {
		return errors.New("note content too long (max 20000 characters)")
	}
	return nil
}
