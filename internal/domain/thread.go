// File: internal/domain/thread.go
package domain

import "time"

// PlaceholderTitle is the title every thread carries until the summarizer
// replaces it.
const PlaceholderTitle = "New conversation"

// TitleMaxLength bounds summarized thread titles.
const TitleMaxLength = 100

// Thread represents a single conversation owned by one user.
type Thread struct {
	ID        string    `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NeedsTitle reports whether the summarizer should run for this thread,
// given the number of messages it currently holds.
func (t *Thread) NeedsTitle(messageCount int) bool {
	return t.Title == PlaceholderTitle && messageCount > 3
}
