// File: internal/domain/message.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message roles. The enumeration is closed: anything else is rejected at the
// boundary.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message part types.
const (
	PartTypeText           = "text"
	PartTypeToolInvocation = "tool-invocation"
	PartTypeToolResult     = "tool-result"
)

// MessagePart is one typed segment of a message body: plain text, a tool
// invocation the assistant requested, or the result that invocation produced.
type MessagePart struct {
	Type       string          `json:"type"`
	Text       string          `json:"text,omitempty"`
	ToolCallID string          `json:"toolCallId,omitempty"`
	ToolName   string          `json:"toolName,omitempty"`
	Args       json.RawMessage `json:"args,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	IsError    bool            `json:"isError,omitempty"`
}

// MessageParts is stored as a single JSON column.
type MessageParts []MessagePart

func (p MessageParts) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *MessageParts) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported type %T for message parts", value)
	}
}

// Message represents a single message within a thread. Messages are totally
// ordered by creation time; saving the same ID twice overwrites rather than
// duplicates.
type Message struct {
	ID        string       `json:"id" gorm:"primarykey"`
	ThreadID  string       `json:"thread_id" gorm:"not null;index"`
	Role      string       `json:"role" gorm:"not null"`
	Parts     MessageParts `json:"parts" gorm:"type:text"`
	UserID    *uint        `json:"user_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewMessageID mints an ID for server-generated messages. Client-supplied
// messages keep the IDs the client chose.
func NewMessageID() string {
	return uuid.NewString()
}

// TextContent concatenates the text parts of the message.
func (m *Message) TextContent() string {
	var b strings.Builder
	for _, part := range m.Parts {
		if part.Type == PartTypeText {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// ValidRole reports whether role belongs to the closed enumeration.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

func (m *Message) IsValid() error {
	if m.ID == "" {
		return errors.New("message ID is required")
	}
	if m.ThreadID == "" {
		return errors.New("thread ID is required")
	}
	if !ValidRole(m.Role) {
		return fmt.Errorf("invalid message role %q", m.Role)
	}
	return nil
}
