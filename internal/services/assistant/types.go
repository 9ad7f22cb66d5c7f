// File: internal/services/assistant/types.go
package assistant

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/launchkit/launchkit/internal/domain"
)

// Logger is the logging interface consumed by this package.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
}

// ChatRequest is the decoded body of a chat call. Unknown fields sent by
// newer clients are ignored.
type ChatRequest struct {
	ThreadID string            `json:"id"`
	Messages []IncomingMessage `json:"messages"`
}

// IncomingMessage mirrors the client transcript format: a message is a list
// of typed parts, of which only text parts carry model-visible content.
type IncomingMessage struct {
	ID    string               `json:"id"`
	Role  string               `json:"role"`
	Parts []domain.MessagePart `json:"parts"`
}

func (m *IncomingMessage) TextContent() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if p.Type == domain.PartTypeText {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// DecodeChatRequest parses and validates a chat request body. Every
// rejection names the offending field.
func DecodeChatRequest(r io.Reader) (*ChatRequest, error) {
	const op = "decode chat request"

	var req ChatRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, NewValidationError(op, "body", "request body is not valid JSON")
	}

	if strings.TrimSpace(req.ThreadID) == "" {
		return nil, NewValidationError(op, "id", "thread id is required")
	}
	if len(req.Messages) == 0 {
		return nil, NewValidationError(op, "messages", "at least one message is required")
	}

	for i, m := range req.Messages {
		if strings.TrimSpace(m.ID) == "" {
			return nil, NewValidationError(op, "messages.id", "message id is required")
		}
		if !domain.ValidRole(m.Role) {
			return nil, NewValidationError(op, "messages.role", "unknown message role: "+m.Role)
		}
		if i == len(req.Messages)-1 {
			if m.Role != domain.RoleUser {
				return nil, NewValidationError(op, "messages.role", "last message must be from the user")
			}
			if strings.TrimSpace(m.TextContent()) == "" {
				return nil, NewValidationError(op, "messages.parts", "last user message has no text content")
			}
		}
	}

	return &req, nil
}
