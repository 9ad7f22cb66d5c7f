// File: internal/services/ai/interface.go
package ai

import (
	"context"
	"encoding/json"
)

// Message roles on the model wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatMessage is one entry of the model conversation.
type ChatMessage struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // set on assistant messages that request tools
	ToolCallID string     // set on tool result messages
	Name       string     // tool name, set on tool result messages
}

// ToolCall is a model request to invoke one declared tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolDefinition declares one callable tool to the model. Parameters is a
// JSON-schema value the provider serializes onto the wire.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  any
}

// ChatRequest is one model call within the agentic loop.
type ChatRequest struct {
	Model    string
	Messages []ChatMessage
	Tools    []ToolDefinition
}

// Turn is the model's complete output for one chat call: either final text,
// or one or more tool calls (possibly alongside partial text).
type Turn struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason string
}

// CompletionProvider handles one-shot completions (title summaries).
type CompletionProvider interface {
	GetCompletion(ctx context.Context, model, prompt string) (string, error)
}

// StreamProvider handles tool-augmented streaming chat. Text deltas are
// reported through onDelta as they arrive; the assembled turn is returned
// once the stream ends.
type StreamProvider interface {
	StreamChat(ctx context.Context, req ChatRequest, onDelta func(string) error) (*Turn, error)
}

// Provider combines the model capabilities the assistant needs.
type Provider interface {
	CompletionProvider
	StreamProvider
}
