// File: internal/services/assistant/stream.go
package assistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// EventSink receives chat progress events as they happen. The HTTP handler
// plugs in an SSE writer; tests plug in a recorder.
type EventSink interface {
	TextDelta(text string) error
	ToolCall(callID, name string, args json.RawMessage) error
	ToolResult(callID, name string, result json.RawMessage, isError bool) error
	StreamError(message string) error
	Done() error
}

type streamEvent struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	CallID   string          `json:"toolCallId,omitempty"`
	ToolName string          `json:"toolName,omitempty"`
	Args     json.RawMessage `json:"args,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	IsError  bool            `json:"isError,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// SSESink streams events to the client as server-sent events, flushing
// after every event so deltas render incrementally.
type SSESink struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

// NewSSESink prepares an SSE response over w. It fails when the underlying
// writer cannot flush, since buffered SSE defeats the point.
func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}
	return &SSESink{w: w, flusher: flusher}, nil
}

func (s *SSESink) writeEvent(ev streamEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		h := s.w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal stream event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write stream event: %w", err)
	}
	s.flusher.Flush()
	return nil
}

func (s *SSESink) TextDelta(text string) error {
	return s.writeEvent(streamEvent{Type: "text-delta", Text: text})
}

func (s *SSESink) ToolCall(callID, name string, args json.RawMessage) error {
	return s.writeEvent(streamEvent{Type: "tool-call", CallID: callID, ToolName: name, Args: args})
}

func (s *SSESink) ToolResult(callID, name string, result json.RawMessage, isError bool) error {
	return s.writeEvent(streamEvent{
		Type:     "tool-result",
		CallID:   callID,
		ToolName: name,
		Result:   result,
		IsError:  isError,
	})
}

func (s *SSESink) StreamError(message string) error {
	return s.writeEvent(streamEvent{Type: "error", Message: message})
}

func (s *SSESink) Done() error {
	return s.writeEvent(streamEvent{Type: "done"})
}

// Started reports whether any event has been written. Once true the HTTP
// status is committed and errors can only be reported in-stream.
func (s *SSESink) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
