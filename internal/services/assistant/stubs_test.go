// File: internal/services/assistant/stubs_test.go
package assistant

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/thread"
	"github.com/launchkit/launchkit/internal/services/ai"
)

type stubProvider struct {
	completionFn func(ctx context.Context, model, prompt string) (string, error)
	streamFn     func(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error)
	streamCalls  int
}

func (p *stubProvider) GetCompletion(ctx context.Context, model, prompt string) (string, error) {
	if p.completionFn == nil {
		return "stub title", nil
	}
	return p.completionFn(ctx, model, prompt)
}

func (p *stubProvider) StreamChat(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error) {
	p.streamCalls++
	return p.streamFn(ctx, req, onDelta)
}

type fakeThreadRepo struct {
	mu      sync.Mutex
	threads map[string]*domain.Thread
	touched []string
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{threads: make(map[string]*domain.Thread)}
}

func (r *fakeThreadRepo) Create(ctx context.Context, th *domain.Thread) (*domain.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *th
	r.threads[th.ID] = &cp
	return &cp, nil
}

func (r *fakeThreadRepo) FindByID(ctx context.Context, id string) (*domain.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	th, ok := r.threads[id]
	if !ok {
		return nil, thread.ErrThreadNotFound
	}
	cp := *th
	return &cp, nil
}

func (r *fakeThreadRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Thread
	for _, th := range r.threads {
		if th.UserID == userID {
			out = append(out, *th)
		}
	}
	return out, nil
}

func (r *fakeThreadRepo) UpdateTitle(ctx context.Context, threadID string, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	th, ok := r.threads[threadID]
	if !ok {
		return thread.ErrThreadNotFound
	}
	th.Title = title
	return nil
}

func (r *fakeThreadRepo) TouchUpdatedAt(ctx context.Context, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched = append(r.touched, threadID)
	return nil
}

func (r *fakeThreadRepo) Delete(ctx context.Context, threadID string, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	th, ok := r.threads[threadID]
	if !ok || th.UserID != userID {
		return thread.ErrUnauthorizedAccess
	}
	delete(r.threads, threadID)
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[string]*domain.Message
	saveErr  error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*domain.Message)}
}

func (r *fakeMessageRepo) Upsert(ctx context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *m
	r.messages[m.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) UpsertBatch(ctx context.Context, msgs []*domain.Message) error {
	for _, m := range msgs {
		if err := r.Upsert(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMessageRepo) FindByThreadID(ctx context.Context, threadID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) CountByThreadID(ctx context.Context, threadID string) (int64, error) {
	msgs, _ := r.FindByThreadID(ctx, threadID)
	return int64(len(msgs)), nil
}

func (r *fakeMessageRepo) DeleteByThreadID(ctx context.Context, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.messages {
		if m.ThreadID == threadID {
			delete(r.messages, id)
		}
	}
	return nil
}

type sinkEvent struct {
	kind    string
	text    string
	callID  string
	tool    string
	payload json.RawMessage
	isError bool
}

// recordSink captures events for assertions.
type recordSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *recordSink) record(ev sinkEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordSink) TextDelta(text string) error {
	return s.record(sinkEvent{kind: "text-delta", text: text})
}

func (s *recordSink) ToolCall(callID, name string, args json.RawMessage) error {
	return s.record(sinkEvent{kind: "tool-call", callID: callID, tool: name, payload: args})
}

func (s *recordSink) ToolResult(callID, name string, result json.RawMessage, isError bool) error {
	return s.record(sinkEvent{kind: "tool-result", callID: callID, tool: name, payload: result, isError: isError})
}

func (s *recordSink) StreamError(message string) error {
	return s.record(sinkEvent{kind: "error", text: message})
}

func (s *recordSink) Done() error {
	return s.record(sinkEvent{kind: "done"})
}

func (s *recordSink) kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.kind
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...any)  {}
func (nopLogger) Error(msg string, keysAndValues ...any) {}
func (nopLogger) Debug(msg string, keysAndValues ...any) {}
func (nopLogger) Warn(msg string, keysAndValues ...any)  {}

func newTestService(provider ai.Provider, registry *Registry, threads *fakeThreadRepo, messages *fakeMessageRepo) *service {
	cfg := DefaultConfig()
	return &service{
		provider: provider,
		registry: registry,
		threads:  threads,
		messages: messages,
		config:   cfg,
		logger:   nopLogger{},
	}
}

func emptyRegistry() *Registry {
	r, _ := NewRegistry()
	return r
}
