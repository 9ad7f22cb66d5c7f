// File: internal/services/assistant/service.go
package assistant

import (
	"context"
	"errors"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/message"
	"github.com/launchkit/launchkit/internal/repository/thread"
	"github.com/launchkit/launchkit/internal/services/ai"
)

// Service is the chat surface consumed by HTTP handlers. There is exactly
// one chat implementation behind it.
type Service interface {
	// Chat runs one tool-augmented model call for the request, streaming
	// progress to sink and persisting the exchange.
	Chat(ctx context.Context, userID uint, req *ChatRequest, sink EventSink) error
	ListThreads(ctx context.Context, userID uint) ([]domain.Thread, error)
	ThreadMessages(ctx context.Context, userID uint, threadID string) ([]domain.Message, error)
	DeleteThread(ctx context.Context, userID uint, threadID string) error
}

type service struct {
	provider ai.Provider
	registry *Registry
	threads  thread.ThreadRepository
	messages message.MessageRepository
	config   *Config
	logger   Logger
}

func NewService(
	provider ai.Provider,
	registry *Registry,
	threads thread.ThreadRepository,
	messages message.MessageRepository,
	config *Config,
	logger Logger,
) (Service, error) {
	if provider == nil {
		return nil, errors.New("assistant service: provider is required")
	}
	if registry == nil {
		return nil, errors.New("assistant service: tool registry is required")
	}
	if threads == nil || messages == nil {
		return nil, errors.New("assistant service: repositories are required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errors.New("assistant service: logger is required")
	}

	return &service{
		provider: provider,
		registry: registry,
		threads:  threads,
		messages: messages,
		config:   config,
		logger:   logger,
	}, nil
}

func (s *service) Chat(ctx context.Context, userID uint, req *ChatRequest, sink EventSink) error {
	th, err := s.findOrCreateThread(ctx, userID, req.ThreadID)
	if err != nil {
		return err
	}

	outcome := s.maybeGenerateTitle(ctx, th, req.Messages)
	if outcome.Failed {
		s.logger.Debug("Continuing chat without generated title",
			"thread_id", th.ID, "reason", outcome.Reason)
	}

	streamCtx, cancel := context.WithTimeout(ctx, s.config.StreamTimeout)
	defer cancel()

	result, err := s.runLoop(streamCtx, userID, toModelMessages(req.Messages), sink)
	if err != nil {
		return err
	}

	assistantMsg := &domain.Message{
		ID:       domain.NewMessageID(),
		ThreadID: th.ID,
		Role:     domain.RoleAssistant,
		Parts:    result.Parts,
	}
	if err := s.persistExchange(th.ID, userID, req.Messages, assistantMsg); err != nil {
		s.logger.Error("Failed to persist chat exchange",
			"thread_id", th.ID, "user_id", userID, "error", err)
		// The content already streamed; report the save failure in-stream
		// instead of failing the delivered response.
		if sErr := sink.StreamError("failed to save the conversation"); sErr != nil {
			return sErr
		}
	}

	return sink.Done()
}

// findOrCreateThread loads the thread named by the request, creating it with
// a placeholder title on first use. A thread owned by someone else is
// indistinguishable from a missing one to the caller.
func (s *service) findOrCreateThread(ctx context.Context, userID uint, threadID string) (*domain.Thread, error) {
	const op = "find or create thread"

	th, err := s.threads.FindByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, thread.ErrThreadNotFound) {
			created, cErr := s.threads.Create(ctx, &domain.Thread{
				ID:     threadID,
				UserID: userID,
				Title:  domain.PlaceholderTitle,
			})
			if cErr != nil {
				return nil, NewPersistenceError(op, cErr)
			}
			return created, nil
		}
		return nil, NewPersistenceError(op, err)
	}

	if th.UserID != userID {
		return nil, NewUnauthorizedError(op, "thread belongs to another user")
	}
	return th, nil
}

// persistExchange writes the trailing window of incoming messages plus the
// assistant reply. It runs on a background context so a client disconnect
// after streaming cannot lose the exchange.
func (s *service) persistExchange(threadID string, userID uint, incoming []IncomingMessage, assistantMsg *domain.Message) error {
	saveCtx, cancel := context.WithTimeout(context.Background(), s.config.SaveTimeout)
	defer cancel()

	window := incoming
	if len(window) > s.config.PersistWindow {
		window = window[len(window)-s.config.PersistWindow:]
	}

	batch := make([]*domain.Message, 0, len(window)+1)
	for _, m := range window {
		stored := &domain.Message{
			ID:       m.ID,
			ThreadID: threadID,
			Role:     m.Role,
			Parts:    m.Parts,
		}
		// Only user-authored messages carry an author reference; assistant
		// turns echoed back by the client stay unattributed.
		if m.Role == domain.RoleUser {
			stored.UserID = &userID
		}
		batch = append(batch, stored)
	}
	batch = append(batch, assistantMsg)

	if err := s.messages.UpsertBatch(saveCtx, batch); err != nil {
		return NewPersistenceError("persist exchange", err)
	}
	if err := s.threads.TouchUpdatedAt(saveCtx, threadID); err != nil {
		s.logger.Warn("Failed to bump thread timestamp",
			"thread_id", threadID, "error", err)
	}
	return nil
}

func (s *service) ListThreads(ctx context.Context, userID uint) ([]domain.Thread, error) {
	threads, err := s.threads.FindByUserID(ctx, userID)
	if err != nil {
		return nil, NewPersistenceError("list threads", err)
	}
	return threads, nil
}

func (s *service) ThreadMessages(ctx context.Context, userID uint, threadID string) ([]domain.Message, error) {
	const op = "thread messages"

	th, err := s.threads.FindByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, thread.ErrThreadNotFound) {
			return nil, NewValidationError(op, "id", "thread not found")
		}
		return nil, NewPersistenceError(op, err)
	}
	if th.UserID != userID {
		return nil, NewUnauthorizedError(op, "thread belongs to another user")
	}

	msgs, err := s.messages.FindByThreadID(ctx, threadID)
	if err != nil {
		return nil, NewPersistenceError(op, err)
	}
	return msgs, nil
}

func (s *service) DeleteThread(ctx context.Context, userID uint, threadID string) error {
	const op = "delete thread"

	if err := s.threads.Delete(ctx, threadID, userID); err != nil {
		switch {
		case errors.Is(err, thread.ErrThreadNotFound), errors.Is(err, thread.ErrUnauthorizedAccess):
			return NewUnauthorizedError(op, "thread not found or not owned by user")
		default:
			return NewPersistenceError(op, err)
		}
	}
	if err := s.messages.DeleteByThreadID(ctx, threadID); err != nil {
		return NewPersistenceError(op, err)
	}
	return nil
}

// toModelMessages converts the client transcript into model messages,
// flattening parts to text. Tool history is re-executed fresh each request
// rather than replayed.
func toModelMessages(incoming []IncomingMessage) []ai.ChatMessage {
	out := make([]ai.ChatMessage, 0, len(incoming))
	for _, m := range incoming {
		text := m.TextContent()
		if text == "" {
			continue
		}
		out = append(out, ai.ChatMessage{Role: m.Role, Content: text})
	}
	return out
}
