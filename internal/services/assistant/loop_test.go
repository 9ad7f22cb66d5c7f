// File: internal/services/assistant/loop_test.go
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/services/ai"
)

func userMessage(text string) []ai.ChatMessage {
	return []ai.ChatMessage{{Role: ai.RoleUser, Content: text}}
}

func TestRunLoopPlainAnswer(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		streamFn: func(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error) {
			require.NoError(t, onDelta("hello "))
			require.NoError(t, onDelta("world"))
			return &ai.Turn{Content: "hello world", FinishReason: "stop"}, nil
		},
	}
	svc := newTestService(provider, emptyRegistry(), newFakeThreadRepo(), newFakeMessageRepo())
	sink := &recordSink{}

	result, err := svc.runLoop(context.Background(), 1, userMessage("hi"), sink)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Steps)
	assert.False(t, result.Truncated)
	require.Len(t, result.Parts, 1)
	assert.Equal(t, "hello world", result.Parts[0].Text)
	assert.Equal(t, []string{"text-delta", "text-delta"}, sink.kinds())
}

func TestRunLoopExecutesToolsThenAnswers(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(echoTool("echo"))
	require.NoError(t, err)

	provider := &stubProvider{}
	provider.streamFn = func(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error) {
		if provider.streamCalls == 1 {
			return &ai.Turn{
				ToolCalls: []ai.ToolCall{{
					ID:        "call_1",
					Name:      "echo",
					Arguments: json.RawMessage(`{"value":"pong"}`),
				}},
				FinishReason: "tool_calls",
			}, nil
		}

		// The tool result must be visible on the follow-up call.
		last := req.Messages[len(req.Messages)-1]
		require.Equal(t, ai.RoleTool, last.Role)
		require.Equal(t, "call_1", last.ToolCallID)
		require.Contains(t, last.Content, "pong")

		require.NoError(t, onDelta("done"))
		return &ai.Turn{Content: "done", FinishReason: "stop"}, nil
	}

	svc := newTestService(provider, registry, newFakeThreadRepo(), newFakeMessageRepo())
	sink := &recordSink{}

	result, err := svc.runLoop(context.Background(), 1, userMessage("echo pong"), sink)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Steps)
	assert.False(t, result.Truncated)

	types := make([]string, len(result.Parts))
	for i, p := range result.Parts {
		types[i] = p.Type
	}
	assert.Equal(t, []string{
		domain.PartTypeToolInvocation,
		domain.PartTypeToolResult,
		domain.PartTypeText,
	}, types)
	assert.Equal(t, []string{"tool-call", "tool-result", "text-delta"}, sink.kinds())
}

func TestRunLoopStopsAtStepCeiling(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(echoTool("echo"))
	require.NoError(t, err)

	// A model that never stops asking for tools.
	provider := &stubProvider{
		streamFn: func(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error) {
			return &ai.Turn{
				ToolCalls: []ai.ToolCall{{
					ID:        "call_n",
					Name:      "echo",
					Arguments: json.RawMessage(`{"value":"again"}`),
				}},
				FinishReason: "tool_calls",
			}, nil
		},
	}

	svc := newTestService(provider, registry, newFakeThreadRepo(), newFakeMessageRepo())
	sink := &recordSink{}

	result, err := svc.runLoop(context.Background(), 1, userMessage("loop"), sink)
	require.NoError(t, err, "hitting the ceiling is not an error")
	assert.Equal(t, svc.config.MaxToolSteps, result.Steps)
	assert.Equal(t, svc.config.MaxToolSteps, provider.streamCalls)
	assert.True(t, result.Truncated)
	assert.NotEmpty(t, result.Parts)
}

func TestRunLoopFeedsArgumentErrorsBack(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(echoTool("echo"))
	require.NoError(t, err)

	provider := &stubProvider{}
	provider.streamFn = func(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error) {
		if provider.streamCalls == 1 {
			return &ai.Turn{
				ToolCalls: []ai.ToolCall{{
					ID:        "call_bad",
					Name:      "echo",
					Arguments: json.RawMessage(`{"wrong":"field"}`),
				}},
				FinishReason: "tool_calls",
			}, nil
		}

		last := req.Messages[len(req.Messages)-1]
		require.Equal(t, ai.RoleTool, last.Role)
		require.Contains(t, last.Content, "error")

		return &ai.Turn{Content: "sorry, let me retry", FinishReason: "stop"}, nil
	}

	svc := newTestService(provider, registry, newFakeThreadRepo(), newFakeMessageRepo())
	sink := &recordSink{}

	result, err := svc.runLoop(context.Background(), 1, userMessage("bad args"), sink)
	require.NoError(t, err, "argument errors go back to the model, not the caller")
	assert.Equal(t, 2, result.Steps)

	var sawErrorResult bool
	for _, p := range result.Parts {
		if p.Type == domain.PartTypeToolResult && p.IsError {
			sawErrorResult = true
		}
	}
	assert.True(t, sawErrorResult)
}

func TestRunLoopUpstreamFailure(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		streamFn: func(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(provider, emptyRegistry(), newFakeThreadRepo(), newFakeMessageRepo())

	_, err := svc.runLoop(context.Background(), 1, userMessage("hi"), &recordSink{})
	require.Error(t, err)

	ae, ok := err.(*AssistantError)
	require.True(t, ok)
	assert.Equal(t, ErrTypeUpstream, ae.Type)
}

// failingSink simulates a client that went away mid-stream.
type failingSink struct {
	recordSink
	deltaErr error
}

func (s *failingSink) TextDelta(text string) error {
	return s.deltaErr
}

func TestRunLoopClientDisconnectIsNotUpstream(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		streamFn: func(ctx context.Context, req ai.ChatRequest, onDelta func(string) error) (*ai.Turn, error) {
			if err := onDelta("partial"); err != nil {
				return nil, &ai.DeliveryError{Cause: err}
			}
			return &ai.Turn{Content: "partial", FinishReason: "stop"}, nil
		},
	}
	svc := newTestService(provider, emptyRegistry(), newFakeThreadRepo(), newFakeMessageRepo())
	sink := &failingSink{deltaErr: errors.New("broken pipe")}

	_, err := svc.runLoop(context.Background(), 1, userMessage("hi"), sink)
	require.Error(t, err)
	assert.True(t, ai.IsDeliveryError(err))

	_, isUpstream := err.(*AssistantError)
	assert.False(t, isUpstream, "a dropped client must not read as a provider fault")
}
