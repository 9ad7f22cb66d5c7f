// File: internal/services/assistant/loop.go
package assistant

import (
	"context"
	"encoding/json"

	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/services/ai"
)

// loopResult is the outcome of one tool-augmented model run: the assistant
// message parts in arrival order plus whether the step ceiling cut the run
// short.
type loopResult struct {
	Parts     []domain.MessagePart
	Steps     int
	Truncated bool
}

// runLoop drives the model/tool round trips for one chat request. Each
// iteration streams one model turn; tool calls are executed, their results
// appended to the conversation, and the model is called again until it
// produces a plain answer or the step ceiling is reached. Hitting the
// ceiling is not an error: whatever transcript exists is the answer.
func (s *service) runLoop(ctx context.Context, userID uint, messages []ai.ChatMessage, sink EventSink) (*loopResult, error) {
	result := &loopResult{}
	convo := messages

	for step := 0; step < s.config.MaxToolSteps; step++ {
		result.Steps = step + 1

		turn, err := s.provider.StreamChat(ctx, ai.ChatRequest{
			Model:    s.config.ChatModel,
			Messages: convo,
			Tools:    s.registry.Definitions(),
		}, sink.TextDelta)
		if err != nil {
			// A failed delta write means the client went away, not that the
			// provider misbehaved.
			if ai.IsDeliveryError(err) {
				s.logger.Debug("Stream delivery interrupted",
					"user_id", userID, "error", err)
				return nil, err
			}
			return nil, NewUpstreamError("chat stream", err)
		}

		if turn.Content != "" {
			result.Parts = append(result.Parts, domain.MessagePart{
				Type: domain.PartTypeText,
				Text: turn.Content,
			})
		}

		if len(turn.ToolCalls) == 0 {
			return result, nil
		}

		convo = append(convo, ai.ChatMessage{
			Role:      ai.RoleAssistant,
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		})

		for _, call := range turn.ToolCalls {
			if err := sink.ToolCall(call.ID, call.Name, call.Arguments); err != nil {
				return nil, err
			}
			result.Parts = append(result.Parts, domain.MessagePart{
				Type:       domain.PartTypeToolInvocation,
				ToolCallID: call.ID,
				ToolName:   call.Name,
				Args:       call.Arguments,
			})

			payload, isErr := s.executeToolCall(ctx, userID, call)

			if err := sink.ToolResult(call.ID, call.Name, payload, isErr); err != nil {
				return nil, err
			}
			result.Parts = append(result.Parts, domain.MessagePart{
				Type:       domain.PartTypeToolResult,
				ToolCallID: call.ID,
				ToolName:   call.Name,
				Result:     payload,
				IsError:    isErr,
			})

			convo = append(convo, ai.ChatMessage{
				Role:       ai.RoleTool,
				Content:    string(payload),
				ToolCallID: call.ID,
				Name:       call.Name,
			})
		}
	}

	s.logger.Warn("Tool step ceiling reached, returning partial transcript",
		"user_id", userID, "steps", result.Steps)
	result.Truncated = true
	return result, nil
}

// executeToolCall runs one tool call and always produces a JSON payload the
// model can read. Failures become error payloads rather than aborting the
// loop, so the model can self-correct.
func (s *service) executeToolCall(ctx context.Context, userID uint, call ai.ToolCall) (json.RawMessage, bool) {
	tool, err := s.registry.Lookup(call.Name)
	if err != nil {
		return toolErrorPayload(err), true
	}

	args, err := tool.ValidateArgs(call.Arguments)
	if err != nil {
		s.logger.Debug("Tool arguments rejected",
			"tool", call.Name, "user_id", userID, "error", err)
		return toolErrorPayload(err), true
	}

	out, err := tool.Execute(ctx, userID, args)
	if err != nil {
		s.logger.Error("Tool execution failed",
			"tool", call.Name, "user_id", userID, "error", err)
		return toolErrorPayload(err), true
	}

	payload, err := json.Marshal(out)
	if err != nil {
		s.logger.Error("Tool result not serializable",
			"tool", call.Name, "error", err)
		return toolErrorPayload(err), true
	}
	return payload, false
}

func toolErrorPayload(err error) json.RawMessage {
	payload, mErr := json.Marshal(map[string]string{"error": err.Error()})
	if mErr != nil {
		return json.RawMessage(`{"error":"tool failed"}`)
	}
	return payload
}
