// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"encoding/json"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible completion API. It is
// constructed explicitly and injected where needed; there is no package-level
// client.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// GetCompletion performs a one-shot completion; used by the title summarizer.
func (p *OpenAIProvider) GetCompletion(ctx context.Context, model, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	var content string
	err := withRetry(callCtx, p.config.MaxRetries, p.config.RetryDelay, func() error {
		resp, err := p.client.CreateChatCompletion(
			callCtx,
			openai.ChatCompletionRequest{
				Model: model,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleUser, Content: prompt},
				},
				Temperature: p.config.Temperature,
				TopP:        p.config.TopP,
			},
		)
		if err != nil {
			return NewProviderError("completion", "failed to create completion", err)
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return &AIError{
				Type:      ErrTypeProvider,
				Operation: "completion",
				Message:   "empty completion response",
				Model:     model,
			}
		}

		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

// StreamChat runs one streaming chat call with declared tools. Text deltas
// are forwarded to onDelta as they arrive; tool call fragments are
// accumulated until the stream ends and returned on the Turn.
func (p *OpenAIProvider) StreamChat(ctx context.Context, req ChatRequest, onDelta func(string) error) (*Turn, error) {
	streamCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	// Retries only cover stream creation; once deltas have been delivered a
	// turn cannot be replayed.
	var stream *openai.ChatCompletionStream
	err := withRetry(streamCtx, p.config.MaxRetries, p.config.RetryDelay, func() error {
		s, sErr := p.client.CreateChatCompletionStream(streamCtx, openai.ChatCompletionRequest{
			Model:       req.Model,
			Messages:    toOpenAIMessages(req.Messages),
			Tools:       toOpenAITools(req.Tools),
			Temperature: p.config.Temperature,
			TopP:        p.config.TopP,
		})
		if sErr != nil {
			return NewProviderError("streaming", "failed to create stream", sErr)
		}
		stream = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	turn := &Turn{}
	acc := newToolCallAccumulator()

	for {
		response, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				turn.ToolCalls = acc.calls()
				return turn, nil
			}
			return nil, NewProviderError("streaming", "stream receive error", err)
		}

		if len(response.Choices) == 0 {
			continue
		}
		choice := response.Choices[0]

		if choice.Delta.Content != "" {
			turn.Content += choice.Delta.Content
			if onDelta != nil {
				if cbErr := onDelta(choice.Delta.Content); cbErr != nil {
					return nil, &DeliveryError{Cause: cbErr}
				}
			}
		}

		for _, tc := range choice.Delta.ToolCalls {
			acc.add(tc)
		}

		if choice.FinishReason != "" {
			turn.FinishReason = string(choice.FinishReason)
		}
	}
}

// toolCallAccumulator reassembles tool calls from stream fragments. The API
// sends the call ID and name first, then the argument JSON in chunks keyed
// by index.
type toolCallAccumulator struct {
	order []int
	byIdx map[int]*ToolCall
	args  map[int]string
}

func newToolCallAccumulator() *toolCallAccumulator {
	return &toolCallAccumulator{
		byIdx: make(map[int]*ToolCall),
		args:  make(map[int]string),
	}
}

func (a *toolCallAccumulator) add(tc openai.ToolCall) {
	idx := 0
	if tc.Index != nil {
		idx = *tc.Index
	}

	call, exists := a.byIdx[idx]
	if !exists {
		call = &ToolCall{}
		a.byIdx[idx] = call
		a.order = append(a.order, idx)
	}
	if tc.ID != "" {
		call.ID = tc.ID
	}
	if tc.Function.Name != "" {
		call.Name = tc.Function.Name
	}
	a.args[idx] += tc.Function.Arguments
}

func (a *toolCallAccumulator) calls() []ToolCall {
	if len(a.order) == 0 {
		return nil
	}
	out := make([]ToolCall, 0, len(a.order))
	for _, idx := range a.order {
		call := *a.byIdx[idx]
		raw := a.args[idx]
		if raw == "" {
			raw = "{}"
		}
		call.Arguments = json.RawMessage(raw)
		out = append(out, call)
	}
	return out
}

func toOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msg := openai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
			Name:       m.Name,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(tc.Arguments),
				},
			})
		}
		out = append(out, msg)
	}
	return out
}

func toOpenAITools(tools []ToolDefinition) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}
