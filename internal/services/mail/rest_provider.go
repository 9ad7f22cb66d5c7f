// File: internal/services/mail/rest_provider.go
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RESTProvider sends email through a hosted transactional mail API.
type RESTProvider struct {
	config *Config
	client *http.Client
}

func NewRESTProvider(config *Config) (*RESTProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	return &RESTProvider{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

func (p *RESTProvider) Send(ctx context.Context, msg Message) error {
	const op = "send email"

	htmlBody, err := renderHTML(msg.Body)
	if err != nil {
		return NewRenderError(op, err)
	}

	payload := map[string]any{
		"from":    p.config.From,
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    htmlBody,
		"text":    msg.Body,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return NewProviderError(op, "invalid payload", err)
	}

	return withRetry(ctx, p.config.MaxRetries, p.config.RetryDelay, func() error {
		return p.send(ctx, body)
	})
}

func (p *RESTProvider) send(ctx context.Context, body []byte) error {
	const op = "send email"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return NewProviderError(op, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return NewProviderError(op, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return NewProviderError(op, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, respBody), nil)
	}
	return nil
}

// ConsoleProvider logs email instead of sending it. Used in development.
type ConsoleProvider struct {
	logger Logger
}

func NewConsoleProvider(logger Logger) *ConsoleProvider {
	return &ConsoleProvider{logger: logger}
}

func (p *ConsoleProvider) Send(ctx context.Context, msg Message) error {
	p.logger.Info("Email (console mode)",
		"to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
