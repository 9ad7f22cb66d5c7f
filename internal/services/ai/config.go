// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// Provider Configuration
	APIKey  string
	BaseURL string

	// Model Configuration
	ChatModel  string // model used for tool-augmented chat turns
	TitleModel string // cheaper model used for title summaries

	// Performance Configuration
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.ChatModel == "" {
		return fmt.Errorf("chat_model is required")
	}
	if c.TitleModel == "" {
		return fmt.Errorf("title_model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ChatModel:   "gpt-4o",
		TitleModel:  "gpt-4o-mini",
		Timeout:     2 * time.Minute,
		MaxRetries:  3,
		RetryDelay:  time.Second,
		Temperature: 0.3,
		TopP:        0.9,
	}
}
