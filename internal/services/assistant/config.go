// File: internal/services/assistant/config.go
package assistant

import (
	"errors"
	"time"
)

type Config struct {
	ChatModel  string
	TitleModel string

	// MaxToolSteps bounds the model/tool round trips in a single chat
	// request. When the ceiling is hit the partial transcript is returned
	// as the final answer.
	MaxToolSteps int

	TitleMaxLength int
	TitleTimeout   time.Duration

	// PersistWindow is how many trailing messages of the incoming
	// transcript are written back per request.
	PersistWindow int

	StreamTimeout time.Duration
	SaveTimeout   time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		ChatModel:      "gpt-4o",
		TitleModel:     "gpt-4o-mini",
		MaxToolSteps:   5,
		TitleMaxLength: 100,
		TitleTimeout:   10 * time.Second,
		PersistWindow:  2,
		StreamTimeout:  120 * time.Second,
		SaveTimeout:    10 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.ChatModel == "" {
		return errors.New("chat model is required")
	}
	if c.TitleModel == "" {
		return errors.New("title model is required")
	}
	if c.MaxToolSteps < 1 {
		return errors.New("max tool steps must be at least 1")
	}
	if c.TitleMaxLength < 1 {
		return errors.New("title max length must be positive")
	}
	if c.PersistWindow < 1 {
		return errors.New("persist window must be at least 1")
	}
	return nil
}
