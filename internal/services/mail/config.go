// File: internal/services/mail/config.go
package mail

import (
	"errors"
	"time"
)

type Config struct {
	APIKey     string
	BaseURL    string
	From       string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.mail.example.com/v1",
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("mail API key is required")
	}
	if c.BaseURL == "" {
		return errors.New("mail base URL is required")
	}
	if c.From == "" {
		return errors.New("mail sender address is required")
	}
	if c.MaxRetries < 1 {
		return errors.New("mail max retries must be at least 1")
	}
	return nil
}
