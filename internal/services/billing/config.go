// File: internal/services/billing/config.go
package billing

import (
	"errors"
	"time"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.billing.example.com/v1",
		Timeout:    15 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("billing API key is required")
	}
	if c.BaseURL == "" {
		return errors.New("billing base URL is required")
	}
	if c.Timeout <= 0 {
		return errors.New("billing timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return errors.New("billing max retries must be at least 1")
	}
	return nil
}
