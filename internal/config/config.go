// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	DatabasePath string
	JWTSecretKey string

	// Hosted model provider (OpenAI-compatible API).
	LLMAPIKey  string
	LLMBaseURL string
	ChatModel  string
	TitleModel string

	// Ceiling on model/tool round-trips within one chat request.
	MaxToolSteps int

	// Billing metrics provider.
	BillingAPIKey  string
	BillingBaseURL string

	// Transactional email provider.
	MailAPIKey  string
	MailBaseURL string
	MailFrom    string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    env,
		DatabasePath:   getEnv("DATABASE_PATH", "launchkit.db"),
		JWTSecretKey:   getEnv("JWT_SECRET_KEY", ""),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
		ChatModel:      getEnv("CHAT_MODEL", "gpt-4o"),
		TitleModel:     getEnv("TITLE_MODEL", "gpt-4o-mini"),
		MaxToolSteps:   getEnvAsInt("ASSISTANT_MAX_TOOL_STEPS", 5),
		BillingAPIKey:  getEnv("BILLING_API_KEY", ""),
		BillingBaseURL: getEnv("BILLING_BASE_URL", ""),
		MailAPIKey:     getEnv("MAIL_API_KEY", ""),
		MailBaseURL:    getEnv("MAIL_BASE_URL", ""),
		MailFrom:       getEnv("MAIL_FROM", "hello@launchkit.dev"),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}
		if cfg.BillingAPIKey == "" {
			missing = append(missing, "BILLING_API_KEY")
		}
		if cfg.BillingBaseURL == "" {
			missing = append(missing, "BILLING_BASE_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
