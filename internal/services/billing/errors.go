// File: internal/services/billing/errors.go
package billing

import "fmt"

const (
	ErrTypeConfig    = "CONFIG_ERROR"
	ErrTypeProvider  = "PROVIDER_ERROR"
	ErrTypeRateLimit = "RATE_LIMIT_ERROR"
)

type BillingError struct {
	Type      string
	Operation string
	Message   string
	Cause     error
}

func (e *BillingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (cause: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Operation, e.Message)
}

func (e *BillingError) Unwrap() error {
	return e.Cause
}

func NewConfigError(message string) *BillingError {
	return &BillingError{Type: ErrTypeConfig, Operation: "configuration", Message: message}
}

func NewProviderError(operation, message string, cause error) *BillingError {
	return &BillingError{Type: ErrTypeProvider, Operation: operation, Message: message, Cause: cause}
}

func NewRateLimitError(operation string) *BillingError {
	return &BillingError{Type: ErrTypeRateLimit, Operation: operation, Message: "billing API rate limit exceeded"}
}

// IsRetryable reports whether the error is worth another attempt. Config
// problems and rate limits are not.
func IsRetryable(err error) bool {
	be, ok := err.(*BillingError)
	if !ok {
		return true
	}
	switch be.Type {
	case ErrTypeConfig, ErrTypeRateLimit:
		return false
	}
	return true
}
