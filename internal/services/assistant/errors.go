// File: internal/services/assistant/errors.go
package assistant

import "fmt"

const (
	ErrTypeValidation   = "VALIDATION_ERROR"
	ErrTypeUnauthorized = "UNAUTHORIZED_ERROR"
	ErrTypeToolArgs     = "TOOL_ARGUMENT_ERROR"
	ErrTypeUpstream     = "UPSTREAM_PROVIDER_ERROR"
	ErrTypePersistence  = "PERSISTENCE_ERROR"
)

// AssistantError is the single error type crossing the chat service
// boundary. Handlers map Type to an HTTP status; everything else stays
// inside the service.
type AssistantError struct {
	Type      string
	Operation string
	Field     string
	Message   string
	Cause     error
}

func (e *AssistantError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s (field: %s)", e.Type, e.Operation, e.Message, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (cause: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AssistantError) Unwrap() error {
	return e.Cause
}

func NewValidationError(operation, field, message string) *AssistantError {
	return &AssistantError{
		Type:      ErrTypeValidation,
		Operation: operation,
		Field:     field,
		Message:   message,
	}
}

func NewUnauthorizedError(operation, message string) *AssistantError {
	return &AssistantError{
		Type:      ErrTypeUnauthorized,
		Operation: operation,
		Message:   message,
	}
}

// NewToolArgumentError marks a model-supplied argument set that failed its
// tool's schema. It is fed back to the model rather than surfaced to the
// client.
func NewToolArgumentError(toolName, message string) *AssistantError {
	return &AssistantError{
		Type:      ErrTypeToolArgs,
		Operation: "tool:" + toolName,
		Message:   message,
	}
}

func NewUpstreamError(operation string, cause error) *AssistantError {
	return &AssistantError{
		Type:      ErrTypeUpstream,
		Operation: operation,
		Message:   "model provider request failed",
		Cause:     cause,
	}
}

func NewPersistenceError(operation string, cause error) *AssistantError {
	return &AssistantError{
		Type:      ErrTypePersistence,
		Operation: operation,
		Message:   "failed to persist chat data",
		Cause:     cause,
	}
}

// IsToolArgumentError reports whether err is a tool argument rejection.
func IsToolArgumentError(err error) bool {
	ae, ok := err.(*AssistantError)
	return ok && ae.Type == ErrTypeToolArgs
}
