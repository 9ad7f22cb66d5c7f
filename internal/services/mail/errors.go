// File: internal/services/mail/errors.go
package mail

import "fmt"

const (
	ErrTypeConfig   = "CONFIG_ERROR"
	ErrTypeRender   = "RENDER_ERROR"
	ErrTypeProvider = "PROVIDER_ERROR"
)

type MailError struct {
	Type      string
	Operation string
	Message   string
	Cause     error
}

func (e *MailError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (cause: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Operation, e.Message)
}

func (e *MailError) Unwrap() error {
	return e.Cause
}

func NewConfigError(message string) *MailError {
	return &MailError{Type: ErrTypeConfig, Operation: "configuration", Message: message}
}

func NewRenderError(operation string, cause error) *MailError {
	return &MailError{Type: ErrTypeRender, Operation: operation, Message: "failed to render email body", Cause: cause}
}

func NewProviderError(operation, message string, cause error) *MailError {
	return &MailError{Type: ErrTypeProvider, Operation: operation, Message: message, Cause: cause}
}

// IsRetryable reports whether a failed send may succeed on a later attempt.
// Config and render failures never will.
func IsRetryable(err error) bool {
	if mailErr, ok := err.(*MailError); ok {
		return mailErr.Type == ErrTypeProvider
	}
	return false
}
