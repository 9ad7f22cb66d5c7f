// File: internal/services/mail/interface.go
package mail

import "context"

// Message is an outbound email. Body is markdown; providers render it to
// HTML before sending.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Provider sends transactional email. All sends are best effort from the
// caller's point of view; a failed welcome email never fails a signup.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}

type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
}
