// File: internal/services/user_services/types.go
package user_services

// Logger interface for all user services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// maskEmail keeps logs useful without leaking full addresses.
func maskEmail(email string) string {
	if len(email) <= 4 {
		return "****"
	}
	return email[:4] + "****"
}
