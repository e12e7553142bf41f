package logger

import "context"

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger is the structured logging interface used across the service.
type Logger interface {
	// Debug logs a debug-level message with optional fields.
	Debug(ctx context.Context, msg string, fields Fields)

	// Info logs an info-level message with optional fields.
	Info(ctx context.Context, msg string, fields Fields)

	// Warn logs a warning-level message with optional fields.
	Warn(ctx context.Context, msg string, fields Fields)

	// Error logs an error-level message with optional fields.
	Error(ctx context.Context, msg string, fields Fields)

	// WithFields returns a logger that attaches the given fields to every entry.
	WithFields(fields Fields) Logger
}
