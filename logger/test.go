package logger

import (
	"context"
	"sync"
)

// Entry is a single log record captured by the test logger.
type Entry struct {
	Level   string
	Message string
	Fields  Fields
}

type capture struct {
	mu      sync.Mutex
	entries []Entry
}

// TestLogger captures log entries in memory for assertions in tests.
type TestLogger struct {
	cap    *capture
	fields Fields
}

// NewTestLogger creates an empty capturing logger.
func NewTestLogger() *TestLogger {
	return &TestLogger{cap: &capture{}, fields: Fields{}}
}

// Debug captures a debug-level entry.
func (l *TestLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.record("debug", msg, fields)
}

// Info captures an info-level entry.
func (l *TestLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.record("info", msg, fields)
}

// Warn captures a warn-level entry.
func (l *TestLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.record("warn", msg, fields)
}

// Error captures an error-level entry.
func (l *TestLogger) Error(ctx context.Context, msg string, fields Fields) {
	l.record("error", msg, fields)
}

// WithFields returns a logger sharing the same capture buffer with extra fields.
func (l *TestLogger) WithFields(fields Fields) Logger {
	return &TestLogger{cap: l.cap, fields: l.merge(fields)}
}

// Entries returns a copy of everything logged so far.
func (l *TestLogger) Entries() []Entry {
	l.cap.mu.Lock()
	defer l.cap.mu.Unlock()
	out := make([]Entry, len(l.cap.entries))
	copy(out, l.cap.entries)
	return out
}

func (l *TestLogger) merge(fields Fields) Fields {
	merged := Fields{}
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (l *TestLogger) record(level, msg string, fields Fields) {
	l.cap.mu.Lock()
	defer l.cap.mu.Unlock()
	l.cap.entries = append(l.cap.entries, Entry{Level: level, Message: msg, Fields: l.merge(fields)})
}
