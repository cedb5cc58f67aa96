// Package logger provides the application's logging facade over log/slog.
package logger

import "context"

// Logger defines the logging interface
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
	// InfoContext logs with the span of ctx attached when tracing is active.
	InfoContext(ctx context.Context, msg string, attrs ...interface{})
	// ErrorContext logs with the span of ctx attached when tracing is active.
	ErrorContext(ctx context.Context, msg string, attrs ...interface{})
}
