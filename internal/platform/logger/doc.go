// Package logger provides structured logging functionality for the
// application using Go's standard library log/slog package.
package logger
