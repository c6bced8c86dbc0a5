// Package log provides the structured logging interface used across gbtree.
//
// The Logger interface is slog-compatible in shape and is backed by zerolog in
// production (see ZerologLogger) and by TestLogger in tests. Packages obtain a
// named logger from the process-wide provider:
//
//	logger := log.GetLoggerWithName("tree.builder")
//	logger.Info("Split chosen",
//	    log.OperationKey, log.OperationFit,
//	    log.DepthKey, 2,
//	    log.FeatureKey, "age",
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface.
//
// Fields are passed as alternating key/value pairs. Error treats a leading
// error value specially: it is attached as the event's error together with
// its stack trace when one was recorded.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that deserve attention but do not stop the caller.
	Warn(msg string, fields ...any)

	// Error logs error conditions.
	//
	// Example:
	//   logger.Error("Training failed", err, log.OperationKey, log.OperationFit)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted, so callers can
	// skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It is the injection point for
// swapping the process-wide logging backend, e.g. in tests.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
