package quanta

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/quanta/internal/telemetry"
)

// Logger wraps slog.Logger with quanta-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithKind adds a set or coordinate-system kind field to the logger.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogConversion logs a unit conversion.
func (l *Logger) LogConversion(ctx context.Context, from, to string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "conversion failed",
			"from", from,
			"to", to,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "conversion completed",
			"from", from,
			"to", to,
			"count", count,
		)
	}
}

// LogInterp logs an interpolation batch.
func (l *Logger) LogInterp(ctx context.Context, queries, misses int) {
	if misses > 0 {
		l.WarnContext(ctx, "interpolation completed with misses",
			"queries", queries,
			"misses", misses,
		)
	} else {
		l.DebugContext(ctx, "interpolation completed",
			"queries", queries,
		)
	}
}

// SetLogger installs l as the logger every quanta package writes to.
// nil restores the silent default.
func SetLogger(l *Logger) {
	if l == nil {
		telemetry.SetLogger(nil)
		return
	}
	telemetry.SetLogger(l.Logger)
}

// CurrentLogger returns the installed logger.
func CurrentLogger() *Logger {
	return &Logger{Logger: telemetry.Logger()}
}
