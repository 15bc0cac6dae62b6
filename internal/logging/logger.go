package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger writes JSON-formatted records through log/slog. It serves two
// roles: it is the default Sink behind a Service, and it is the operational
// logger other packages use for their own diagnostics. It is safe for
// concurrent use.
type Logger struct {
	logger *slog.Logger
	out    *output     // shared with child loggers
	attrs  []slog.Attr // persistent attributes (component, ...)
}

// output tracks the closable destination shared by a Logger and its children.
type output struct {
	mu     sync.Mutex
	closer io.Closer
}

// NewLogger creates a Logger that appends JSON records to the file at path,
// creating parent directories as needed. An empty path writes to stderr.
// Records below level are dropped by the handler.
func NewLogger(path string, level Level) (*Logger, error) {
	if path == "" {
		return NewLoggerTo(os.Stderr, level), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewLoggerTo(file, level)
	l.out.closer = file
	return l, nil
}

// NewLoggerWithRotation creates a Logger that writes to path through a
// RotatingWriter configured by cfg.
func NewLoggerWithRotation(path string, level Level, cfg RotationConfig) (*Logger, error) {
	rw, err := NewRotatingWriter(path, cfg)
	if err != nil {
		return nil, err
	}

	l := NewLoggerTo(rw, level)
	l.out.closer = rw
	return l, nil
}

// NewLoggerTo creates a Logger writing JSON records to w. The caller keeps
// ownership of w.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	opts := &slog.HandlerOptions{
		Level: level.slogLevel(),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lv, ok := a.Value.Any().(slog.Level); ok && lv >= slogLevelCritical {
					a.Value = slog.StringValue(LevelCritical.String())
				}
			}
			return a
		},
	}

	return &Logger{
		logger: slog.New(slog.NewJSONHandler(w, opts)),
		out:    &output{},
	}
}

// WithComponent returns a child Logger that tags every record with the
// component name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.withAttr(slog.String("component", component))
}

// With returns a child Logger with arbitrary key-value attributes.
// Keys and values are provided as alternating arguments.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}

	newAttrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2)
	newAttrs = append(newAttrs, l.attrs...)
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		newAttrs = append(newAttrs, slog.Any(key, args[i+1]))
	}

	child := *l
	child.attrs = newAttrs
	return &child
}

func (l *Logger) withAttr(attr slog.Attr) *Logger {
	newAttrs := make([]slog.Attr, len(l.attrs)+1)
	copy(newAttrs, l.attrs)
	newAttrs[len(l.attrs)] = attr

	child := *l
	child.attrs = newAttrs
	return &child
}

// Debug logs a message at DEBUG level with optional key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs a message at INFO level with optional key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a message at WARN level with optional key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarning, msg, args...)
}

// Error logs a message at ERROR level with optional key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

// Write implements Sink. The context string and category set become record
// attributes.
func (l *Logger) Write(level Level, categories Category, context, message string) {
	l.log(level, message, "context", context, "categories", categories.String())
}

func (l *Logger) log(level Level, msg string, args ...any) {
	allArgs := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		allArgs = append(allArgs, attr.Key, attr.Value.Any())
	}
	allArgs = append(allArgs, args...)

	l.logger.Log(context.Background(), level.slogLevel(), msg, allArgs...)
}

// Close flushes and closes the underlying file, if the Logger owns one.
// Loggers writing to stderr or a caller-owned writer treat Close as a no-op.
func (l *Logger) Close() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.closer == nil {
		return nil
	}
	if f, ok := l.out.closer.(*os.File); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
	}
	if err := l.out.closer.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	l.out.closer = nil
	return nil
}

// NopLogger returns a Logger that discards all output.
// Useful for testing or when logging is disabled.
func NopLogger() *Logger {
	return NewLoggerTo(io.Discard, LevelDebug)
}

var _ Sink = (*Logger)(nil)
