package logging

import (
	"log/slog"
	"strings"

	"github.com/Iron-Ham/groundcrew/internal/errors"
)

// Level is an ordered log severity. A message passes the service gate only
// when its level is at or above the configured minimum.
type Level int8

// Log levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// String returns the upper-case level name used in log output.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// slogLevelCritical sits above slog.LevelError so JSON output keeps the
// distinction between errors and critical failures.
const slogLevelCritical = slog.LevelError + 4

// slogLevel maps a Level onto the slog scale.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slogLevelCritical
	}
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and accepts both "warn" and "warning". Unknown names are rejected.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return LevelInfo, errors.NewInvalidArgumentError("unrecognized log level").
			WithField("level").
			WithValue(name).
			WithCause(errors.ErrUnknownLevel)
	}
}

// ValidLevels returns the accepted level names in ascending severity.
func ValidLevels() []string {
	return []string{"debug", "info", "warn", "error", "critical"}
}
