package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleSink renders messages as human-readable lines through zerolog's
// ConsoleWriter. It is the sink behind the "console" log format.
type ConsoleSink struct {
	logger zerolog.Logger
}

// NewConsoleSink creates a ConsoleSink writing to w. Colors are disabled
// when noColor is true, e.g. when w is not a terminal.
func NewConsoleSink(w io.Writer, noColor bool) *ConsoleSink {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"context",
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"context"},
	}
	return &ConsoleSink{
		// ConsoleWriter issues one Write per event; SyncWriter keeps
		// concurrent events from interleaving on a shared writer.
		logger: zerolog.New(zerolog.SyncWriter(cw)).With().Timestamp().Logger(),
	}
}

// Write implements Sink.
func (c *ConsoleSink) Write(level Level, categories Category, context, message string) {
	c.logger.WithLevel(zerologLevel(level)).
		Str("context", context).
		Str("categories", categories.String()).
		Msg(message)
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarning:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

var _ Sink = (*ConsoleSink)(nil)
