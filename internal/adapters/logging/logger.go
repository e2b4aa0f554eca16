package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/mekanik-go/internal/infrastructure/config"
)

// ZerologLogger adapts zerolog.Logger to the common.Logger interface
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog.Logger
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// New builds a logger from configuration. Text format writes the colored
// console layout; json writes one object per line.
func New(cfg config.LoggingConfig) (*ZerologLogger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, err
	}
	return NewZerologLogger(newLogger(writerFor(cfg), level)), nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func writerFor(cfg config.LoggingConfig) io.Writer {
	var out io.Writer = os.Stderr
	if cfg.Output == "stdout" {
		out = os.Stdout
	}
	if cfg.Format == "text" {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return out
}

// Log writes message at level with metadata as structured fields.
// Unknown levels are logged at info.
func (l *ZerologLogger) Log(level, message string, metadata map[string]interface{}) {
	var event *zerolog.Event
	switch strings.ToUpper(level) {
	case "DEBUG":
		event = l.logger.Debug()
	case "WARN", "WARNING":
		event = l.logger.Warn()
	case "ERROR":
		event = l.logger.Error()
	default:
		event = l.logger.Info()
	}
	event.Fields(metadata).Msg(message)
}

// Zerolog exposes the wrapped logger for components that log directly
func (l *ZerologLogger) Zerolog() zerolog.Logger {
	return l.logger
}
