// Package logging builds the slog logger used by the command-line tools. All
// handlers are wrapped so that per-run secrets never reach the log output.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oklog/ulid/v2"
)

// ErrWriterRequired is returned when no output writer is configured
var ErrWriterRequired = errors.New("logger writer is required")

// LoggerConfig holds all configuration for logger setup
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Writer io.Writer // Destination of log records, typically stderr
	RunID  string
	// Secrets are literal values scrubbed from every record
	Secrets []string
}

// GenerateRunID returns a new ULID for run identification. ULIDs sort by
// creation time, so log files from consecutive runs stay ordered.
func GenerateRunID() string {
	return ulid.Make().String()
}

// NewLogger builds a logger from config. The run ID, when set, is attached to
// every record as run_id.
func NewLogger(config LoggerConfig) (*slog.Logger, error) {
	if config.Writer == nil {
		return nil, ErrWriterRequired
	}

	level, err := config.Level.ToSlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch config.Format {
	case LogFormatText, "":
		handler = slog.NewTextHandler(config.Writer, opts)
	case LogFormatJSON:
		handler = slog.NewJSONHandler(config.Writer, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Format)
	}

	handler = NewSecretRedactingHandler(handler, config.Secrets...)
	if config.RunID != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("run_id", config.RunID),
			slog.Int("pid", os.Getpid()),
		})
	}
	return slog.New(handler), nil
}
