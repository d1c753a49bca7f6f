// Package logging builds the slog loggers used by the commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Config holds logger configuration
type Config struct {
	Level  LogLevel
	Format string    // "json" or "text"
	Output io.Writer // defaults to stderr
}

// New returns a logger for config. Level and format names are case
// insensitive; an empty level means INFO and an empty format means text.
func New(config Config) (*slog.Logger, error) {
	writer := config.Output
	if writer == nil {
		writer = os.Stderr
	}

	var level slog.Level
	switch LogLevel(strings.ToUpper(string(config.Level))) {
	case LevelDebug:
		level = slog.LevelDebug
	case LevelInfo, "":
		level = slog.LevelInfo
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		return nil, errors.Errorf("unknown log level %q", config.Level)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(config.Format) {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	case "text", "":
		handler = slog.NewTextHandler(writer, opts)
	default:
		return nil, errors.Errorf("unknown log format %q", config.Format)
	}

	return slog.New(handler), nil
}
