// Package logging builds the slog handlers used by the waypoint command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// levelOptions is the parsed form of a level name. "trace" is debug output
// with caller information.
type levelOptions struct {
	level     slog.Level
	caller    bool
	timestamp bool
}

func parseLevel(name string) levelOptions {
	switch strings.ToLower(name) {
	case "trace":
		return levelOptions{level: slog.LevelDebug, caller: true, timestamp: true}
	case "debug":
		return levelOptions{level: slog.LevelDebug, timestamp: true}
	case "warn", "warning":
		return levelOptions{level: slog.LevelWarn}
	case "error":
		return levelOptions{level: slog.LevelError}
	}
	return levelOptions{level: slog.LevelInfo}
}

// NewTextHandler returns a human readable handler writing to w, or to
// stderr when w is nil. Unknown level names mean info.
func NewTextHandler(level string, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stderr
	}

	opts := parseLevel(level)

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: opts.timestamp,
		ReportCaller:    opts.caller,
		Level:           charmLevel(opts.level),
	})
}

func charmLevel(l slog.Level) log.Level {
	switch l {
	case slog.LevelDebug:
		return log.DebugLevel
	case slog.LevelWarn:
		return log.WarnLevel
	case slog.LevelError:
		return log.ErrorLevel
	}
	return log.InfoLevel
}

// NewJSONHandler returns a JSON handler writing to w, or to stdout when w
// is nil.
func NewJSONHandler(level string, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stdout
	}

	opts := parseLevel(level)

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     opts.level,
		AddSource: opts.caller,
	})
}

// NewHandler returns the handler for format, which is FormatText or
// FormatJSON.
func NewHandler(format, level string, w io.Writer) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return NewTextHandler(level, w), nil
	case FormatJSON:
		return NewJSONHandler(level, w), nil
	}
	return nil, fmt.Errorf("unsupported log format %q", format)
}

// Setup installs a logger with the given format and level as the slog
// default and returns it.
func Setup(format, level string) (*slog.Logger, error) {
	handler, err := NewHandler(format, level, nil)
	if err != nil {
		return nil, err
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}
