// Package logging builds the structured logger used by every command and
// owns the level and format names accepted by log_level and log_format.
package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// Log formats accepted by log_format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a log_level name onto its slog level.
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levels[name]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", name)
	}
	return level, nil
}

// CheckFormat rejects log_format names New cannot honour.
func CheckFormat(name string) error {
	if name != FormatText && name != FormatJSON {
		return fmt.Errorf("unknown log_format %q", name)
	}
	return nil
}

// New returns a logger writing to w. Formats other than FormatJSON use the
// text handler.
func New(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
