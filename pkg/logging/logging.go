// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
// Unknown names fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger tagged with the module name and version.
func NewStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: level == slog.LevelDebug,
		Level:     level,
	})
	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the slog default.
// The level is read from the LOG_LEVEL environment variable.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, ParseLevel(os.Getenv("LOG_LEVEL"))))
}

// SetDefaultCLILogger installs a human readable text logger on stderr.
func SetDefaultCLILogger(level slog.Level) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}
