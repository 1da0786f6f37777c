package logging

import (
	"log/slog"
	"os"
)

// CreateLogger builds the base logger for the given environment: JSON output
// in PROD, human-readable text everywhere else. debug lowers the level so the
// connection-lifecycle logs on the streaming paths become visible.
func CreateLogger(env string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	if env == "PROD" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
