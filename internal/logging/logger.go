// Package logging wires the process logger: JSON to stdout for every
// record, with ERROR+ records additionally batched into Postgres once the
// database is up (PGHandler). Records may carry moderation attrs
// (moderator_id, submission_id, action) that the PG sink maps onto
// system_log columns.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the stdout JSON logger. The caller swaps in the Postgres
// fan-out after the database connection exists.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

// StdoutHandler returns the JSON handler used both at boot and as the
// stdout leg of the fan-out.
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
