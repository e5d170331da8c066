package logger

import (
	"log/slog"
	"os"
)

// Init sets up the global structured JSON logger. Logs go to stderr so
// command output on stdout stays machine-readable; --debug lowers the level.
func Init(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
