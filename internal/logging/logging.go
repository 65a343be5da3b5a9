// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
)

// Setup builds a slog logger: JSON at Info level for production log
// aggregation, text at Debug level for development.
func Setup(format string) *slog.Logger {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
