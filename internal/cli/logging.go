package cli

import (
	"io"
	"log/slog"

	"clicknote/internal/config"
)

// setupLogging installs the default logger. Warnings are shown unless
// --quiet is set; --debug shows everything.
func setupLogging(w io.Writer, cfg *config.Config) {
	level := slog.LevelWarn
	switch {
	case cfg.Debug:
		level = slog.LevelDebug
	case cfg.Quiet:
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
