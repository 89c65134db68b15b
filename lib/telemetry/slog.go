package telemetry

import (
	"log/slog"
	"os"
)

var slogInitialized = false

// InitSlog installs the default text handler. verbose enables debug
// level logging, which also turns on per-row scrape diagnostics.
func InitSlog(verbose bool) {
	if slogInitialized {
		return
	}
	slogInitialized = true

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{Level: level},
	)))
}
