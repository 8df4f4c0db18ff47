// Package commands implements the cosmogony subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/cosmogony/internal/cli/config"
)

// newLogger builds the process logger from the loaded config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
