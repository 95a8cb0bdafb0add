package common

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dtnitsch/wikifreq/models"
)

// NewLogger builds the JSON logger writing to stderr and, when a log file is
// configured, to a size-rotated file. quiet drops everything below Error.
// The returned function closes the log file.
func NewLogger(cfg models.LogConfig, quiet bool) (*slog.Logger, func() error) {
	return newLogger(os.Stderr, cfg, quiet)
}

func newLogger(stderr io.Writer, cfg models.LogConfig, quiet bool) (*slog.Logger, func() error) {
	logLevel := parseLevel(cfg.Level)
	if quiet {
		logLevel = slog.LevelError
	}

	var out io.Writer = stderr
	closer := func() error { return nil }
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		out = io.MultiWriter(stderr, rotating)
		closer = rotating.Close
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: logLevel}))
	return logger, closer
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
