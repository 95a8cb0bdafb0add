package common

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikifreq/models"
)

// Env is what every action needs: the resolved configuration and a logger.
type Env struct {
	Config *models.Config
	Logger *slog.Logger
	close  func() error
}

func (e *Env) Close() error { return e.close() }

// LoadConfig resolves the configuration for c: defaults, config file,
// environment, then global flags.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("store") {
		cfg.StorePath = c.String("store")
	}
	if c.IsSet("offline") {
		cfg.Offline = c.Bool("offline")
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("history-db") {
		cfg.HistoryDB = c.String("history-db")
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Setup loads the configuration and builds the logger. Errors are already
// converted to exit errors.
func Setup(c *cli.Context) (*Env, error) {
	cfg, err := LoadConfig(c)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	logger, closer := NewLogger(cfg.Log, c.Bool("quiet"))
	return &Env{Config: cfg, Logger: logger, close: closer}, nil
}

// Fail logs err and returns the exit error for msg.
func Fail(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, "error", err)
	return cli.Exit(fmt.Sprintf("Error: %s: %v", msg, err), 1)
}
