package common

import "github.com/urfave/cli/v2"

// GlobalFlags are accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "config.yaml",
			Usage: "YAML config file (optional)",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "word count file (default: word-counts.json)",
		},
		&cli.BoolFlag{
			Name:  "offline",
			Usage: "read articles from the HTML cache only",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "wiki article base URL, ending in /",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "directory of cached article HTML",
		},
		&cli.StringFlag{
			Name:  "history-db",
			Usage: "SQLite crawl history database",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to this file (rotated)",
		},
	}
}
