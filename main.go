package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikifreq/internal/analyze"
	"github.com/dtnitsch/wikifreq/internal/common"
	"github.com/dtnitsch/wikifreq/internal/crawl"
	"github.com/dtnitsch/wikifreq/internal/db"
	"github.com/dtnitsch/wikifreq/internal/fetch"
	"github.com/dtnitsch/wikifreq/pkg/help"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "wikifreq",
		Usage:   "read wiki articles, count their words and compare them with a reference language",
		Version: version,
		Flags:   common.GlobalFlags(),
		Commands: []*cli.Command{
			{
				Name:      "summary",
				Usage:     "print the first prose paragraph of an article",
				ArgsUsage: "<phrase>",
				Action:    fetch.SummaryAction,
			},
			{
				Name:      "table",
				Usage:     "export one table of an article to CSV and print value statistics",
				ArgsUsage: "<phrase>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "number",
						Aliases: []string{"n"},
						Value:   1,
						Usage:   "1-based table index",
					},
					&cli.BoolFlag{
						Name:  "first-row-is-header",
						Usage: "treat the first row as the header",
					},
				},
				Action: fetch.TableAction,
			},
			{
				Name:      "count-words",
				Usage:     "merge the word counts of an article into the store",
				ArgsUsage: "<phrase>",
				Action:    fetch.CountWordsAction,
			},
			{
				Name:      "crawl",
				Aliases:   []string{"auto-count-words"},
				Usage:     "crawl linked articles breadth-first and merge their word counts",
				ArgsUsage: "<phrase>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "depth",
						Value: 1,
						Usage: "maximum link depth from the seed",
					},
					&cli.StringFlag{
						Name:  "wait",
						Value: "1s",
						Usage: "pause between page visits (seconds or a duration like 500ms)",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "write a crawl report (.json or .yaml)",
					},
				},
				Action: crawl.CrawlAction,
			},
			{
				Name:  "analyze",
				Usage: "compare stored word frequencies with the reference language",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Value: "article",
						Usage: "article or language",
					},
					&cli.IntFlag{
						Name:  "count",
						Value: 10,
						Usage: "number of words to compare",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "table",
						Usage: "table, json or yaml",
					},
					&cli.StringFlag{
						Name:  "chart",
						Usage: "render an HTML bar chart to this path",
					},
					&cli.StringFlag{
						Name:  "reference",
						Usage: "reference frequency list (default: built-in English)",
					},
					&cli.StringFlag{
						Name:  "reference-format",
						Usage: "tsv or bnc",
					},
				},
				Action: analyze.AnalyzeAction,
			},
			{
				Name:  "history",
				Usage: "inspect recorded crawl runs",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "list recent crawl runs",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "maximum runs to list",
							},
						},
						Action: db.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "show a run and its visited pages (latest when no ID is given)",
						ArgsUsage: "[run-id]",
						Action:    db.RunAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "print a short usage guide",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
					return err
				},
			},
		},
	}
}
