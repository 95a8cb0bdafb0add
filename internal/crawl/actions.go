package crawl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikifreq/internal/common"
	"github.com/dtnitsch/wikifreq/pkg/crawler"
	dbpkg "github.com/dtnitsch/wikifreq/pkg/db"
	"github.com/dtnitsch/wikifreq/pkg/manifest"
	"github.com/dtnitsch/wikifreq/pkg/storage"
	"github.com/dtnitsch/wikifreq/pkg/store"
	"github.com/dtnitsch/wikifreq/pkg/wiki"
)

// exitInterrupted is the conventional status of a process stopped by SIGINT.
const exitInterrupted = 130

// ParseWait accepts a Go duration ("1s", "500ms") or plain seconds ("1.5").
func ParseWait(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("invalid wait %q: must not be negative", s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid wait %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid wait %q: must not be negative", s)
	}
	return d, nil
}

// CrawlAction runs a breadth-first crawl from the phrase argument.
func CrawlAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()
	logger := env.Logger
	cfg := env.Config

	seed, err := common.PhraseArg(c)
	if err != nil {
		return err
	}

	depth := c.Int("depth")
	if depth < 0 {
		return cli.Exit(fmt.Sprintf("Error: invalid --depth %d: must not be negative", depth), 1)
	}
	wait, err := ParseWait(c.String("wait"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	src, err := wiki.NewSourceFromConfig(cfg, logger)
	if err != nil {
		return common.Fail(logger, "failed to initialize page source", err)
	}
	wordStore := store.New(cfg.StorePath, logger)

	// History is optional; a crawl never fails because of it.
	var recorder crawler.Recorder
	if cfg.HistoryDB != "" {
		database, err := dbpkg.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warn("crawl history disabled", "path", cfg.HistoryDB, "error", err)
		} else {
			defer database.Close()
			recorder = dbpkg.NewCrawlRecorder(database)
		}
	}

	stats, crawlErr := crawler.New(src, wordStore, recorder, logger).Crawl(c.Context, seed, depth, wait)

	w := c.App.Writer
	fmt.Fprintf(w, "Crawled %d pages from %q (%d failed, %d duplicates skipped), merged %d words into %s\n",
		stats.Processed, seed, stats.Failed, stats.Skipped, stats.WordsMerged, wordStore.Path())
	for _, f := range stats.Failures {
		fmt.Fprintf(w, "  failed: %s (depth %d): %v\n", f.ID, f.Depth, f.Err)
	}
	if stats.RunID != 0 {
		fmt.Fprintf(w, "Run %d recorded in %s\n", stats.RunID, cfg.HistoryDB)
	}

	if reportPath := c.String("report"); reportPath != "" {
		if err := writeReport(reportPath, stats, crawlErr, wordStore); err != nil {
			logger.Error("failed to write crawl report", "path", reportPath, "error", err)
		} else {
			fmt.Fprintf(w, "Report saved to %s\n", reportPath)
		}
	}

	switch {
	case crawlErr == nil:
		return nil
	case errors.Is(crawlErr, context.Canceled):
		return cli.Exit("Crawl interrupted", exitInterrupted)
	default:
		return common.Fail(logger, "crawl aborted", crawlErr)
	}
}

func writeReport(path string, stats crawler.Stats, crawlErr error, wordStore *store.FrequencyStore) error {
	counts, err := wordStore.ReadAll()
	if err != nil {
		return err
	}
	s := &storage.Storage{}
	report := manifest.Build(stats, crawlErr, counts, wordStore.Path(), s)
	return manifest.Write(report, path, s)
}
