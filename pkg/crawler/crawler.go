// Package crawler walks wiki articles breadth-first and feeds their words into
// the word count store.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtnitsch/wikifreq/models"
	"github.com/dtnitsch/wikifreq/pkg/analytics"
	"github.com/dtnitsch/wikifreq/pkg/fetcher"
)

// ErrMerge marks a page whose words could not be merged into the store.
var ErrMerge = errors.New("failed to merge words")

// PageSource resolves an article identifier to a parsed page.
type PageSource interface {
	Fetch(ctx context.Context, id models.PageID) (*models.Page, error)
}

// Merger accumulates words, typically *store.FrequencyStore.
type Merger interface {
	Merge(words []string) (int, error)
}

// Recorder receives crawl progress. Errors are logged and otherwise ignored.
type Recorder interface {
	StartRun(seed models.PageID, maxDepth int, wait time.Duration) (int64, error)
	RecordVisit(runID int64, o Outcome) error
	FinishRun(runID int64, stats Stats, crawlErr error) error
}

// Outcome describes one processed page.
type Outcome struct {
	ID         models.PageID
	Depth      int
	Words      int
	LinksFound int
	Enqueued   int
	Language   string
	Status     int // HTTP status of a failed fetch, 0 otherwise
	Err        error
	VisitedAt  time.Time
}

func (o Outcome) Failed() bool { return o.Err != nil }

// Stats summarizes a crawl.
type Stats struct {
	Seed        models.PageID
	MaxDepth    int
	Wait        time.Duration
	RunID       int64
	Processed   int // pages fetched successfully
	Failed      int
	Skipped     int // duplicate frontier entries discarded
	WordsMerged int
	Started     time.Time
	Finished    time.Time
	Failures    []Outcome
}

type frontierEntry struct {
	id    models.PageID
	depth int
}

type Crawler struct {
	source   PageSource
	merger   Merger
	recorder Recorder
	logger   *slog.Logger
}

// New builds a crawler. recorder and logger may be nil.
func New(source PageSource, merger Merger, recorder Recorder, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Crawler{source: source, merger: merger, recorder: recorder, logger: logger}
}

// Crawl visits seed and every article reachable from it within maxDepth
// links, each at most once, merging the words of every page. With wait > 0
// successive fetches start at least wait apart. Page failures are recorded
// in the returned Stats; the error is reserved for cancellation and invalid
// arguments.
func (c *Crawler) Crawl(ctx context.Context, seed models.PageID, maxDepth int, wait time.Duration) (Stats, error) {
	seed = models.CanonicalID(string(seed))
	stats := Stats{Seed: seed, MaxDepth: maxDepth, Wait: wait, Started: time.Now()}

	if seed == "" {
		return stats, errors.New("empty seed")
	}
	if maxDepth < 0 {
		return stats, fmt.Errorf("invalid max depth %d", maxDepth)
	}
	if wait < 0 {
		return stats, fmt.Errorf("invalid wait %s", wait)
	}

	stats.RunID = c.startRun(seed, maxDepth, wait)
	c.logger.Info("crawl started", "seed", seed, "max_depth", maxDepth, "wait", wait.String())

	var limiter *rate.Limiter
	if wait > 0 {
		limiter = rate.NewLimiter(rate.Every(wait), 1)
	}

	visited := make(map[models.PageID]bool)
	queue := []frontierEntry{{id: seed, depth: 0}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return c.finish(stats, err)
		}

		entry := queue[0]
		queue = queue[1:]

		if visited[entry.id] {
			stats.Skipped++
			continue
		}
		visited[entry.id] = true

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					err = ctxErr
				}
				return c.finish(stats, err)
			}
		}

		outcome, next, err := c.visit(ctx, entry, maxDepth, visited)
		if err != nil {
			return c.finish(stats, err)
		}
		queue = append(queue, next...)

		switch {
		case outcome.Err != nil:
			stats.Failed++
			stats.Failures = append(stats.Failures, outcome)
			c.logger.Warn("page failed", "page", outcome.ID, "depth", outcome.Depth, "error", outcome.Err)
		default:
			stats.Processed++
			stats.WordsMerged += outcome.Words
			c.logger.Info("page processed",
				"page", outcome.ID,
				"depth", outcome.Depth,
				"words", outcome.Words,
				"links", outcome.LinksFound,
				"enqueued", outcome.Enqueued,
				"language", outcome.Language,
			)
		}
		c.recordVisit(stats.RunID, outcome)
	}

	return c.finish(stats, nil)
}

// visit fetches one page, merges its words and returns the frontier entries
// for its unvisited links. Fetch and merge failures end up in Outcome.Err and
// stop the page from expanding; only cancellation is returned as an error.
func (c *Crawler) visit(ctx context.Context, entry frontierEntry, maxDepth int, visited map[models.PageID]bool) (Outcome, []frontierEntry, error) {
	outcome := Outcome{ID: entry.id, Depth: entry.depth, VisitedAt: time.Now()}

	page, err := c.source.Fetch(ctx, entry.id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome, nil, ctxErr
		}
		outcome.Err = err
		var fetchErr *fetcher.FetchError
		if errors.As(err, &fetchErr) {
			outcome.Status = fetchErr.Status
		}
		return outcome, nil, nil
	}
	outcome.Language = page.Language

	words := analytics.WordList(page.Text)
	if len(words) == 0 {
		c.logger.Warn("no words extracted, skipping merge", "page", entry.id)
	} else {
		n, err := c.merger.Merge(words)
		if err != nil {
			outcome.Err = fmt.Errorf("%w: %q: %w", ErrMerge, entry.id, err)
			return outcome, nil, nil
		}
		outcome.Words = n
	}

	if entry.depth >= maxDepth {
		return outcome, nil, nil
	}

	var next []frontierEntry
	outcome.LinksFound = len(page.Links)
	for _, link := range page.Links {
		id := models.CanonicalID(string(link))
		if id == "" || visited[id] {
			continue
		}
		next = append(next, frontierEntry{id: id, depth: entry.depth + 1})
	}
	outcome.Enqueued = len(next)
	return outcome, next, nil
}

func (c *Crawler) startRun(seed models.PageID, maxDepth int, wait time.Duration) int64 {
	if c.recorder == nil {
		return 0
	}
	id, err := c.recorder.StartRun(seed, maxDepth, wait)
	if err != nil {
		c.logger.Warn("failed to record crawl start", "error", err)
		return 0
	}
	return id
}

func (c *Crawler) recordVisit(runID int64, o Outcome) {
	if c.recorder == nil || runID == 0 {
		return
	}
	if err := c.recorder.RecordVisit(runID, o); err != nil {
		c.logger.Warn("failed to record page visit", "page", o.ID, "error", err)
	}
}

func (c *Crawler) finish(stats Stats, crawlErr error) (Stats, error) {
	stats.Finished = time.Now()

	attrs := []any{
		"seed", stats.Seed,
		"processed", stats.Processed,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"words", stats.WordsMerged,
		"duration", stats.Finished.Sub(stats.Started).String(),
	}
	if crawlErr != nil {
		c.logger.Warn("crawl stopped", append(attrs, "error", crawlErr)...)
	} else {
		c.logger.Info("crawl finished", attrs...)
	}

	if c.recorder != nil && stats.RunID != 0 {
		if err := c.recorder.FinishRun(stats.RunID, stats, crawlErr); err != nil {
			c.logger.Warn("failed to record crawl end", "error", err)
		}
	}
	return stats, crawlErr
}
