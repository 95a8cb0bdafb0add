package db

import (
	"context"
	"errors"
	"time"

	"github.com/dtnitsch/wikifreq/models"
	"github.com/dtnitsch/wikifreq/pkg/crawler"
	"github.com/dtnitsch/wikifreq/pkg/fetcher"
	"github.com/dtnitsch/wikifreq/pkg/parser"
)

// CrawlRecorder stores crawler progress in the history database.
type CrawlRecorder struct {
	db *DB
}

func NewCrawlRecorder(db *DB) *CrawlRecorder {
	return &CrawlRecorder{db: db}
}

var _ crawler.Recorder = (*CrawlRecorder)(nil)

func (r *CrawlRecorder) StartRun(seed models.PageID, maxDepth int, wait time.Duration) (int64, error) {
	return r.db.StartRun(string(seed), maxDepth, wait, time.Now())
}

func (r *CrawlRecorder) RecordVisit(runID int64, o crawler.Outcome) error {
	v := Visit{
		RunID:         runID,
		PageID:        string(o.ID),
		Depth:         o.Depth,
		Status:        visitStatus(o),
		StatusCode:    o.Status,
		WordCount:     o.Words,
		LinksFound:    o.LinksFound,
		LinksEnqueued: o.Enqueued,
		Language:      o.Language,
		VisitedAt:     o.VisitedAt,
	}
	if o.Err != nil {
		v.ErrorType = errorType(o.Err)
		v.ErrorMessage = o.Err.Error()
	}
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now()
	}
	return r.db.RecordVisit(v)
}

func (r *CrawlRecorder) FinishRun(runID int64, stats crawler.Stats, crawlErr error) error {
	s := RunSummary{
		Processed:   stats.Processed,
		Failed:      stats.Failed,
		Skipped:     stats.Skipped,
		WordsMerged: stats.WordsMerged,
		Status:      RunCompleted,
		FinishedAt:  stats.Finished,
	}
	switch {
	case crawlErr == nil:
	case errors.Is(crawlErr, context.Canceled), errors.Is(crawlErr, context.DeadlineExceeded):
		s.Status = RunCancelled
		s.ErrorMessage = crawlErr.Error()
	default:
		s.Status = RunFailed
		s.ErrorMessage = crawlErr.Error()
	}
	if s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now()
	}
	return r.db.FinishRun(runID, s)
}

func visitStatus(o crawler.Outcome) string {
	switch {
	case o.Failed():
		return VisitFailed
	case o.Words == 0:
		return VisitEmpty
	}
	return VisitOK
}

func errorType(err error) string {
	var fetchErr *fetcher.FetchError
	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.Is(err, crawler.ErrMerge):
		return "store"
	}
	return "other"
}
