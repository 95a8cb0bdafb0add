// Package wiki fetches articles from a single MediaWiki host and turns them
// into models.Page values.
package wiki

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/wikifreq/models"
	"github.com/dtnitsch/wikifreq/pkg/caching"
	"github.com/dtnitsch/wikifreq/pkg/detector"
	"github.com/dtnitsch/wikifreq/pkg/fetcher"
	"github.com/dtnitsch/wikifreq/pkg/parser"
)

// LanguageDetector guesses the ISO-639-1 language of a text.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

// Options configures a Source. Cache is required in offline mode; Detector
// and Logger are optional.
type Options struct {
	BaseURL  string
	Offline  bool
	Fetcher  *fetcher.Fetcher
	Cache    *caching.Cache
	Detector LanguageDetector
	Logger   *slog.Logger
}

// Source is the page source of the crawler and of the single-page commands.
// Online it downloads articles and keeps a copy in the cache; offline it
// reads only the cache.
type Source struct {
	baseURL  string
	offline  bool
	fetcher  *fetcher.Fetcher
	cache    *caching.Cache
	parser   *parser.Parser
	detector LanguageDetector
	logger   *slog.Logger
}

func NewSource(opts Options) *Source {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{
		baseURL:  opts.BaseURL,
		offline:  opts.Offline,
		fetcher:  opts.Fetcher,
		cache:    opts.Cache,
		parser:   &parser.Parser{},
		detector: opts.Detector,
		logger:   logger,
	}
}

// NewSourceFromConfig wires a Source with the HTTP fetcher, the on-disk cache
// and language detection.
func NewSourceFromConfig(cfg *models.Config, logger *slog.Logger) (*Source, error) {
	cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}
	return NewSource(Options{
		BaseURL:  cfg.BaseURL,
		Offline:  cfg.Offline,
		Fetcher:  fetcher.NewFetcher(cfg.UserAgent, cfg.RequestTimeout),
		Cache:    cache,
		Detector: detector.New(),
		Logger:   logger,
	}), nil
}

// URL returns the article address of id.
func (s *Source) URL(id models.PageID) string {
	return s.baseURL + id.Path()
}

// Fetch retrieves and parses one article. Failures to obtain the HTML are
// *fetcher.FetchError values.
func (s *Source) Fetch(ctx context.Context, id models.PageID) (*models.Page, error) {
	html, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	page, err := s.parser.Parse(models.ParseRequest{
		ID:   id,
		URL:  s.URL(id),
		HTML: string(html),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", id, err)
	}

	if s.detector != nil {
		if lang, ok := s.detector.Detect(page.Text); ok {
			page.Language = lang
		}
	}
	return page, nil
}

func (s *Source) load(ctx context.Context, id models.PageID) ([]byte, error) {
	if s.offline {
		if s.cache == nil {
			return nil, &fetcher.FetchError{URL: s.URL(id), Err: caching.ErrNotCached}
		}
		html, err := s.cache.Get(id)
		if err != nil {
			return nil, &fetcher.FetchError{URL: s.cache.FilePath(id), Err: err}
		}
		s.logger.Debug("loaded page from cache", "page", id)
		return html, nil
	}

	if s.fetcher == nil {
		return nil, &fetcher.FetchError{URL: s.URL(id), Err: fmt.Errorf("no fetcher configured")}
	}

	html, err := s.fetcher.GetHtmlBytes(ctx, s.URL(id))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(id, html); err != nil {
			s.logger.Warn("failed to cache page", "page", id, "error", err)
		}
	}
	return html, nil
}
