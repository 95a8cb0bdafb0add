package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wikifreq/pkg/crawler"
	"github.com/dtnitsch/wikifreq/pkg/mapreduce"
	"github.com/dtnitsch/wikifreq/pkg/storage"
)

// TopWordCount is how many store words a report lists.
const TopWordCount = 25

// Build assembles the report of a crawl. counts is the store content after
// the crawl; crawlErr is the error Crawl returned, if any.
func Build(stats crawler.Stats, crawlErr error, counts *mapreduce.Counts, storePath string, s *storage.Storage) CrawlReport {
	report := CrawlReport{
		GeneratedAt: time.Now().Format(time.RFC3339),
		RunID:       stats.RunID,
		Seed:        string(stats.Seed),
		MaxDepth:    stats.MaxDepth,
		Wait:        stats.Wait.String(),
		Status:      "completed",
		Duration:    stats.Finished.Sub(stats.Started).Round(time.Millisecond).String(),
		Processed:   stats.Processed,
		Failed:      stats.Failed,
		Skipped:     stats.Skipped,
		WordsMerged: stats.WordsMerged,
		StorePath:   storePath,
		TopWords:    []string{},
	}
	if crawlErr != nil {
		report.Status = "stopped"
		report.Error = crawlErr.Error()
	}

	if counts != nil {
		report.DistinctWords = counts.Len()
		report.TotalWords = counts.Total()
		report.TopWords = mapreduce.TopKeywords(counts, TopWordCount)
	}

	if fs, err := s.GetFileStats(storePath); err == nil {
		report.StoreSizeBytes = fs.SizeBytes
	}

	for _, o := range stats.Failures {
		fp := FailedPage{
			Page:       string(o.ID),
			Depth:      o.Depth,
			StatusCode: o.Status,
		}
		if o.Err != nil {
			fp.Error = o.Err.Error()
		}
		report.Failures = append(report.Failures, fp)
	}

	return report
}

// Write saves the report to path, as JSON for a .json extension and as YAML
// otherwise.
func Write(report CrawlReport, path string, s *storage.Storage) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(report, "", "  ")
	default:
		data, err = yaml.Marshal(report)
	}
	if err != nil {
		return fmt.Errorf("error marshalling report: %w", err)
	}

	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("error saving report: %w", err)
	}
	return nil
}
