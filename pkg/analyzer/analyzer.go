// Package analyzer compares crawled word frequencies with a reference
// language list.
package analyzer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/wikifreq/models"
	"github.com/dtnitsch/wikifreq/pkg/mapreduce"
	"github.com/dtnitsch/wikifreq/pkg/reference"
)

var (
	// ErrNoData means the word count store is empty or absent.
	ErrNoData = errors.New("no word counts available")
	// ErrNoBaseline means the reference list does not know the baseline word.
	ErrNoBaseline = errors.New("baseline word missing from reference list")
)

type Mode string

const (
	// ModeArticle scores the most frequent crawled words.
	ModeArticle Mode = "article"
	// ModeLanguage scores the most frequent words of the reference language.
	ModeLanguage Mode = "language"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeArticle, ModeLanguage:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q: expected %q or %q", s, ModeArticle, ModeLanguage)
}

// CountsReader is the read side of the word count store.
type CountsReader interface {
	ReadAll() (*mapreduce.Counts, error)
}

type Analyzer struct {
	counts   CountsReader
	ref      reference.Frequencies
	baseline string
	logger   *slog.Logger
}

// New builds an analyzer. The reference side is normalized by the frequency
// of baseline ("the" when empty).
func New(counts CountsReader, ref reference.Frequencies, baseline string, logger *slog.Logger) *Analyzer {
	if baseline == "" {
		baseline = "the"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{counts: counts, ref: ref, baseline: baseline, logger: logger}
}

// Analyze selects count words by mode and returns one row per word in
// selection order. Article frequencies are relative to the most frequent
// crawled word, reference frequencies to the baseline word.
func (a *Analyzer) Analyze(mode Mode, count int) ([]models.ComparisonRow, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid count %d: must be positive", count)
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	counts, err := a.counts.ReadAll()
	if err != nil {
		return nil, err
	}
	if counts.Len() == 0 {
		return nil, ErrNoData
	}
	maxCount := counts.Max()

	unit := a.ref.Frequency(a.baseline)
	if unit <= 0 {
		return nil, fmt.Errorf("%w: %q (%s)", ErrNoBaseline, a.baseline, a.ref.Language())
	}

	var words []string
	switch mode {
	case ModeArticle:
		for _, e := range mapreduce.TopN(counts, count) {
			words = append(words, e.Word)
		}
	case ModeLanguage:
		words = a.ref.Top(count)
		if len(words) < count {
			a.logger.Warn("reference list shorter than requested count",
				"reference", a.ref.Language(),
				"requested", count,
				"available", len(words),
			)
		}
	}

	rows := make([]models.ComparisonRow, 0, len(words))
	for _, w := range words {
		row := models.ComparisonRow{Word: w}
		if n, ok := counts.Get(w); ok && maxCount > 0 {
			f := float64(n) / float64(maxCount)
			row.ArticleFrequency = &f
		}
		if raw := a.ref.Frequency(w); raw > 0 {
			f := raw / unit
			row.ReferenceFrequency = &f
		}
		rows = append(rows, row)
	}
	if missing := MissingReference(rows); mode == ModeArticle && missing > 0 {
		a.logger.Warn("words missing from reference list",
			"reference", a.ref.Language(),
			"missing", missing,
			"rows", len(rows),
		)
	}

	a.logger.Debug("analysis complete",
		"mode", mode,
		"requested", count,
		"rows", len(rows),
		"distinct_words", counts.Len(),
		"reference", a.ref.Language(),
	)
	return rows, nil
}

// MissingReference counts the rows the reference list has no frequency for.
func MissingReference(rows []models.ComparisonRow) int {
	n := 0
	for _, r := range rows {
		if r.ReferenceFrequency == nil {
			n++
		}
	}
	return n
}

// ChartRow is a ComparisonRow with absent values coerced to zero.
type ChartRow struct {
	Word      string
	Article   float64
	Reference float64
}

func Chartable(rows []models.ComparisonRow) []ChartRow {
	out := make([]ChartRow, len(rows))
	for i, r := range rows {
		out[i] = ChartRow{Word: r.Word}
		if r.ArticleFrequency != nil {
			out[i].Article = *r.ArticleFrequency
		}
		if r.ReferenceFrequency != nil {
			out[i].Reference = *r.ReferenceFrequency
		}
	}
	return out
}
