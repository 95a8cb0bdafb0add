package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wikifreq/internal/common"
	"github.com/dtnitsch/wikifreq/models"
	"github.com/dtnitsch/wikifreq/pkg/analyzer"
	"github.com/dtnitsch/wikifreq/pkg/export"
	"github.com/dtnitsch/wikifreq/pkg/reference"
	"github.com/dtnitsch/wikifreq/pkg/store"
)

// AnalyzeAction compares the stored word counts with the reference language
// and prints the rows, optionally rendering a chart.
func AnalyzeAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()
	logger := env.Logger
	cfg := env.Config

	mode, err := analyzer.ParseMode(c.String("mode"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	count := c.Int("count")
	if count <= 0 {
		return cli.Exit(fmt.Sprintf("Error: invalid --count %d: must be positive", count), 1)
	}
	format := c.String("format")
	switch format {
	case "table", "json", "yaml":
	default:
		return cli.Exit(fmt.Sprintf("Error: invalid --format %q: expected table, json or yaml", format), 1)
	}

	if c.IsSet("reference") {
		cfg.Reference.Path = c.String("reference")
	}
	if c.IsSet("reference-format") {
		cfg.Reference.Format = c.String("reference-format")
	}

	ref, err := reference.Load(cfg.Reference.Path, cfg.Reference.Format, cfg.Reference.Language)
	if err != nil {
		return common.Fail(logger, "failed to load reference list", err)
	}

	a := analyzer.New(store.New(cfg.StorePath, logger), ref, cfg.Reference.BaselineWord, logger)
	rows, err := a.Analyze(mode, count)
	switch {
	case errors.Is(err, analyzer.ErrNoData):
		logger.Warn("nothing to analyze", "path", cfg.StorePath)
		return cli.Exit(fmt.Sprintf("no word counts found in %s; run count-words or crawl first", cfg.StorePath), 1)
	case err != nil:
		return common.Fail(logger, "analysis failed", err)
	}

	if err := writeRows(c.App.Writer, rows, format); err != nil {
		return common.Fail(logger, "failed to print results", err)
	}

	printCoverage(c.App.ErrWriter, mode, count, rows, ref)

	if chartPath := c.String("chart"); chartPath != "" {
		title := fmt.Sprintf("Top %d words (%s mode) vs %s", count, mode, ref.Language())
		if err := export.RenderChart(chartPath, analyzer.Chartable(rows), title); err != nil {
			return common.Fail(logger, "failed to render chart", err)
		}
		logger.Info("chart rendered", "path", chartPath, "rows", len(rows))
		if format == "table" {
			fmt.Fprintf(c.App.Writer, "\nChart saved to %s\n", chartPath)
		}
	}
	return nil
}

func writeRows(w io.Writer, rows []models.ComparisonRow, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	export.PrintComparison(w, rows)
	return nil
}

// printCoverage points out when the reference list is too small for the
// request. The notes go to the error writer so json and yaml output stay
// parseable.
func printCoverage(w io.Writer, mode analyzer.Mode, count int, rows []models.ComparisonRow, ref *reference.Table) {
	const hint = "set reference.path (or --reference) to a larger tsv or bnc list"
	switch mode {
	case analyzer.ModeLanguage:
		if len(rows) < count {
			fmt.Fprintf(w, "Note: the %s reference list has only %d words, %d requested; %s\n",
				ref.Language(), ref.Len(), count, hint)
		}
	case analyzer.ModeArticle:
		if missing := analyzer.MissingReference(rows); missing > 0 {
			fmt.Fprintf(w, "Note: %d of %d words are not in the %s reference list (%d words); %s\n",
				missing, len(rows), ref.Language(), ref.Len(), hint)
		}
	}
}
