package fetch

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikifreq/internal/common"
	"github.com/dtnitsch/wikifreq/models"
	"github.com/dtnitsch/wikifreq/pkg/analytics"
	"github.com/dtnitsch/wikifreq/pkg/export"
	"github.com/dtnitsch/wikifreq/pkg/parser"
	"github.com/dtnitsch/wikifreq/pkg/store"
	"github.com/dtnitsch/wikifreq/pkg/wiki"
)

// valueStatsLimit caps the value statistics printed under a table.
const valueStatsLimit = 20

// fetchPage resolves the phrase argument and fetches its article.
func fetchPage(c *cli.Context, env *common.Env) (*models.Page, error) {
	id, err := common.PhraseArg(c)
	if err != nil {
		return nil, err
	}

	src, err := wiki.NewSourceFromConfig(env.Config, env.Logger)
	if err != nil {
		return nil, common.Fail(env.Logger, "failed to initialize page source", err)
	}

	page, err := src.Fetch(c.Context, id)
	if err != nil {
		return nil, common.Fail(env.Logger, fmt.Sprintf("failed to get %q", id), err)
	}
	env.Logger.Info("page fetched", "page", id, "url", page.URL, "language", page.Language, "tables", len(page.Tables), "links", len(page.Links))
	return page, nil
}

// SummaryAction prints the first prose paragraph of an article.
func SummaryAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	page, err := fetchPage(c, env)
	if err != nil {
		return err
	}

	summary, ok := page.Summary()
	if !ok {
		fmt.Fprintf(c.App.Writer, "No summary found for %q\n", page.ID)
		return nil
	}
	fmt.Fprintln(c.App.Writer, summary)
	return nil
}

// TableAction exports one table of an article to CSV and prints it with its
// value statistics.
func TableAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	page, err := fetchPage(c, env)
	if err != nil {
		return err
	}

	n := c.Int("number")
	table, err := parser.SelectTable(page, n)
	if err != nil {
		return common.Fail(env.Logger, fmt.Sprintf("no table %d in %q", n, page.ID), err)
	}

	header, rows := table.Records(c.Bool("first-row-is-header"))
	path, err := export.WriteCSV(env.Config.ExportDir, string(page.ID), n, header, rows)
	if err != nil {
		return common.Fail(env.Logger, "failed to write csv", err)
	}
	env.Logger.Info("table exported", "page", page.ID, "table", n, "rows", len(rows), "path", path)

	w := c.App.Writer
	export.PrintRecords(w, header, rows)
	fmt.Fprintf(w, "\nSaved table %d of %q to %s\n", n, page.ID, path)

	fmt.Fprintln(w, "\nValue statistics:")
	export.PrintValueCounts(w, export.ValueCounts(rows), valueStatsLimit)
	return nil
}

// CountWordsAction merges the words of one article into the word count store.
func CountWordsAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	page, err := fetchPage(c, env)
	if err != nil {
		return err
	}

	s := store.New(env.Config.StorePath, env.Logger)
	words := analytics.WordList(page.Text)
	if len(words) == 0 {
		env.Logger.Warn("no words extracted, store left unchanged", "page", page.ID)
		fmt.Fprintf(c.App.Writer, "No words found in %q\n", page.ID)
		return nil
	}

	n, err := s.Merge(words)
	if err != nil {
		return common.Fail(env.Logger, "failed to update word counts", err)
	}

	fmt.Fprintf(c.App.Writer, "Counted %d words from %q into %s\n", n, page.ID, s.Path())
	return nil
}
