package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikifreq/internal/common"
	dbpkg "github.com/dtnitsch/wikifreq/pkg/db"
)

func openHistory(c *cli.Context) (*common.Env, *dbpkg.DB, error) {
	env, err := common.Setup(c)
	if err != nil {
		return nil, nil, err
	}
	if env.Config.HistoryDB == "" {
		env.Close()
		return nil, nil, cli.Exit("Error: crawl history is disabled (history_db is empty)", 1)
	}
	database, err := dbpkg.Open(env.Config.HistoryDB)
	if err != nil {
		err = common.Fail(env.Logger, "failed to open history database", err)
		env.Close()
		return nil, nil, err
	}
	return env, database, nil
}

// RunsAction lists recent crawl runs, newest first.
func RunsAction(c *cli.Context) error {
	env, database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer env.Close()
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return common.Fail(env.Logger, "failed to list runs", err)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No crawl runs found")
		return nil
	}

	tbl := table.New("ID", "Started", "Seed", "Depth", "Pages", "Failed", "Skipped", "Words", "Status").WithWriter(w)
	for _, r := range runs {
		tbl.AddRow(r.RunID, formatTime(r.StartedAt), r.Seed, r.MaxDepth,
			r.Processed, r.Failed, r.Skipped, r.WordsMerged, r.Status)
	}
	tbl.Print()

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintln(w, "Tip: Use 'wikifreq history run <id>' to see visited pages")
	return nil
}

// RunAction shows one run and the pages it visited.
func RunAction(c *cli.Context) error {
	env, database, err := openHistory(c)
	if err != nil {
		return err
	}
	defer env.Close()
	defer database.Close()

	run, err := GetRunOrLatest(c, database)
	if err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			return err
		}
		return common.Fail(env.Logger, "failed to get run", err)
	}

	visits, err := database.GetRunVisits(run.RunID)
	if err != nil {
		return common.Fail(env.Logger, "failed to get visits", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Run %d\n", run.RunID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Seed:      %s\n", run.Seed)
	fmt.Fprintf(w, "Depth:     %d\n", run.MaxDepth)
	fmt.Fprintf(w, "Wait:      %s\n", run.Wait)
	fmt.Fprintf(w, "Started:   %s\n", formatTime(run.StartedAt))
	fmt.Fprintf(w, "Duration:  %s\n", formatDuration(run))
	fmt.Fprintf(w, "Status:    %s\n", run.Status)
	fmt.Fprintf(w, "Pages:     %d processed (%d failed, %d duplicates skipped)\n", run.Processed, run.Failed, run.Skipped)
	fmt.Fprintf(w, "Words:     %d merged\n", run.WordsMerged)
	if run.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", run.ErrorMessage)
	}

	if len(visits) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nVisits (%d):\n", len(visits))
	tbl := table.New("#", "Page", "Depth", "Status", "Words", "Links", "Queued", "Lang", "Error").WithWriter(w)
	for i, v := range visits {
		errText := ""
		if v.ErrorMessage != "" {
			errText = fmt.Sprintf("[%s] %s", v.ErrorType, v.ErrorMessage)
		}
		tbl.AddRow(i+1, v.PageID, v.Depth, v.Status, v.WordCount, v.LinksFound, v.LinksEnqueued, v.Language, errText)
	}
	tbl.Print()
	return nil
}
