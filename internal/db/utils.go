package db

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/dtnitsch/wikifreq/pkg/db"
)

// GetRunOrLatest returns the run named by the first argument, or the latest
// run when no argument is given.
func GetRunOrLatest(c *cli.Context, database *dbpkg.DB) (*dbpkg.Run, error) {
	if c.NArg() == 0 {
		run, err := database.LatestRun()
		if errors.Is(err, dbpkg.ErrRunNotFound) {
			return nil, cli.Exit("No crawl runs found. Run 'wikifreq crawl <phrase>' first", 1)
		}
		return run, err
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || runID <= 0 {
		return nil, cli.Exit(fmt.Sprintf("Error: invalid run ID: %s", c.Args().First()), 1)
	}
	run, err := database.GetRun(runID)
	if errors.Is(err, dbpkg.ErrRunNotFound) {
		return nil, cli.Exit(fmt.Sprintf("Error: run %d not found", runID), 1)
	}
	return run, err
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDuration(r *dbpkg.Run) string {
	if r.FinishedAt == nil {
		return "-"
	}
	return r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
}
