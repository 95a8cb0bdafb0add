package crawl

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wikifreq/internal/common"
	dbpkg "github.com/dtnitsch/wikifreq/pkg/db"
	"github.com/dtnitsch/wikifreq/pkg/manifest"
)

func TestParseWait(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"1", time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"0", 0, false},
		{"250ms", 250 * time.Millisecond, false},
		{"2s", 2 * time.Second, false},
		{"-1", 0, true},
		{"-1s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseWait(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

// linkedWiki serves X -> Y, Z; Y -> W; Z -> W, Gone.
func linkedWiki(t *testing.T) (*httptest.Server, func() map[string]int) {
	t.Helper()
	pages := map[string][]string{
		"X": {"Y", "Z"},
		"Y": {"W"},
		"Z": {"W", "Gone"},
		"W": {"X"},
	}
	var mu sync.Mutex
	hits := make(map[string]int)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimPrefix(r.URL.Path, "/wiki/")
		mu.Lock()
		hits[title]++
		mu.Unlock()

		links, ok := pages[title]
		if !ok {
			http.NotFound(w, r)
			return
		}
		var body strings.Builder
		fmt.Fprintf(&body, `<html><body><div id="bodyContent"><p>page %s about music and velvet</p>`, strings.ToLower(title)+title)
		for _, l := range links {
			fmt.Fprintf(&body, `<a href="/wiki/%s">%s</a>`, l, l)
		}
		body.WriteString(`</div></body></html>`)
		w.Write([]byte(body.String()))
	}))
	t.Cleanup(srv.Close)

	return srv, func() map[string]int {
		mu.Lock()
		defer mu.Unlock()
		out := make(map[string]int, len(hits))
		for k, v := range hits {
			out[k] = v
		}
		return out
	}
}

func runApp(out *bytes.Buffer, args ...string) error {
	app := &cli.App{
		Name:      "wikifreq",
		Writer:    out,
		ErrWriter: out,
		Flags:     common.GlobalFlags(),
		Commands: []*cli.Command{
			{
				Name:    "crawl",
				Aliases: []string{"auto-count-words"},
				Action:  CrawlAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "depth", Value: 1},
					&cli.StringFlag{Name: "wait", Value: "1s"},
					&cli.StringFlag{Name: "report"},
				},
			},
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app.Run(append([]string{"wikifreq"}, args...))
}

func TestCrawlAction(t *testing.T) {
	srv, hits := linkedWiki(t)
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.db")
	reportPath := filepath.Join(dir, "report.yaml")

	var out bytes.Buffer
	err := runApp(&out,
		"--config", filepath.Join(dir, "config.yaml"),
		"--base-url", srv.URL+"/wiki/",
		"--cache-dir", filepath.Join(dir, "cache"),
		"--store", filepath.Join(dir, "word-counts.json"),
		"--history-db", historyPath,
		"--quiet",
		"auto-count-words", "--depth", "2", "--wait", "0", "--report", reportPath, "x",
	)
	require.NoError(t, err)

	got := hits()
	for _, title := range []string{"X", "Y", "Z", "W"} {
		assert.Equal(t, 1, got[title], "page %s fetched once", title)
	}
	assert.Equal(t, 1, got["Gone"])
	assert.Contains(t, out.String(), "Crawled 4 pages")
	assert.Contains(t, out.String(), "failed: Gone")

	data, err := os.ReadFile(filepath.Join(dir, "word-counts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"music": 4`)

	reportData, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report manifest.CrawlReport
	require.NoError(t, yaml.Unmarshal(reportData, &report))
	assert.Equal(t, "X", report.Seed)
	assert.Equal(t, 4, report.Processed)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.TopWords, "music:4")

	database, err := dbpkg.Open(historyPath)
	require.NoError(t, err)
	defer database.Close()
	run, err := database.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, dbpkg.RunCompleted, run.Status)
	assert.Equal(t, 4, run.Processed)
}

func TestCrawlAction_BadArguments(t *testing.T) {
	dir := t.TempDir()
	base := []string{"--config", filepath.Join(dir, "config.yaml"), "--store", filepath.Join(dir, "wc.json"), "--quiet"}

	var out bytes.Buffer
	for _, args := range [][]string{
		{"crawl"},
		{"crawl", "--depth", "-1", "X"},
		{"crawl", "--wait", "never", "X"},
	} {
		err := runApp(&out, append(append([]string{}, base...), args...)...)
		var exitErr cli.ExitCoder
		require.ErrorAs(t, err, &exitErr, "args %v", args)
		assert.Equal(t, 1, exitErr.ExitCode())
	}
}
