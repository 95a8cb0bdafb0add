package fetch

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikifreq/internal/common"
)

const articleHTML = `<html><head><title>Red Velvet</title></head><body>
<h1 id="firstHeading">Red Velvet</h1>
<div id="bodyContent">
  <p>Short.</p>
  <p>Red Velvet is a South Korean girl group formed by SM Entertainment.</p>
  <table>
    <tr><th>Member</th><th>Position</th></tr>
    <tr><td>Irene</td><td>Leader</td></tr>
    <tr><td>Wendy</td><td>Vocalist</td></tr>
    <tr><td>Seulgi</td><td>Vocalist</td></tr>
  </table>
</div></body></html>`

func newWiki(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Red_Velvet" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(articleHTML))
	}))
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	dir   string
	out   bytes.Buffer
	flags []string
}

func newHarness(t *testing.T, srv *httptest.Server) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WIKIFREQ_EXPORT_DIR", dir)
	return &harness{
		dir: dir,
		flags: []string{
			"--config", filepath.Join(dir, "config.yaml"),
			"--base-url", srv.URL + "/wiki/",
			"--cache-dir", filepath.Join(dir, "cache"),
			"--store", filepath.Join(dir, "word-counts.json"),
			"--quiet",
		},
	}
}

func (h *harness) run(args ...string) error {
	app := &cli.App{
		Name:      "wikifreq",
		Writer:    &h.out,
		ErrWriter: &h.out,
		Flags:     common.GlobalFlags(),
		Commands: []*cli.Command{
			{Name: "summary", Action: SummaryAction},
			{
				Name:   "table",
				Action: TableAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "number", Aliases: []string{"n"}, Value: 1},
					&cli.BoolFlag{Name: "first-row-is-header"},
				},
			},
			{Name: "count-words", Action: CountWordsAction},
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app.Run(append(append([]string{"wikifreq"}, h.flags...), args...))
}

func TestSummaryAction(t *testing.T) {
	h := newHarness(t, newWiki(t))
	require.NoError(t, h.run("summary", "red velvet"))
	assert.Equal(t, "Red Velvet is a South Korean girl group formed by SM Entertainment.\n", h.out.String())

	_, err := os.Stat(filepath.Join(h.dir, "cache", "Red_Velvet.html"))
	assert.NoError(t, err, "downloaded page should be cached")
}

func TestSummaryAction_Offline(t *testing.T) {
	srv := newWiki(t)
	h := newHarness(t, srv)
	require.NoError(t, h.run("summary", "Red Velvet"))
	srv.Close()

	h.out.Reset()
	h.flags = append(h.flags, "--offline")
	require.NoError(t, h.run("summary", "Red_Velvet"))
	assert.Contains(t, h.out.String(), "South Korean girl group")

	err := h.run("summary", "Not Cached")
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestSummaryAction_MissingPhrase(t *testing.T) {
	h := newHarness(t, newWiki(t))
	err := h.run("summary")
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestSummaryAction_NotFound(t *testing.T) {
	h := newHarness(t, newWiki(t))
	err := h.run("summary", "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestTableAction(t *testing.T) {
	h := newHarness(t, newWiki(t))
	require.NoError(t, h.run("table", "--number", "1", "Red Velvet"))

	data, err := os.ReadFile(filepath.Join(h.dir, "Red_Velvet_table_1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Member,Position\nIrene,Leader\nWendy,Vocalist\nSeulgi,Vocalist\n", string(data))

	out := h.out.String()
	assert.Contains(t, out, "Value statistics")
	assert.Contains(t, out, "Vocalist")
}

func TestTableAction_OutOfRange(t *testing.T) {
	h := newHarness(t, newWiki(t))
	err := h.run("table", "-n", "5", "Red Velvet")
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestCountWordsAction(t *testing.T) {
	h := newHarness(t, newWiki(t))
	require.NoError(t, h.run("count-words", "Red Velvet"))
	require.NoError(t, h.run("count-words", "Red Velvet"))

	data, err := os.ReadFile(filepath.Join(h.dir, "word-counts.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"velvet": 2`)
	assert.Contains(t, h.out.String(), "Counted")
}
