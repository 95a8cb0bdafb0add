package parser

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/wikifreq/models"
)

func parseFixture(t *testing.T) *models.Page {
	t.Helper()

	html, err := os.ReadFile("testdata/red_velvet.html")
	require.NoError(t, err)

	p := &Parser{}
	page, err := p.Parse(models.ParseRequest{
		ID:   "Red Velvet",
		URL:  "https://www.generasia.com/wiki/Red_Velvet",
		HTML: string(html),
	})
	require.NoError(t, err)
	return page
}

func TestParse_TitleAndText(t *testing.T) {
	page := parseFixture(t)

	assert.Equal(t, "Red Velvet", page.Title)
	assert.Contains(t, page.Text, "South Korean girl group")
	assert.Contains(t, page.Text, "SM Entertainment")
	assert.NotContains(t, page.Text, "navigation words", "text outside main content is ignored")
	assert.NotContains(t, page.Text, "footer words")
	assert.NotContains(t, page.Text, "script words")
	assert.Contains(t, page.Text, "Irene Leader", "table cells are separated by spaces")
}

func TestParse_Summary(t *testing.T) {
	page := parseFixture(t)

	summary, ok := page.Summary()
	require.True(t, ok)
	assert.Equal(t, "Red Velvet (레드벨벳) is a South Korean girl group under SM Entertainment.", summary)
}

func TestParse_InternalLinks(t *testing.T) {
	page := parseFixture(t)

	assert.Equal(t, []models.PageID{"SM Entertainment", "Happiness (Red Velvet)"}, page.Links)
}

func TestIsInternalLink(t *testing.T) {
	tests := []struct {
		href   string
		want   models.PageID
		wantOK bool
	}{
		{href: "/wiki/Red_Velvet", want: "Red Velvet", wantOK: true},
		{href: "/wiki/File:Image.jpg", wantOK: false},
		{href: "/wiki/File%3AImage.jpg", wantOK: false},
		{href: "/wiki/Category%3aK-pop", wantOK: false},
		{href: "/wiki/AC%2FDC", want: "AC/DC", wantOK: true},
		{href: "https://google.com", wantOK: false},
		{href: "/wiki/", wantOK: false},
		{href: "/w/index.php?title=X", wantOK: false},
		{href: "/wiki/red_velvet#Members", want: "Red velvet", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, ok := IsInternalLink(tt.href)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Tables(t *testing.T) {
	page := parseFixture(t)
	require.Len(t, page.Tables, 3)

	members := page.Tables[0]
	assert.True(t, members.HasHeaderCells)
	assert.Equal(t, [][]string{{"Member", "Position"}, {"Irene", "Leader"}, {"Wendy", "Vocalist"}}, members.Rows)

	releases := page.Tables[1]
	assert.False(t, releases.HasHeaderCells)
	assert.Equal(t, []string{"2014", "Happiness", "Happiness"}, releases.Rows[0], "colspan is expanded")
}

func TestSelectTable(t *testing.T) {
	page := parseFixture(t)

	table, err := SelectTable(page, 1)
	require.NoError(t, err)
	header, rows := table.Records(false)
	assert.Equal(t, []string{"Member", "Position"}, header)
	assert.Len(t, rows, 2)

	for _, n := range []int{0, 4, -1} {
		_, err := SelectTable(page, n)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "n=%d", n)
	}

	_, err = SelectTable(page, 3)
	assert.True(t, errors.Is(err, ErrNoTableData))
}

func TestParse_ReadabilityFallback(t *testing.T) {
	html := `<html><head><title>Plain article</title></head><body>
<nav>menu menu menu</nav>
<article><h1>Plain article</h1>
<p>This page has no MediaWiki layout at all, so the main content has to be found another way.
It still contains a few sentences of ordinary prose to make the extractor confident about it.</p>
<p>Another paragraph with <a href="/wiki/Linked_Page">a link</a> and more words to read through.</p>
</article></body></html>`

	p := &Parser{}
	page, err := p.Parse(models.ParseRequest{ID: "Plain article", URL: "https://example.com/wiki/Plain_article", HTML: html})
	require.NoError(t, err)

	assert.Contains(t, page.Text, "ordinary prose")
	assert.Equal(t, []models.PageID{"Linked Page"}, page.Links)
}
