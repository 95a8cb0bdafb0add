package models

import (
	"slices"
	"strconv"
	"strings"
)

// Page is the parsed content of a single wiki article. It holds no live DOM,
// every accessor is a plain read.
type Page struct {
	ID         PageID   `json:"id"`
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Language   string   `json:"language,omitempty"` // ISO-639-1 when detected
	Text       string   `json:"text"`               // visible main-content text
	Paragraphs []string `json:"paragraphs,omitempty"`
	Tables     []Table  `json:"tables,omitempty"`
	Links      []PageID `json:"links,omitempty"` // internal article links, document order
}

// Table holds the raw rows of an HTML table as they appear in markup.
type Table struct {
	Rows           [][]string `json:"rows"`
	HasHeaderCells bool       `json:"has_header_cells,omitempty"`
}

// ComparisonRow compares one word between the crawled articles and the
// reference language. A nil frequency means the word does not occur in
// that source.
type ComparisonRow struct {
	Word               string   `json:"word" yaml:"word"`
	ArticleFrequency   *float64 `json:"article_frequency" yaml:"article_frequency"`
	ReferenceFrequency *float64 `json:"reference_frequency" yaml:"reference_frequency"`
}

// Records interprets the table. With a header (forced, or because the
// table uses th cells) the first row becomes the header and a first data row
// that repeats it is dropped. Without one the header is the column indices.
// Short rows are padded so that every row has the header's width.
func (t Table) Records(forceHeader bool) (header []string, rows [][]string) {
	width := 0
	for _, r := range t.Rows {
		width = max(width, len(r))
	}

	padded := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, width)
		copy(row, r)
		padded = append(padded, row)
	}

	if len(padded) > 0 && (forceHeader || t.HasHeaderCells) {
		header, rows = padded[0], padded[1:]
		if len(rows) > 0 && slices.Equal(rows[0], header) {
			rows = rows[1:]
		}
		return header, rows
	}

	header = make([]string, width)
	for i := range header {
		header[i] = strconv.Itoa(i)
	}
	return header, padded
}

// Summary returns the first paragraph that reads like article prose: longer
// than 30 characters and not a hatnote.
func (p *Page) Summary() (string, bool) {
	for _, para := range p.Paragraphs {
		text := strings.TrimSpace(para)
		if len([]rune(text)) <= 30 {
			continue
		}
		if isHatnote(text) {
			continue
		}
		return text, true
	}
	return "", false
}

var hatnoteMarkers = []string{"Redirects here", "For other uses"}

func isHatnote(text string) bool {
	for _, m := range hatnoteMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
