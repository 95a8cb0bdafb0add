package parser

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/wikifreq/models"
)

// ErrNoTableData is wrapped by a ParseError when a table has no rows.
var ErrNoTableData = errors.New("table contains no data")

// ParseError reports a request that the page content cannot satisfy.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// mainContentSelectors are tried in order; MediaWiki skins differ.
var mainContentSelectors = []string{"#bodyContent", "#mw-content-text"}

type Parser struct{}

// Parse extracts everything the rest of the program needs from the HTML of
// an article. The returned page holds plain data only.
func (p *Parser) Parse(req models.ParseRequest) (*models.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(req.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	content, linkScope := mainContent(doc, req)

	title := normalizeText(doc.Find("#firstHeading").First().Text())
	if title == "" {
		title = normalizeText(doc.Find("title").First().Text())
	}

	page := &models.Page{
		ID:    req.ID,
		URL:   req.URL,
		Title: title,
		Text:  visibleText(content),
	}

	content.Find("p").Each(func(_ int, s *goquery.Selection) {
		page.Paragraphs = append(page.Paragraphs, strings.TrimSpace(s.Text()))
	})

	content.Find("table").Each(func(_ int, s *goquery.Selection) {
		page.Tables = append(page.Tables, extractTable(s))
	})

	page.Links = internalLinks(linkScope)

	return page, nil
}

// mainContent returns the article body and the scope to collect links from.
// Without a MediaWiki layout the body comes from go-readability, which
// rewrites hrefs to absolute URLs, so links are then read from the original
// markup.
func mainContent(doc *goquery.Document, req models.ParseRequest) (content, links *goquery.Selection) {
	for _, sel := range mainContentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s, s
		}
	}

	body := doc.Find("body").First()

	parsedURL, err := url.Parse(req.URL)
	if err == nil {
		readabilityParser := readability.NewParser()
		article, err := readabilityParser.Parse(strings.NewReader(req.HTML), parsedURL)
		if err == nil && strings.TrimSpace(article.Content) != "" {
			clean, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
			if err == nil {
				return clean.Selection, body
			}
		}
	}

	return body, body
}

// visibleText joins the text nodes under s with single spaces, skipping
// script and style elements.
func visibleText(s *goquery.Selection) string {
	var parts []string
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "#text":
				if t := strings.TrimSpace(c.Text()); t != "" {
					parts = append(parts, t)
				}
			case "script", "style", "noscript", "#comment":
			default:
				walk(c)
			}
		})
	}
	walk(s)
	return strings.Join(parts, " ")
}

func extractTable(s *goquery.Selection) models.Table {
	table := models.Table{
		HasHeaderCells: s.Find("th").Length() > 0,
	}

	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
			text := normalizeText(cell.Text())
			span := 1
			if v, ok := cell.Attr("colspan"); ok {
				if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 1 {
					span = n
				}
			}
			for range span {
				row = append(row, text)
			}
		})
		if len(row) > 0 {
			table.Rows = append(table.Rows, row)
		}
	})

	return table
}

// IsInternalLink reports whether href points at an article on the same wiki
// and returns its title. Namespaced pages (File:, Category:, ...) and
// external links are rejected.
func IsInternalLink(href string) (models.PageID, bool) {
	if !strings.HasPrefix(href, "/wiki/") {
		return "", false
	}
	id := models.CanonicalID(strings.TrimPrefix(href, "/wiki/"))
	if id == "" || strings.Contains(string(id), ":") {
		return "", false
	}
	return id, true
}

func internalLinks(s *goquery.Selection) []models.PageID {
	var links []models.PageID
	seen := make(map[models.PageID]struct{})

	s.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id, ok := IsInternalLink(href)
		if !ok {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		links = append(links, id)
	})

	return links
}

// SelectTable returns the n-th table (1-indexed) of the page.
func SelectTable(page *models.Page, n int) (models.Table, error) {
	if n < 1 || n > len(page.Tables) {
		return models.Table{}, &ParseError{
			Op:  "select table",
			Err: fmt.Errorf("table %d not found, %q has %d tables", n, page.ID, len(page.Tables)),
		}
	}

	table := page.Tables[n-1]
	if len(table.Rows) == 0 {
		return models.Table{}, &ParseError{Op: fmt.Sprintf("select table %d", n), Err: ErrNoTableData}
	}
	return table, nil
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			// Write the line and a single space for separation
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	// Return the result, trimming the final space
	return strings.TrimSpace(b.String())
}
