package common

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wikifreq/models"
)

var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizePhrase cleans up a phrase typed or pasted on the command line.
// Surrounding quotes and angle brackets are removed, and an article URL such as
// "https://www.generasia.com/wiki/Red_Velvet" is reduced to its title.
func SanitizePhrase(raw string) string {
	cleaned := strings.TrimSpace(raw)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"<", ">"}} {
		if len(cleaned) >= 2 && strings.HasPrefix(cleaned, pair[0]) && strings.HasSuffix(cleaned, pair[1]) {
			cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
		}
	}

	if strings.HasPrefix(cleaned, "http://") || strings.HasPrefix(cleaned, "https://") {
		if parsed, err := url.Parse(cleaned); err == nil {
			if _, title, ok := strings.Cut(parsed.EscapedPath(), "/wiki/"); ok && title != "" {
				cleaned = title
			}
		}
	}

	return strings.TrimSpace(cleaned)
}

// PhraseArg returns the canonical article identifier given as the command's
// arguments. Several arguments are joined with spaces so quoting is optional.
func PhraseArg(c *cli.Context) (models.PageID, error) {
	raw := strings.Join(c.Args().Slice(), " ")
	id := models.CanonicalID(SanitizePhrase(raw))
	if id == "" {
		return "", cli.Exit(fmt.Sprintf("Error: missing article phrase\n\nUsage: wikifreq %s <phrase>", c.Command.Name), 1)
	}
	return id, nil
}
