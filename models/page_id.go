package models

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PageID is a canonical article title, e.g. "Red Velvet".
type PageID string

// CanonicalID normalizes a raw title or link target into a PageID.
// It is the only normalization applied before visited/frontier checks:
// percent escapes are decoded, any #fragment is dropped, underscores become
// spaces, runs of whitespace collapse to one space and the first letter is
// upper-cased. The rest of the title keeps its case.
func CanonicalID(raw string) PageID {
	s := raw
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)
	if unicode.IsLower(r) {
		s = string(unicode.ToUpper(r)) + s[size:]
	}
	return PageID(s)
}

// Path returns the URL path form of the title (spaces become underscores).
func (id PageID) Path() string {
	return strings.ReplaceAll(string(id), " ", "_")
}

func (id PageID) String() string {
	return string(id)
}
