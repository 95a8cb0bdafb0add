// Package analytics holds the word extraction policy shared by the crawler
// and the count-words command.
package analytics

import (
	"iter"
	"regexp"
	"strings"
)

// wordPattern is the single extraction policy: runs of two or more ASCII
// letters. Numbers and one-letter tokens never become words.
var wordPattern = regexp.MustCompile(`[a-z]{2,}`)

// Words lower-cases text and yields every maximal run matching the word
// pattern, in order.
func Words(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		lower := strings.ToLower(text)
		for _, loc := range wordPattern.FindAllStringIndex(lower, -1) {
			if !yield(lower[loc[0]:loc[1]]) {
				return
			}
		}
	}
}

// WordList collects Words into a slice.
func WordList(text string) []string {
	var words []string
	for w := range Words(text) {
		words = append(words, w)
	}
	return words
}
