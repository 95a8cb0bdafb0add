package mapreduce

import (
	"fmt"
	"slices"
)

// Entry is one word of a ranking.
type Entry struct {
	Word  string
	Count int
}

// TopN returns the n most frequent words, count descending. Ties keep
// first-seen order.
func TopN(c *Counts, n int) []Entry {
	entries := make([]Entry, 0, c.Len())
	for w, count := range c.All() {
		entries = append(entries, Entry{Word: w, Count: count})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Count - a.Count
	})

	limit := min(max(n, 0), len(entries))
	return entries[:limit]
}

// TopKeywords returns the top N words formatted as "word:count"
// (e.g., "velvet:1153").
func TopKeywords(c *Counts, n int) []string {
	top := TopN(c, n)
	keywords := make([]string, len(top))
	for i, e := range top {
		keywords[i] = fmt.Sprintf("%s:%d", e.Word, e.Count)
	}
	return keywords
}
