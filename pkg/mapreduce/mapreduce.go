package mapreduce

import "iter"

// Counts is a word frequency table that remembers the order in which words
// were first added. The zero value is not usable; call NewCounts.
type Counts struct {
	order  []string
	counts map[string]int
}

func NewCounts() *Counts {
	return &Counts{counts: make(map[string]int)}
}

// Add increases the count of word by n, appending it if it is new.
func (c *Counts) Add(word string, n int) {
	if _, ok := c.counts[word]; !ok {
		c.order = append(c.order, word)
	}
	c.counts[word] += n
}

// Set overwrites the count of word, appending it if it is new.
func (c *Counts) Set(word string, n int) {
	if _, ok := c.counts[word]; !ok {
		c.order = append(c.order, word)
	}
	c.counts[word] = n
}

// Get returns the count of word and whether it is present.
func (c *Counts) Get(word string) (int, bool) {
	n, ok := c.counts[word]
	return n, ok
}

// Len is the number of distinct words.
func (c *Counts) Len() int { return len(c.order) }

// Words returns the words in first-seen order.
func (c *Counts) Words() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// All iterates word/count pairs in first-seen order.
func (c *Counts) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, w := range c.order {
			if !yield(w, c.counts[w]) {
				return
			}
		}
	}
}

// Max returns the largest count, 0 for an empty table.
func (c *Counts) Max() int {
	m := 0
	for _, n := range c.counts {
		m = max(m, n)
	}
	return m
}

// Total is the sum of all counts.
func (c *Counts) Total() int {
	t := 0
	for _, n := range c.counts {
		t += n
	}
	return t
}

// Map returns a plain copy of the table.
func (c *Counts) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for w, n := range c.counts {
		out[w] = n
	}
	return out
}

// Map tallies a single document's words.
func Map(words iter.Seq[string]) *Counts {
	local := NewCounts()
	for w := range words {
		local.Add(w, 1)
	}
	return local
}

// Reduce adds every count of each intermediate table into dst, keeping the
// order in which words first appear.
func Reduce(dst *Counts, intermediate ...*Counts) *Counts {
	for _, counts := range intermediate {
		for word, n := range counts.All() {
			dst.Add(word, n)
		}
	}
	return dst
}
