// Package reference loads ranked word frequency lists for a language.
package reference

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Frequencies is a read-only ranked list of (word, relative frequency).
type Frequencies interface {
	// Frequency returns the relative frequency of word, 0 when unknown.
	Frequency(word string) float64
	// Top returns up to n words, most frequent first.
	Top(n int) []string
	Language() string
}

// Table is the in-memory Frequencies implementation.
type Table struct {
	language string
	ranked   []string
	freq     map[string]float64
}

func newTable(language string) *Table {
	return &Table{language: language, freq: make(map[string]float64)}
}

// add keeps the first frequency seen for a word.
func (t *Table) add(word string, f float64) {
	if _, ok := t.freq[word]; ok {
		return
	}
	t.ranked = append(t.ranked, word)
	t.freq[word] = f
}

func (t *Table) Frequency(word string) float64 { return t.freq[word] }

func (t *Table) Top(n int) []string {
	n = min(max(n, 0), len(t.ranked))
	out := make([]string, n)
	copy(out, t.ranked[:n])
	return out
}

func (t *Table) Language() string { return t.language }

func (t *Table) Len() int { return len(t.ranked) }

//go:embed data/en.tsv
var englishTSV string

// English returns the built-in English list.
func English() *Table {
	t, err := ParseTSV(strings.NewReader(englishTSV), "en")
	if err != nil {
		panic(fmt.Sprintf("reference: embedded english list: %v", err))
	}
	return t
}

// Load returns the list at path in the given format ("tsv" or "bnc"), or the
// built-in English list when path is empty.
func Load(path, format, language string) (*Table, error) {
	if path == "" {
		return English(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference list: %w", err)
	}
	defer f.Close()

	var t *Table
	switch format {
	case "", "tsv":
		t, err = ParseTSV(f, language)
	case "bnc":
		t, err = ParseBNC(f, language)
	default:
		return nil, fmt.Errorf("unknown reference format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse reference list %s: %w", path, err)
	}
	return t, nil
}

// ParseTSV reads "word<TAB>frequency" lines ranked by line order. Blank
// lines and lines starting with '#' are skipped.
func ParseTSV(r io.Reader, language string) (*Table, error) {
	t := newTable(language)
	scanner := bufio.NewScanner(r)
	numLine := 0
	for scanner.Scan() {
		numLine++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, freqStr, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected word<TAB>frequency", numLine)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(freqStr), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", numLine, err)
		}
		if f <= 0 || f > 1 {
			return nil, fmt.Errorf("line %d: frequency %v outside (0,1]", numLine, f)
		}
		t.add(strings.ToLower(strings.TrimSpace(word)), f)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

const bncTotalKey = "!!WHOLE_CORPUS"

// ParseBNC reads a Kilgarriff BNC list ("count word pos docs" per line).
// Only the first entry of each word is kept. Frequencies are relative to the
// !!WHOLE_CORPUS count, or to the sum of kept counts when that line is absent.
func ParseBNC(r io.Reader, language string) (*Table, error) {
	type entry struct {
		word  string
		count int
	}

	var (
		entries []entry
		seen    = make(map[string]bool)
		total   int
		sum     int
	)

	scanner := bufio.NewScanner(r)
	numLine := 0
	for scanner.Scan() {
		numLine++
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}

		var (
			numTotal, numDocs int
			word, posTag      string
		)
		if _, err := fmt.Sscanf(l, "%d %s %s %d", &numTotal, &word, &posTag, &numDocs); err != nil {
			return nil, fmt.Errorf("line %d: %w", numLine, err)
		}

		if word == bncTotalKey {
			total = numTotal
			continue
		}
		if strings.HasPrefix(word, "!!") || seen[word] || numTotal <= 0 {
			continue
		}
		seen[word] = true
		entries = append(entries, entry{word, numTotal})
		sum += numTotal
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if total <= 0 {
		total = sum
	}
	t := newTable(language)
	for _, e := range entries {
		t.add(e.word, float64(e.count)/float64(total))
	}
	return t, nil
}
