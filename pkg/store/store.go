// Package store persists the cumulative word-count table as a JSON object.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/wikifreq/pkg/mapreduce"
	"github.com/dtnitsch/wikifreq/pkg/storage"
)

// ErrCorrupt marks a store file that exists but is not a word → count object.
var ErrCorrupt = errors.New("corrupt word count file")

// State tells how a load resolved.
type State int

const (
	Loaded State = iota
	Missing
	Corrupt
)

func (s State) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Corrupt:
		return "corrupt"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// LoadResult is the outcome of reading the store file. Counts is never nil;
// for Missing and Corrupt it is empty and, for Corrupt, Err wraps ErrCorrupt.
type LoadResult struct {
	State  State
	Counts *mapreduce.Counts
	Err    error
}

// FrequencyStore is a file-backed word → count table. Only one process
// should write a given file at a time.
type FrequencyStore struct {
	path    string
	storage *storage.Storage
	logger  *slog.Logger
}

func New(path string, logger *slog.Logger) *FrequencyStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FrequencyStore{
		path:    path,
		storage: &storage.Storage{},
		logger:  logger,
	}
}

func (s *FrequencyStore) Path() string { return s.path }

// Load reads the file without failing on a missing or malformed one. The
// returned error is reserved for I/O failures, where overwriting the file
// could lose data.
func (s *FrequencyStore) Load() (LoadResult, error) {
	data, err := s.storage.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return LoadResult{State: Missing, Counts: mapreduce.NewCounts()}, nil
		}
		return LoadResult{}, err
	}

	counts, err := decode(data)
	if err != nil {
		return LoadResult{
			State:  Corrupt,
			Counts: mapreduce.NewCounts(),
			Err:    fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err),
		}, nil
	}
	return LoadResult{State: Loaded, Counts: counts}, nil
}

// ReadAll returns the current table. Missing and corrupt files read as empty.
func (s *FrequencyStore) ReadAll() (*mapreduce.Counts, error) {
	res, err := s.load()
	if err != nil {
		return nil, err
	}
	return res.Counts, nil
}

func (s *FrequencyStore) load() (LoadResult, error) {
	res, err := s.Load()
	if err != nil {
		return res, fmt.Errorf("failed to read word counts: %w", err)
	}
	switch res.State {
	case Missing:
		s.logger.Debug("word count file not found, starting empty", "path", s.path)
	case Corrupt:
		s.logger.Warn("word count file unreadable, treating as empty", "path", s.path, "error", res.Err)
	}
	return res, nil
}

// Merge adds one occurrence per element of words to the stored table and
// writes the whole table back. It returns len(words).
func (s *FrequencyStore) Merge(words []string) (int, error) {
	local := mapreduce.NewCounts()
	for _, w := range words {
		local.Add(w, 1)
	}

	res, err := s.load()
	if err != nil {
		return 0, err
	}
	global := mapreduce.Reduce(res.Counts, local)

	data, err := encode(global)
	if err != nil {
		return 0, fmt.Errorf("failed to encode word counts: %w", err)
	}
	if err := s.storage.SaveFile(s.path, data); err != nil {
		return 0, fmt.Errorf("failed to write word counts to %s: %w", s.path, err)
	}

	s.logger.Debug("merged words", "path", s.path, "words", len(words), "distinct", global.Len())
	return len(words), nil
}

func decode(data []byte) (*mapreduce.Counts, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	counts := mapreduce.NewCounts()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		word, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		num, ok := tok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("value of %q is not a number", word)
		}
		n, err := num.Int64()
		if err != nil || n < 0 {
			return nil, fmt.Errorf("value of %q is not a non-negative integer: %s", word, num)
		}
		counts.Set(word, int(n))
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after object")
	}
	return counts, nil
}

// encode writes the table as a 4-space indented object in insertion order.
func encode(counts *mapreduce.Counts) ([]byte, error) {
	if counts.Len() == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	var key bytes.Buffer
	enc := json.NewEncoder(&key)
	enc.SetEscapeHTML(false)

	buf.WriteString("{\n")
	i := 0
	for word, n := range counts.All() {
		key.Reset()
		if err := enc.Encode(word); err != nil {
			return nil, err
		}
		buf.WriteString("    ")
		buf.Write(bytes.TrimRight(key.Bytes(), "\n"))
		fmt.Fprintf(&buf, ": %d", n)
		if i < counts.Len()-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		i++
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
