// Package export writes article tables and frequency comparisons to files
// and to the console.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/wikifreq/pkg/storage"
)

// Filename is the CSV file name of table n of an article, for example
// "AC-DC_Rock_table_1.csv" for ("AC/DC Rock", 1).
func Filename(phrase string, n int) string {
	name := strings.ReplaceAll(phrase, "/", "-")
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("%s_table_%d.csv", name, n)
}

// WriteCSV writes header and rows to dir/Filename(phrase, n) and returns the
// file path. No index column is added.
func WriteCSV(dir, phrase string, n int, header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error encoding csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("error encoding csv rows: %w", err)
	}

	path := filepath.Join(dir, Filename(phrase, n))
	s := &storage.Storage{}
	if err := s.SaveFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}
