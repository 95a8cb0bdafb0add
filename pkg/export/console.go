package export

import (
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/dtnitsch/wikifreq/models"
)

// FormatFrequency renders a frequency rounded to 4 decimals, "-" when absent.
func FormatFrequency(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *f)
}

func toRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// PrintRecords prints a table with its header.
func PrintRecords(w io.Writer, header []string, rows [][]string) {
	tbl := table.New(toRow(header)...).WithWriter(w)
	for _, r := range rows {
		tbl.AddRow(toRow(r)...)
	}
	tbl.Print()
}

// PrintValueCounts prints value statistics, limited to the first limit
// entries when limit > 0.
func PrintValueCounts(w io.Writer, counts []ValueCount, limit int) {
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	tbl := table.New("Value", "Count").WithWriter(w)
	for _, c := range counts {
		tbl.AddRow(c.Value, c.Count)
	}
	tbl.Print()
}

// PrintComparison prints analysis rows in order.
func PrintComparison(w io.Writer, rows []models.ComparisonRow) {
	tbl := table.New("Word", "Article", "Reference").WithWriter(w)
	for _, r := range rows {
		tbl.AddRow(r.Word, FormatFrequency(r.ArticleFrequency), FormatFrequency(r.ReferenceFrequency))
	}
	tbl.Print()
}
