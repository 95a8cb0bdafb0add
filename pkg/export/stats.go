package export

import (
	"strings"

	"github.com/dtnitsch/wikifreq/pkg/mapreduce"
)

// ValueCount is how often a cell value occurs in a table.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts counts every non-empty cell value of rows, most frequent first.
// Ties keep the order of first appearance.
func ValueCounts(rows [][]string) []ValueCount {
	counts := mapreduce.NewCounts()
	for _, row := range rows {
		for _, cell := range row {
			if v := strings.TrimSpace(cell); v != "" {
				counts.Add(v, 1)
			}
		}
	}

	top := mapreduce.TopN(counts, counts.Len())
	out := make([]ValueCount, len(top))
	for i, e := range top {
		out[i] = ValueCount{Value: e.Word, Count: e.Count}
	}
	return out
}
