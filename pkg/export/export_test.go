package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/wikifreq/models"
	"github.com/dtnitsch/wikifreq/pkg/analyzer"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		phrase string
		n      int
		want   string
	}{
		{"AC/DC Rock", 1, "AC-DC_Rock_table_1.csv"},
		{"Red Velvet", 3, "Red_Velvet_table_3.csv"},
		{"Single", 12, "Single_table_12.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.phrase, tt.n))
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	header := []string{"Year", "Title"}
	rows := [][]string{{"2014", "Happiness"}, {"2015", "Ice Cream Cake, Automatic"}}

	path, err := WriteCSV(dir, "Red Velvet", 1, header, rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Red_Velvet_table_1.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Year", "Title"},
		{"2014", "Happiness"},
		{"2015", "Ice Cream Cake, Automatic"},
	}, records)
}

func TestValueCounts(t *testing.T) {
	rows := [][]string{
		{"2014", "Single", ""},
		{"2015", "Album", "Single"},
		{"2015", "Single", " "},
	}
	got := ValueCounts(rows)
	assert.Equal(t, []ValueCount{
		{"Single", 3},
		{"2015", 2},
		{"2014", 1},
		{"Album", 1},
	}, got)
}

func TestFormatFrequency(t *testing.T) {
	f := 0.123456
	assert.Equal(t, "0.1235", FormatFrequency(&f))
	assert.Equal(t, "-", FormatFrequency(nil))
}

func TestPrintComparison(t *testing.T) {
	one, half := 1.0, 0.5
	var buf bytes.Buffer
	PrintComparison(&buf, []models.ComparisonRow{
		{Word: "the", ArticleFrequency: &one, ReferenceFrequency: &one},
		{Word: "velvet", ArticleFrequency: &half},
	})

	out := buf.String()
	assert.Contains(t, out, "Word")
	assert.Contains(t, out, "1.0000")

	var velvet string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "velvet") {
			velvet = line
		}
	}
	assert.Contains(t, velvet, "0.5000")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(velvet), "-"))
}

func TestPrintRecordsAndValueCounts(t *testing.T) {
	var buf bytes.Buffer
	PrintRecords(&buf, []string{"0", "1"}, [][]string{{"a", "b"}})
	assert.Contains(t, buf.String(), "a")

	buf.Reset()
	PrintValueCounts(&buf, []ValueCount{{"x", 3}, {"y", 2}, {"z", 1}}, 2)
	out := buf.String()
	assert.Contains(t, out, "x")
	assert.NotContains(t, out, "z")
}

func TestRenderChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "comparison.html")
	err := RenderChart(path, []analyzer.ChartRow{
		{Word: "the", Article: 1, Reference: 1},
		{Word: "velvet", Article: 0.5},
	}, "Article vs reference")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "velvet")
}
