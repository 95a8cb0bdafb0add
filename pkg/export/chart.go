package export

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/dtnitsch/wikifreq/pkg/analyzer"
	"github.com/dtnitsch/wikifreq/pkg/storage"
)

// RenderChart writes a grouped bar chart of article against reference
// frequency as an HTML page at path.
func RenderChart(path string, rows []analyzer.ChartRow, title string) error {
	words := make([]string, 0, len(rows))
	article := make([]opts.BarData, 0, len(rows))
	reference := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		words = append(words, r.Word)
		article = append(article, opts.BarData{Value: r.Article})
		reference = append(reference, opts.BarData{Value: r.Reference})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "normalized frequency",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
		}),
	)
	bar.SetXAxis(words).
		AddSeries("Article", article).
		AddSeries("Reference", reference)

	page := components.NewPage()
	page.AddCharts(bar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}

	s := &storage.Storage{}
	return s.SaveFile(path, buf.Bytes())
}
