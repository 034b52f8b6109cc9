package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/GlassCut/internal/model"
)

// RenderWasteChart writes an HTML page with a bar chart of the waste
// percentage of every consumed sheet, in cut order.
func RenderWasteChart(w io.Writer, result model.AllocationResult) error {
	if len(result.UsedScraps) == 0 {
		return fmt.Errorf("no sheets to chart")
	}

	categories := make([]string, 0, len(result.UsedScraps))
	waste := make([]opts.BarData, 0, len(result.UsedScraps))
	efficiency := make([]opts.BarData, 0, len(result.UsedScraps))
	for _, s := range result.UsedScraps {
		categories = append(categories, fmt.Sprintf("#%d %s", s.CutID, s.ScrapName))
		waste = append(waste, opts.BarData{Value: round1(s.WastePercent)})
		efficiency = append(efficiency, opts.BarData{Value: round1(s.Efficiency())})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "GlassCut"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Waste per sheet",
			Subtitle: fmt.Sprintf("%d sheet(s), overall waste %.1f%%", len(result.UsedScraps), result.TotalWastePercent()),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%"}),
	)
	bar.SetXAxis(categories).
		AddSeries("Waste", waste).
		AddSeries("Used", efficiency)

	return bar.Render(w)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
