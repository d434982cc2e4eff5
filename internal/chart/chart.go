// Package chart renders elevation profiles as standalone HTML pages.
package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/hongjunna/toporider/internal/profile"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "100%"
	chartHeight = "280px"
)

// Options control the rendered page.
type Options struct {
	Title    string
	Viewport profile.Viewport
}

// Render writes an HTML page with the elevation line and a slope bar chart
// below it, each bar colored by its gradient band. Both charts open zoomed
// to opt.Viewport, clamped to the profile.
func Render(w io.Writer, p *profile.Profile, opt Options) error {
	if p.Empty() {
		return fmt.Errorf("render chart: empty profile")
	}

	zoom := zoomFor(p, opt.Viewport)
	stats := profile.Summarize(p)

	x := make([]string, p.Len())
	elevations := make([]opts.LineData, p.Len())
	slopes := make([]opts.BarData, p.Len())
	for i := 0; i < p.Len(); i++ {
		s := p.Sample(i)
		x[i] = strconv.FormatFloat(s.DistanceKm, 'f', 2, 64)
		elevations[i] = opts.LineData{Value: round1(s.ElevationM)}
		slopes[i] = opts.BarData{
			Value:     round1(s.SlopePercent),
			ItemStyle: &opts.ItemStyle{Color: profile.BandFor(s.SlopePercent).Colors().Stroke},
		}
	}

	title := opt.Title
	if title == "" {
		title = "Elevation"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%.2f km, +%.0f m / -%.0f m", stats.TotalDistanceKm, stats.AscentM, stats.DescentM),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "km"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m", Min: "dataMin"}),
		charts.WithDataZoomOpts(zoom...),
	)
	line.SetXAxis(x).AddSeries("elevation", elevations,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: profile.BandFlat.Colors().Fill}),
	)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Gradient"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "km"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: -profile.MaxSlopePercent, Max: profile.MaxSlopePercent}),
		charts.WithDataZoomOpts(zoom...),
	)
	bar.SetXAxis(x).AddSeries("slope", slopes)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(line, bar)
	return page.Render(w)
}

// zoomFor clamps the requested window to the profile and converts it to
// data zoom percentages.
func zoomFor(p *profile.Profile, v profile.Viewport) []opts.DataZoom {
	total := p.TotalDistanceKm
	viewport := profile.ClampViewport(v.MinKm, v.MaxKm, total)
	return dataZoom(profile.ScrollbarFor(viewport, total))
}

// dataZoom opens the chart at the scrollbar extent, with an inside zoom for
// wheel and drag and a slider that mirrors the scrollbar.
func dataZoom(sb profile.ScrollbarExtent) []opts.DataZoom {
	start := float32(sb.LeftPercent)
	end := float32(sb.LeftPercent + sb.WidthPercent)
	return []opts.DataZoom{
		{Type: "inside", Start: start, End: end},
		{Type: "slider", Start: start, End: end},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
