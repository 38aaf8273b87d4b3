package report

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/devyanshfaye/weather-analytics/internal/analysis"
	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

// RenderError indicates the chart could not be produced. The caller is
// expected to still emit the textual summary.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering chart to %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

const (
	chartWidth  = 1000
	chartHeight = 500

	marginLeft   = 70.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 60.0
)

// Per-series line colors: max red, min blue, avg green.
var seriesColors = [3]string{"#d62728", "#1f77b4", "#2ca02c"}

// RenderChart draws the per-day max/min/avg temperature lines to a PNG file.
// Every failure comes back as a *RenderError.
func RenderChart(path string, loc weather.Location, days []analysis.DaySummary) error {
	if len(days) == 0 {
		return &RenderError{Path: path, Err: fmt.Errorf("no daily summaries to plot")}
	}

	titleFace, labelFace, err := chartFaces()
	if err != nil {
		return &RenderError{Path: path, Err: err}
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetHexColor("#ffffff")
	dc.DrawRectangle(0, 0, chartWidth, chartHeight)
	dc.Fill()

	lo, hi := temperatureRange(days)
	plot := plotArea{
		x0: marginLeft,
		y0: marginTop,
		x1: chartWidth - marginRight,
		y1: chartHeight - marginBottom,
		lo: lo,
		hi: hi,
		n:  len(days),
	}

	drawGrid(dc, plot, labelFace)
	drawXAxisLabels(dc, plot, days, labelFace)

	series := [3]struct {
		label string
		value func(analysis.DaySummary) float64
	}{
		{"max", func(d analysis.DaySummary) float64 { return d.MaxTemp }},
		{"min", func(d analysis.DaySummary) float64 { return d.MinTemp }},
		{"avg", func(d analysis.DaySummary) float64 { return d.AvgTemp }},
	}
	for i, s := range series {
		dc.SetHexColor(seriesColors[i])
		drawSeries(dc, plot, days, s.value)
	}

	drawLegend(dc, plot, [3]string{"Max Temp", "Min Temp", "Avg Temp"}, labelFace)

	dc.SetHexColor("#000000")
	dc.SetFontFace(titleFace)
	title := fmt.Sprintf("Weather Trends for %s", loc.Name)
	dc.DrawStringAnchored(title, chartWidth/2, marginTop/2, 0.5, 0.5)

	dc.SetFontFace(labelFace)
	dc.DrawStringAnchored("Temperature (°C)", 18, chartHeight/2, 0.5, 0.5)
	dc.DrawStringAnchored("Date", chartWidth/2, chartHeight-15, 0.5, 0.5)

	if err := dc.SavePNG(path); err != nil {
		return &RenderError{Path: path, Err: err}
	}
	return nil
}

// chartFaces parses the embedded Go Regular font so the chart needs no font
// files on disk.
func chartFaces() (title, label font.Face, err error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse font: %w", err)
	}
	title = truetype.NewFace(f, &truetype.Options{Size: 22})
	label = truetype.NewFace(f, &truetype.Options{Size: 13})
	return title, label, nil
}

// plotArea maps day index / temperature into pixel coordinates.
type plotArea struct {
	x0, y0, x1, y1 float64
	lo, hi         float64
	n              int
}

func (p plotArea) xAt(i int) float64 {
	if p.n == 1 {
		return (p.x0 + p.x1) / 2
	}
	return p.x0 + (p.x1-p.x0)*float64(i)/float64(p.n-1)
}

func (p plotArea) yAt(temp float64) float64 {
	return p.y1 - (p.y1-p.y0)*(temp-p.lo)/(p.hi-p.lo)
}

// temperatureRange returns the padded value range covering all three series.
func temperatureRange(days []analysis.DaySummary) (lo, hi float64) {
	lo, hi = days[0].MinTemp, days[0].MaxTemp
	for _, d := range days {
		if d.MinTemp < lo {
			lo = d.MinTemp
		}
		if d.MaxTemp > hi {
			hi = d.MaxTemp
		}
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	return lo - pad, hi + pad
}

func drawGrid(dc *gg.Context, p plotArea, face font.Face) {
	const ticks = 6

	dc.SetFontFace(face)
	for i := 0; i <= ticks; i++ {
		frac := float64(i) / ticks
		y := p.y1 - (p.y1-p.y0)*frac
		val := p.lo + (p.hi-p.lo)*frac

		dc.SetHexColor("#dddddd")
		dc.SetLineWidth(1)
		dc.DrawLine(p.x0, y, p.x1, y)
		dc.Stroke()

		dc.SetHexColor("#444444")
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", val), p.x0-8, y, 1, 0.4)
	}

	// Axis lines.
	dc.SetHexColor("#000000")
	dc.SetLineWidth(1.5)
	dc.DrawLine(p.x0, p.y0, p.x0, p.y1)
	dc.DrawLine(p.x0, p.y1, p.x1, p.y1)
	dc.Stroke()
}

func drawXAxisLabels(dc *gg.Context, p plotArea, days []analysis.DaySummary, face font.Face) {
	dc.SetFontFace(face)
	dc.SetHexColor("#444444")

	// Thin out labels when there are many days.
	step := 1
	if len(days) > 12 {
		step = len(days) / 12
	}
	for i := 0; i < len(days); i += step {
		label := days[i].Date.Format("01-02")
		dc.DrawStringAnchored(label, p.xAt(i), p.y1+16, 0.5, 0.5)
	}
}

func drawSeries(dc *gg.Context, p plotArea, days []analysis.DaySummary, value func(analysis.DaySummary) float64) {
	dc.SetLineWidth(2)
	for i := 1; i < len(days); i++ {
		dc.DrawLine(p.xAt(i-1), p.yAt(value(days[i-1])), p.xAt(i), p.yAt(value(days[i])))
	}
	dc.Stroke()

	for i := range days {
		dc.DrawCircle(p.xAt(i), p.yAt(value(days[i])), 3.5)
	}
	dc.Fill()
}

func drawLegend(dc *gg.Context, p plotArea, labels [3]string, face font.Face) {
	dc.SetFontFace(face)

	x := p.x1 - 110
	y := p.y0 + 14
	for i, label := range labels {
		dc.SetHexColor(seriesColors[i])
		dc.DrawRectangle(x, y-5, 18, 4)
		dc.Fill()

		dc.SetHexColor("#000000")
		dc.DrawString(label, x+26, y)
		y += 18
	}
}
