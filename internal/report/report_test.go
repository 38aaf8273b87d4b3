package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devyanshfaye/weather-analytics/internal/analysis"
	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

func sampleResult() (weather.Location, analysis.Result) {
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	loc := weather.Location{Name: "Berlin", Country: "DE"}
	res := analysis.Result{
		Observations:      48,
		Min:               analysis.Extremum{Value: 10.4, Timestamp: day.Add(4 * time.Hour)},
		Max:               analysis.Extremum{Value: 27.1, Timestamp: day.Add(15 * time.Hour)},
		MeanTemp:          18.3,
		Trend:             analysis.TrendRising,
		WarmingStreakDays: 2,
		Days: []analysis.DaySummary{
			{Date: day, MinTemp: 10.4, MaxTemp: 24.0, AvgTemp: 17.2, AvgHumidity: 61, MaxWind: 5.5, Count: 24},
			{Date: day.AddDate(0, 0, 1), MinTemp: 12.0, MaxTemp: 27.1, AvgTemp: 19.55, AvgHumidity: 55, MaxWind: 4.0, Count: 24},
		},
	}
	res.HottestDays = []analysis.DaySummary{res.Days[1]}
	return loc, res
}

func TestWriteSummary(t *testing.T) {
	loc, res := sampleResult()

	var buf bytes.Buffer
	if err := WriteSummary(&buf, loc, res, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Weather trends for Berlin (DE)",
		"Min temperature:        10.4 °C",
		"Max temperature:        27.1 °C",
		"Mean temperature:       18.30 °C",
		"Trend:                  rising",
		"Longest warming streak: 2 day(s)",
		"Top 1 hottest days:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryWithSnapshot(t *testing.T) {
	loc, res := sampleResult()
	snap := &weather.Snapshot{
		Temperature: 21.3,
		Humidity:    55,
		WindSpeed:   3.2,
		Condition:   weather.ConditionCloudy,
		Providers: []weather.ProviderContribution{
			{ProviderName: "openmeteo"},
		},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, loc, res, snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Current conditions: 21.3 °C, 55% humidity, wind 3.2 m/s, cloudy [openmeteo]") {
		t.Fatalf("summary missing current conditions:\n%s", out)
	}
}

func TestRenderChart(t *testing.T) {
	loc, res := sampleResult()
	path := filepath.Join(t.TempDir(), "chart.png")

	if err := RenderChart(path, loc, res.Days); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG file")
	}
}

func TestRenderChartSingleDay(t *testing.T) {
	loc, res := sampleResult()
	path := filepath.Join(t.TempDir(), "chart.png")

	if err := RenderChart(path, loc, res.Days[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
}

func TestRenderChartBadTarget(t *testing.T) {
	loc, res := sampleResult()
	path := filepath.Join(t.TempDir(), "missing", "chart.png")

	err := RenderChart(path, loc, res.Days)
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected RenderError, got %v", err)
	}
}

func TestRenderChartNoData(t *testing.T) {
	err := RenderChart(filepath.Join(t.TempDir(), "chart.png"), weather.Location{Name: "X"}, nil)
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected RenderError, got %v", err)
	}
}
