package analysis

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

func obsAt(t time.Time, temp float64) weather.Observation {
	return weather.Observation{Timestamp: t, Temperature: temp}
}

func TestAnalyzeBasicAggregates(t *testing.T) {
	t0 := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	series := weather.Series{
		obsAt(t0, 10),
		obsAt(t0.Add(1*time.Hour), 20),
		obsAt(t0.Add(2*time.Hour), 15),
	}

	res, err := Analyze(series, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Min.Value != 10 || !res.Min.Timestamp.Equal(t0) {
		t.Fatalf("expected min 10 at %v, got %v at %v", t0, res.Min.Value, res.Min.Timestamp)
	}
	if res.Max.Value != 20 || !res.Max.Timestamp.Equal(t0.Add(1*time.Hour)) {
		t.Fatalf("expected max 20 at t+1h, got %v at %v", res.Max.Value, res.Max.Timestamp)
	}
	if res.MeanTemp != 15.0 {
		t.Fatalf("expected mean 15.0, got %v", res.MeanTemp)
	}
	if res.Trend != TrendRising {
		t.Fatalf("expected trend %q, got %q", TrendRising, res.Trend)
	}
}

func TestAnalyzeMinMeanMaxOrdering(t *testing.T) {
	t0 := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	cases := [][]float64{
		{1, 2, 3},
		{-5.5, 0, 12.25, 3},
		{7, 7, 7, 7},
		{30, -30},
	}

	for _, temps := range cases {
		var series weather.Series
		for i, temp := range temps {
			series = append(series, obsAt(t0.Add(time.Duration(i)*time.Hour), temp))
		}

		res, err := Analyze(series, Options{})
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", temps, err)
		}
		if res.Min.Value > res.MeanTemp || res.MeanTemp > res.Max.Value {
			t.Fatalf("min <= mean <= max violated for %v: min=%v mean=%v max=%v",
				temps, res.Min.Value, res.MeanTemp, res.Max.Value)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	t0 := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	series := weather.Series{
		{Timestamp: t0, Temperature: 12.5, Humidity: 60, WindSpeed: 3},
		{Timestamp: t0.Add(time.Hour), Temperature: 18.25, Humidity: 55, WindSpeed: 4},
		{Timestamp: t0.Add(26 * time.Hour), Temperature: 9, Humidity: 80, WindSpeed: 7},
	}

	first, err := Analyze(series, Options{TopK: 2, AnomalyThreshold: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Analyze(series, Options{TopK: 2, AnomalyThreshold: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated analysis differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	series := weather.Series{
		obsAt(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), 10),
	}

	_, err := Analyze(series, Options{})
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insufficient.Points != 1 || insufficient.Required != 2 {
		t.Fatalf("unexpected error detail: %+v", insufficient)
	}
}

func TestClassifyTrend(t *testing.T) {
	cases := []struct {
		first, last float64
		want        Trend
	}{
		{10, 15, TrendRising},
		{15, 10, TrendFalling},
		{10, 10.2, TrendStable},
		{10, 9.8, TrendStable},
	}
	for _, tc := range cases {
		if got := classifyTrend(tc.first, tc.last); got != tc.want {
			t.Fatalf("classifyTrend(%v, %v) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestWarmingStreak(t *testing.T) {
	cases := []struct {
		vals []float64
		want int
	}{
		{[]float64{}, 0},
		{[]float64{5}, 1},
		{[]float64{5, 4, 3}, 1},
		{[]float64{1, 2, 3, 2, 3, 4, 5}, 4},
		{[]float64{1, 1, 2}, 2},
	}
	for _, tc := range cases {
		if got := warmingStreak(tc.vals); got != tc.want {
			t.Fatalf("warmingStreak(%v) = %d, want %d", tc.vals, got, tc.want)
		}
	}
}

func TestDailySummariesAndTopK(t *testing.T) {
	day1 := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	series := weather.Series{
		{Timestamp: day1.Add(6 * time.Hour), Temperature: 10, Humidity: 80, WindSpeed: 2},
		{Timestamp: day1.Add(14 * time.Hour), Temperature: 20, Humidity: 60, WindSpeed: 5},
		{Timestamp: day2.Add(6 * time.Hour), Temperature: 12, Humidity: 70, WindSpeed: 3},
		{Timestamp: day2.Add(14 * time.Hour), Temperature: 26, Humidity: 50, WindSpeed: 4},
		{Timestamp: day3.Add(6 * time.Hour), Temperature: 11, Humidity: 75, WindSpeed: 6},
		{Timestamp: day3.Add(14 * time.Hour), Temperature: 23, Humidity: 55, WindSpeed: 1},
	}

	res, err := Analyze(series, Options{TopK: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Days) != 3 {
		t.Fatalf("expected 3 daily summaries, got %d", len(res.Days))
	}

	d1 := res.Days[0]
	if d1.MinTemp != 10 || d1.MaxTemp != 20 || d1.AvgTemp != 15 {
		t.Fatalf("unexpected day 1 summary: %+v", d1)
	}
	if d1.AvgHumidity != 70 {
		t.Fatalf("expected day 1 avg humidity 70, got %v", d1.AvgHumidity)
	}
	if d1.MaxWind != 5 {
		t.Fatalf("expected day 1 max wind 5, got %v", d1.MaxWind)
	}

	if len(res.HottestDays) != 2 {
		t.Fatalf("expected 2 hottest days, got %d", len(res.HottestDays))
	}
	if !res.HottestDays[0].Date.Equal(day2) || !res.HottestDays[1].Date.Equal(day3) {
		t.Fatalf("unexpected hottest-day order: %v, %v",
			res.HottestDays[0].Date, res.HottestDays[1].Date)
	}

	// Daily averages are 15, 19, 17: the longest strictly increasing run
	// spans the first two days.
	if res.WarmingStreakDays != 2 {
		t.Fatalf("expected warming streak 2, got %d", res.WarmingStreakDays)
	}
}

func TestDetectAnomalies(t *testing.T) {
	t0 := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	series := weather.Series{
		obsAt(t0, 15),
		obsAt(t0.Add(1*time.Hour), 15),
		obsAt(t0.Add(2*time.Hour), 15),
		obsAt(t0.Add(3*time.Hour), 25), // mean is 17.5; deviation 7.5
	}

	res, err := Analyze(series, Options{AnomalyThreshold: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(res.Anomalies))
	}
	if res.Anomalies[0].Temperature != 25 {
		t.Fatalf("expected the 25 °C reading, got %+v", res.Anomalies[0])
	}
}
