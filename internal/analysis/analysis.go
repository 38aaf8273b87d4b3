// Package analysis computes descriptive statistics over a weather series.
// It is pure: no I/O, no side effects, identical input yields identical output.
package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

// Trend is a coarse label describing directional change across a series.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// trendEpsilon is the first-vs-last temperature difference (°C) below which
// a series is classified as stable.
const trendEpsilon = 0.5

// minObservations is the smallest series the trend computation accepts.
const minObservations = 2

// InsufficientDataError is returned when the series is too short to analyze.
type InsufficientDataError struct {
	Points   int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d observations, got %d", e.Required, e.Points)
}

// Extremum is a temperature extreme together with when it occurred.
type Extremum struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// DaySummary aggregates one calendar day (UTC) of observations.
type DaySummary struct {
	Date        time.Time `json:"date"`
	MinTemp     float64   `json:"minTemp"`
	MaxTemp     float64   `json:"maxTemp"`
	AvgTemp     float64   `json:"avgTemp"` // (max+min)/2
	AvgHumidity float64   `json:"avgHumidity"`
	MaxWind     float64   `json:"maxWind"`
	Count       int       `json:"count"`
}

// Result holds every aggregate computed over one series. Value object,
// not mutated after Analyze returns it.
type Result struct {
	Observations      int
	Min               Extremum
	Max               Extremum
	MeanTemp          float64
	Trend             Trend
	WarmingStreakDays int
	Days              []DaySummary
	HottestDays       []DaySummary
	Anomalies         []weather.Observation
}

// Options tune the secondary statistics.
type Options struct {
	// TopK is how many hottest days to report. Defaults to 3.
	TopK int
	// AnomalyThreshold is the deviation from the mean (°C) beyond which an
	// observation counts as an anomaly. Defaults to 2.5.
	AnomalyThreshold float64
}

func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = 3
	}
	if o.AnomalyThreshold <= 0 {
		o.AnomalyThreshold = 2.5
	}
	return o
}

// Analyze computes the full set of aggregates for a series ordered by
// timestamp ascending. Fails with *InsufficientDataError when the series
// has fewer than two observations.
func Analyze(series weather.Series, opts Options) (Result, error) {
	if len(series) < minObservations {
		return Result{}, &InsufficientDataError{Points: len(series), Required: minObservations}
	}
	opts = opts.withDefaults()

	res := Result{
		Observations: len(series),
		Min:          Extremum{Value: series[0].Temperature, Timestamp: series[0].Timestamp},
		Max:          Extremum{Value: series[0].Temperature, Timestamp: series[0].Timestamp},
	}

	var sum float64
	for _, obs := range series {
		sum += obs.Temperature
		if obs.Temperature < res.Min.Value {
			res.Min = Extremum{Value: obs.Temperature, Timestamp: obs.Timestamp}
		}
		if obs.Temperature > res.Max.Value {
			res.Max = Extremum{Value: obs.Temperature, Timestamp: obs.Timestamp}
		}
	}
	res.MeanTemp = sum / float64(len(series))

	res.Trend = classifyTrend(series.First().Temperature, series.Last().Temperature)

	res.Days = summarizeDays(series)
	res.WarmingStreakDays = warmingStreak(dailyAverages(res.Days))
	res.HottestDays = topKHottest(res.Days, opts.TopK)
	res.Anomalies = detectAnomalies(series, res.MeanTemp, opts.AnomalyThreshold)

	return res, nil
}

func classifyTrend(first, last float64) Trend {
	delta := last - first
	switch {
	case delta > trendEpsilon:
		return TrendRising
	case delta < -trendEpsilon:
		return TrendFalling
	default:
		return TrendStable
	}
}

// summarizeDays buckets observations by UTC calendar day. The input series
// is ordered, so the buckets come out ordered too.
func summarizeDays(series weather.Series) []DaySummary {
	var days []DaySummary
	var humiditySum float64

	for _, obs := range series {
		date := obs.Timestamp.UTC().Truncate(24 * time.Hour)

		if len(days) == 0 || !days[len(days)-1].Date.Equal(date) {
			if n := len(days); n > 0 {
				days[n-1].AvgHumidity = humiditySum / float64(days[n-1].Count)
			}
			humiditySum = 0
			days = append(days, DaySummary{
				Date:    date,
				MinTemp: obs.Temperature,
				MaxTemp: obs.Temperature,
			})
		}

		d := &days[len(days)-1]
		if obs.Temperature < d.MinTemp {
			d.MinTemp = obs.Temperature
		}
		if obs.Temperature > d.MaxTemp {
			d.MaxTemp = obs.Temperature
		}
		if obs.WindSpeed > d.MaxWind {
			d.MaxWind = obs.WindSpeed
		}
		humiditySum += obs.Humidity
		d.Count++
	}

	if n := len(days); n > 0 {
		days[n-1].AvgHumidity = humiditySum / float64(days[n-1].Count)
	}
	for i := range days {
		days[i].AvgTemp = (days[i].MaxTemp + days[i].MinTemp) / 2
	}
	return days
}

func dailyAverages(days []DaySummary) []float64 {
	avgs := make([]float64, len(days))
	for i, d := range days {
		avgs[i] = d.AvgTemp
	}
	return avgs
}

// warmingStreak returns the length of the longest run of strictly
// increasing values. O(n), single pass.
func warmingStreak(vals []float64) int {
	if len(vals) == 0 {
		return 0
	}
	maxStreak, curr := 1, 1
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[i-1] {
			curr++
		} else {
			curr = 1
		}
		if curr > maxStreak {
			maxStreak = curr
		}
	}
	return maxStreak
}

// topKHottest returns the k days with the highest max temperature, hottest
// first. Ties keep chronological order.
func topKHottest(days []DaySummary, k int) []DaySummary {
	sorted := make([]DaySummary, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MaxTemp > sorted[j].MaxTemp
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

// detectAnomalies returns observations deviating from the mean by more than
// the threshold.
func detectAnomalies(series weather.Series, mean, threshold float64) []weather.Observation {
	var anomalies []weather.Observation
	for _, obs := range series {
		dev := obs.Temperature - mean
		if dev < 0 {
			dev = -dev
		}
		if dev > threshold {
			anomalies = append(anomalies, obs)
		}
	}
	return anomalies
}
