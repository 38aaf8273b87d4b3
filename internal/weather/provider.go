package weather

import (
	"context"
	"time"
)

// ProviderReading represents a single provider's normalized current-weather
// reading that can be aggregated into a Snapshot.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC float64
	HumidityPct  float64
	WindSpeedMS  float64
	PressureHpa  float64
	PrecipMm     float64
	Condition    Condition
}

// Provider abstracts a current-conditions data source
// (e.g. Open-Meteo, OpenWeatherMap, WeatherAPI).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ProviderReading, error)
}

// HistoryProvider is a data source that can return a time series of
// observations covering a past date range.
type HistoryProvider interface {
	Name() string
	FetchHistory(ctx context.Context, loc Location, from, to time.Time) (Series, error)
}
