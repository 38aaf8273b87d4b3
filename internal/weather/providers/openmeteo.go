package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

// hourlyTimeLayout is the ISO-8601 shape Open-Meteo uses for hourly stamps.
const hourlyTimeLayout = "2006-01-02T15:04"

// OpenMeteoProvider implements weather.Provider and weather.HistoryProvider
// for Open-Meteo. It needs no API key.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{Client: client},
		circuit: cb,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// Fetch returns the current conditions for the location.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("current_weather", "true")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			Time        string  `json:"time"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err := decodeJSON(resp, p.name, &payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts, err := time.Parse(hourlyTimeLayout, payload.CurrentWeather.Time)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: payload.CurrentWeather.Temperature,
		// Open-Meteo current_weather has limited fields; we fill what we can.
		WindSpeedMS: payload.CurrentWeather.WindSpeed / 3.6,
		Condition:   mapOpenMeteoCondition(payload.CurrentWeather.WeatherCode),
	}, nil
}

// FetchHistory returns hourly observations for the date range, ordered by
// timestamp ascending. A well-formed payload with zero observations is a
// parse failure: callers must never receive an empty series.
func (p *OpenMeteoProvider) FetchHistory(ctx context.Context, loc weather.Location, from, to time.Time) (weather.Series, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m")
		values.Set("wind_speed_unit", "ms")
		values.Set("timezone", "UTC")
		values.Set("start_date", from.UTC().Format("2006-01-02"))
		values.Set("end_date", to.UTC().Format("2006-01-02"))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly struct {
			Time        []string  `json:"time"`
			Temperature []float64 `json:"temperature_2m"`
			Humidity    []float64 `json:"relative_humidity_2m"`
			WindSpeed   []float64 `json:"wind_speed_10m"`
		} `json:"hourly"`
	}

	if err := decodeJSON(resp, p.name, &payload); err != nil {
		return nil, err
	}

	h := payload.Hourly
	if len(h.Time) == 0 {
		return nil, &weather.ParseError{Source: p.name, Err: weather.ErrEmptySeries}
	}
	if len(h.Temperature) != len(h.Time) ||
		len(h.Humidity) != len(h.Time) ||
		len(h.WindSpeed) != len(h.Time) {
		return nil, &weather.ParseError{
			Source: p.name,
			Err:    fmt.Errorf("hourly arrays have mismatched lengths"),
		}
	}

	series := make(weather.Series, 0, len(h.Time))
	for i, raw := range h.Time {
		ts, err := time.Parse(hourlyTimeLayout, raw)
		if err != nil {
			return nil, &weather.ParseError{Source: p.name, Err: err}
		}
		series = append(series, weather.Observation{
			Timestamp:   ts.UTC(),
			Temperature: h.Temperature[i],
			Humidity:    h.Humidity[i],
			WindSpeed:   h.WindSpeed[i],
		})
	}

	series.SortByTime()
	return series, nil
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// Mapping based on Open-Meteo weather codes (simplified).
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code >= 45 && code <= 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case code >= 71 && code <= 77:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}
