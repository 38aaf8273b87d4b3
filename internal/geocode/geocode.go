// Package geocode resolves a place name to coordinates before any weather
// data is fetched.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kelvins/geocoder"

	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

// ErrNotFound is returned when no place matches the requested name.
var ErrNotFound = errors.New("city not found")

// Geocoder resolves a free-form place name to a Location.
type Geocoder interface {
	Resolve(ctx context.Context, name string) (weather.Location, error)
}

// OpenMeteoGeocoder uses the Open-Meteo geocoding API. It needs no API key.
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
}

func NewOpenMeteoGeocoder(client *http.Client) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL: "https://geocoding-api.open-meteo.com/v1/search",
		client:  client,
	}
}

func (g *OpenMeteoGeocoder) Resolve(ctx context.Context, name string) (weather.Location, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")

	u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.Location{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return weather.Location{}, &weather.NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weather.Location{}, &weather.NetworkError{URL: u, StatusCode: resp.StatusCode}
	}

	var payload struct {
		Results []struct {
			Name        string  `json:"name"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			CountryCode string  `json:"country_code"`
			Timezone    string  `json:"timezone"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Location{}, &weather.ParseError{Source: "geocoding", Err: err}
	}

	// A well-formed response without a results key means the name matched
	// nothing, not that the response was malformed.
	if len(payload.Results) == 0 {
		return weather.Location{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	best := payload.Results[0]
	return weather.Location{
		Name:     best.Name,
		Country:  best.CountryCode,
		Lat:      best.Latitude,
		Lon:      best.Longitude,
		Timezone: best.Timezone,
	}, nil
}

// GoogleGeocoder resolves names through the Google Geocoding API. Used when
// GEOCODER_API_KEY is configured.
type GoogleGeocoder struct{}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{}
}

func (g *GoogleGeocoder) Resolve(_ context.Context, name string) (weather.Location, error) {
	loc, err := geocoder.Geocoding(geocoder.Address{City: name})
	if err != nil {
		return weather.Location{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return weather.Location{
		Name: name,
		Lat:  loc.Latitude,
		Lon:  loc.Longitude,
	}, nil
}
