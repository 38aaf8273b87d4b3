package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/devyanshfaye/weather-analytics/internal/analysis"
	"github.com/devyanshfaye/weather-analytics/internal/config"
	"github.com/devyanshfaye/weather-analytics/internal/geocode"
	"github.com/devyanshfaye/weather-analytics/internal/report"
	"github.com/devyanshfaye/weather-analytics/internal/weather"
	"github.com/devyanshfaye/weather-analytics/internal/weather/providers"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the components and executes the single linear pass:
// geocode, fetch, analyze, report.
func run(ctx context.Context, cfg *config.AppConfig) error {
	// Shared HTTP client for all outbound calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var resolver weather.Resolver = geocode.NewOpenMeteoGeocoder(httpClient)
	if cfg.GeocoderAPIKey != "" {
		resolver = geocode.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	}

	openMeteo := providers.NewOpenMeteoProvider(httpClient)

	// Current-conditions providers: Open-Meteo always, the keyed ones when
	// credentials are configured.
	current := []weather.Provider{openMeteo}
	if cfg.OpenWeatherAPIKey != "" {
		current = append(current, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		current = append(current, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}

	service := weather.NewService(resolver, openMeteo, current)

	loc, err := service.Resolve(ctx, cfg.City)
	if err != nil {
		return err
	}

	series, err := service.History(ctx, loc, cfg.From, cfg.To)
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(series, analysis.Options{
		TopK:             cfg.TopK,
		AnomalyThreshold: cfg.AnomalyThreshold,
	})
	if err != nil {
		return err
	}

	// Current conditions are best effort; a failure never fails the run.
	var snapshot *weather.Snapshot
	if snap, err := service.Current(ctx, loc); err != nil {
		log.Printf("current conditions unavailable: %v", err)
	} else {
		snapshot = &snap
	}

	if err := report.WriteSummary(os.Stdout, loc, result, snapshot); err != nil {
		return err
	}

	// The summary is already out; a chart failure is reported but must not
	// suppress it.
	if !cfg.NoChart {
		if err := report.RenderChart(cfg.ChartPath, loc, result.Days); err != nil {
			return err
		}
		fmt.Printf("\nChart written to %s\n", cfg.ChartPath)
	}

	return nil
}
