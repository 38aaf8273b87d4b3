package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{"-city", "Berlin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.City != "Berlin" {
		t.Fatalf("expected city Berlin, got %q", cfg.City)
	}
	if cfg.TopK != 3 {
		t.Fatalf("expected default top-k 3, got %d", cfg.TopK)
	}
	if cfg.AnomalyThreshold != 2.5 {
		t.Fatalf("expected default anomaly threshold 2.5, got %v", cfg.AnomalyThreshold)
	}
	if cfg.ChartPath != "weather.png" {
		t.Fatalf("expected default chart path, got %q", cfg.ChartPath)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("expected default timeout 10s, got %v", cfg.HTTPTimeout)
	}

	span := int(cfg.To.Sub(cfg.From).Hours() / 24)
	if span != MaxDays {
		t.Fatalf("expected default range of %d days, got %d", MaxDays, span)
	}
}

func TestLoadMissingCity(t *testing.T) {
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error when -city is missing")
	}
}

func TestLoadDaysOutOfRange(t *testing.T) {
	for _, days := range []string{"0", "8", "-3"} {
		if _, err := Load([]string{"-city", "Berlin", "-days", days}); err == nil {
			t.Fatalf("expected error for -days %s", days)
		}
	}
}

func TestLoadExplicitRange(t *testing.T) {
	cfg, err := Load([]string{"-city", "Berlin", "-from", "2026-08-10", "-to", "2026-08-14"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	if !cfg.From.Equal(want) {
		t.Fatalf("expected from %v, got %v", want, cfg.From)
	}
	if !cfg.To.Equal(want.AddDate(0, 0, 4)) {
		t.Fatalf("unexpected to: %v", cfg.To)
	}
}

func TestLoadExplicitRangeValidation(t *testing.T) {
	cases := [][]string{
		{"-city", "Berlin", "-from", "2026-08-10"},                        // missing -to
		{"-city", "Berlin", "-from", "2026-08-14", "-to", "2026-08-10"},   // reversed
		{"-city", "Berlin", "-from", "2026-08-01", "-to", "2026-08-20"},   // too long
		{"-city", "Berlin", "-from", "10/08/2026", "-to", "2026-08-14"},   // bad format
	}
	for _, args := range cases {
		if _, err := Load(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
