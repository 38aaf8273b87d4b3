package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// MaxDays bounds the history window the tool will request.
const MaxDays = 7

const dateLayout = "2006-01-02"

var validate = validator.New()

// AppConfig is the full configuration for one run: CLI flags plus the
// optional API credentials from the environment.
type AppConfig struct {
	City string `validate:"required"`

	// Date range, inclusive. Derived from -days unless -from/-to are given.
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`

	ChartPath        string `validate:"required_without=NoChart"`
	NoChart          bool
	TopK             int     `validate:"min=1,max=10"`
	AnomalyThreshold float64 `validate:"gt=0"`

	HTTPTimeout time.Duration

	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string
}

// Load parses CLI arguments and reads credentials from the environment
// (optionally seeded from a .env file).
func Load(args []string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("INFO: error loading .env file: %v", err)
		}
	}

	fs := flag.NewFlagSet("weather-analytics", flag.ContinueOnError)
	city := fs.String("city", "", "city to analyze (required)")
	days := fs.Int("days", MaxDays, fmt.Sprintf("number of past days to fetch (1-%d)", MaxDays))
	fromStr := fs.String("from", "", "start date, YYYY-MM-DD (overrides -days together with -to)")
	toStr := fs.String("to", "", "end date, YYYY-MM-DD (overrides -days together with -from)")
	chartPath := fs.String("chart", "weather.png", "output path for the temperature chart")
	noChart := fs.Bool("no-chart", false, "skip chart rendering")
	topK := fs.Int("top", 3, "how many hottest days to report")
	anomaly := fs.Float64("anomaly-threshold", 2.5, "deviation from the mean (°C) that counts as an anomaly")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		City:             *city,
		ChartPath:        *chartPath,
		NoChart:          *noChart,
		TopK:             *topK,
		AnomalyThreshold: *anomaly,

		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		WeatherAPIKey:     os.Getenv("WEATHERAPI_API_KEY"),
		GeocoderAPIKey:    os.Getenv("GEOCODER_API_KEY"),
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	if err := cfg.setDateRange(*days, *fromStr, *toStr); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDateRange resolves -days / -from / -to into the inclusive [From, To]
// window, capped at MaxDays.
func (c *AppConfig) setDateRange(days int, fromStr, toStr string) error {
	if (fromStr == "") != (toStr == "") {
		return fmt.Errorf("-from and -to must be provided together")
	}

	if fromStr != "" {
		from, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return fmt.Errorf("invalid -from date: %w", err)
		}
		to, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return fmt.Errorf("invalid -to date: %w", err)
		}
		if to.Before(from) {
			return fmt.Errorf("-to must not be before -from")
		}
		if span := int(to.Sub(from).Hours()/24) + 1; span > MaxDays {
			return fmt.Errorf("date range spans %d days; the maximum is %d", span, MaxDays)
		}
		c.From = from.UTC()
		c.To = to.UTC()
		return nil
	}

	if days < 1 || days > MaxDays {
		return fmt.Errorf("-days must be between 1 and %d", MaxDays)
	}
	now := time.Now().UTC().Truncate(24 * time.Hour)
	c.To = now
	c.From = now.AddDate(0, 0, -days)
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
