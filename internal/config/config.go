package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig carries everything the pipeline needs, passed explicitly into the
// resolver/fetcher at construction time. There is no ambient environment
// coupling past Load.
type AppConfig struct {
	// OpenWeatherAPIKey may be empty; that is a valid, expected state which
	// switches the whole pipeline to mock mode.
	OpenWeatherAPIKey string

	WeatherBaseURL string
	GeoBaseURL     string

	Units string
	Lang  string

	// HTTPTimeout applies to the shared outbound client.
	HTTPTimeout time.Duration

	// RefreshInterval controls the background refresh of the last-used location.
	RefreshInterval time.Duration

	// DBPath is the SQLite file holding persisted preferences.
	DBPath string

	Port string
}

// IsConfigured reports whether live API calls are possible.
func (c *AppConfig) IsConfigured() bool {
	return c.OpenWeatherAPIKey != ""
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		WeatherBaseURL:    getenvDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		GeoBaseURL:        getenvDefault("GEO_BASE_URL", "https://api.openweathermap.org/geo/1.0"),
		Units:             getenvDefault("WEATHER_UNITS", "metric"),
		Lang:              getenvDefault("WEATHER_LANG", "en"),
		DBPath:            getenvDefault("DB_PATH", "data/dashboard.db"),
		Port:              getenvDefault("PORT", "8080"),
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	refresh, err := getenvDuration("REFRESH_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
