package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/natededev/weather-dashboard/internal/owm"
)

// Fetcher retrieves current conditions and the forecast for a coordinate pair
// and normalizes both wire shapes into one WeatherData.
type Fetcher struct {
	client  *owm.Client
	baseURL string
	units   string
	lang    string
}

func NewFetcher(client *owm.Client, baseURL, units, lang string) *Fetcher {
	return &Fetcher{
		client:  client,
		baseURL: baseURL,
		units:   units,
		lang:    lang,
	}
}

func (f *Fetcher) params(coords Coordinates) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("units", f.units)
	params.Set("lang", f.lang)
	return params
}

// Fetch issues the current-weather and forecast requests concurrently and
// merges them. If either request fails the whole fetch fails; no partial
// result is ever assembled, the caller falls back to mock data instead.
func (f *Fetcher) Fetch(ctx context.Context, coords Coordinates) (WeatherData, error) {
	var (
		wg      sync.WaitGroup
		current currentPayload
		cErr    error
		fc      forecastPayload
		fErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cErr = f.client.Get(ctx, f.baseURL, "/weather", f.params(coords), &current)
	}()
	go func() {
		defer wg.Done()
		fErr = f.client.Get(ctx, f.baseURL, "/forecast", f.params(coords), &fc)
	}()
	wg.Wait()

	if cErr != nil {
		return WeatherData{}, fmt.Errorf("current weather: %w", cErr)
	}
	if fErr != nil {
		return WeatherData{}, fmt.Errorf("forecast: %w", fErr)
	}

	now := time.Now()

	data := WeatherData{
		Current:     transformCurrent(current),
		Hourly:      transformHourly(fc.List, now),
		Daily:       transformDaily(fc.List),
		Location:    formatLocation(current.Name, current.Sys.Country),
		LastUpdated: now.Format(time.RFC3339),
	}
	return data, nil
}

func formatLocation(name, country string) string {
	if name == "" {
		return country
	}
	if country == "" {
		return name
	}
	return name + ", " + country
}
