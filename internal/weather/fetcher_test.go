package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/natededev/weather-dashboard/internal/owm"
)

func newTestFetcher(srv *httptest.Server) *Fetcher {
	return NewFetcher(owm.NewClient(srv.Client(), "k"), srv.URL, "metric", "en")
}

func currentBody() string {
	return `{
		"weather":[{"main":"Clouds","description":"scattered clouds","icon":"03d"}],
		"main":{"temp":18.2,"feels_like":17.4,"pressure":1016,"humidity":71},
		"visibility":10000,
		"wind":{"speed":5.1,"deg":45},
		"dt":1750000000,
		"sys":{"country":"US","sunrise":1749980000,"sunset":1750030000},
		"name":"New York"
	}`
}

func forecastBody(t *testing.T) string {
	t.Helper()

	type entry map[string]any
	base := time.Now().Truncate(time.Hour)

	var list []entry
	for i := 0; i < 16; i++ {
		ts := base.Add(time.Duration(3*i) * time.Hour)
		list = append(list, entry{
			"dt": ts.Unix(),
			"main": map[string]any{
				"temp": 18.0, "feels_like": 17.0,
				"temp_min": 14.0, "temp_max": 21.0,
				"pressure": 1014, "humidity": 68,
			},
			"weather": []map[string]string{{"main": "Clouds", "description": "few clouds", "icon": "02d"}},
			"wind":    map[string]any{"speed": 4.0, "deg": 90.0},
			"pop":     0.25,
		})
	}

	raw, err := json.Marshal(map[string]any{
		"list": list,
		"city": map[string]any{"name": "New York", "country": "US"},
	})
	if err != nil {
		t.Fatalf("marshal forecast: %v", err)
	}
	return string(raw)
}

func newFetcherServer(t *testing.T, forecastStatus int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/weather"):
			fmt.Fprint(w, currentBody())
		case strings.HasSuffix(r.URL.Path, "/forecast"):
			if forecastStatus != http.StatusOK {
				w.WriteHeader(forecastStatus)
				fmt.Fprint(w, `{"cod":"502","message":"upstream error"}`)
				return
			}
			fmt.Fprint(w, forecastBody(t))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestFetchMergesCurrentAndForecast(t *testing.T) {
	srv := newFetcherServer(t, http.StatusOK)
	defer srv.Close()

	fetcher := newTestFetcher(srv)

	data, err := fetcher.Fetch(context.Background(), Coordinates{Lat: 40.71, Lon: -74.01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Location != "New York, US" {
		t.Fatalf("location = %q", data.Location)
	}
	if data.Current.Icon != TagCloudy {
		t.Fatalf("current icon = %q, want cloudy", data.Current.Icon)
	}
	if data.Current.WindDirection != "NE" {
		t.Fatalf("wind direction = %q, want NE", data.Current.WindDirection)
	}
	if len(data.Hourly) != 8 {
		t.Fatalf("hourly len = %d, want 8", len(data.Hourly))
	}
	if data.Hourly[0].Precipitation != 25 {
		t.Fatalf("precipitation = %d, want 25", data.Hourly[0].Precipitation)
	}
	if len(data.Daily) == 0 || len(data.Daily) > 7 {
		t.Fatalf("daily len = %d", len(data.Daily))
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("live result failed shape validation: %v", err)
	}
}

// Current succeeding while the forecast fails must fail the whole fetch; the
// pipeline never merges real current conditions with mock forecast data.
func TestFetchFailsWhenForecastFails(t *testing.T) {
	srv := newFetcherServer(t, http.StatusBadGateway)
	defer srv.Close()

	fetcher := newTestFetcher(srv)

	_, err := fetcher.Fetch(context.Background(), Coordinates{Lat: 40.71, Lon: -74.01})
	if err == nil {
		t.Fatal("expected error when the forecast request fails")
	}
	if !strings.Contains(err.Error(), "forecast") {
		t.Fatalf("error = %v, want the failing request named", err)
	}
}
