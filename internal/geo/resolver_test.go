package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/natededev/weather-dashboard/internal/owm"
	"github.com/natededev/weather-dashboard/internal/weather"
)

func TestResolveCoordinatePairSkipsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL)
	}))
	defer srv.Close()

	resolver := NewResolver(owm.NewClient(srv.Client(), "k"), srv.URL)

	cases := []struct {
		input string
		want  weather.Coordinates
	}{
		{"40.71,-74.01", weather.Coordinates{Lat: 40.71, Lon: -74.01}},
		{"51.5 , -0.12", weather.Coordinates{Lat: 51.5, Lon: -0.12}},
		{"-33.86,151.2", weather.Coordinates{Lat: -33.86, Lon: 151.2}},
		{"40,-74", weather.Coordinates{Lat: 40, Lon: -74}},
	}

	for _, tc := range cases {
		got, found, err := resolver.Resolve(context.Background(), tc.input)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", tc.input, err)
		}
		if !found {
			t.Fatalf("Resolve(%q): not found", tc.input)
		}
		if got != tc.want {
			t.Fatalf("Resolve(%q) = %+v, want %+v", tc.input, got, tc.want)
		}
	}
}

func TestResolveEmptyResultIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	resolver := NewResolver(owm.NewClient(srv.Client(), "k"), srv.URL)

	_, found, err := resolver.Resolve(context.Background(), "Nonexistentville")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected not found for empty geocoding result")
	}
}

func TestSearchMapsSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "3" {
			t.Errorf("limit = %q, want 3", got)
		}
		w.Write([]byte(`[
			{"name":"London","country":"GB","lat":51.5074,"lon":-0.1278},
			{"name":"London","country":"CA","state":"Ontario","lat":42.9849,"lon":-81.2453}
		]`))
	}))
	defer srv.Close()

	resolver := NewResolver(owm.NewClient(srv.Client(), "k"), srv.URL)

	got, err := resolver.Search(context.Background(), "London", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID == got[1].ID {
		t.Fatal("duplicate names must get distinct IDs")
	}
	if got[1].State != "Ontario" {
		t.Fatalf("state = %q, want Ontario", got[1].State)
	}
}

func TestRewriteQueries(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"New York", []string{"New York", "New, York"}},
		{"SanFrancisco", []string{"SanFrancisco", "San Francisco", "San, Francisco"}},
		{"Area51", []string{"Area51", "Area 51", "Area, 51"}},
		{"Paris", []string{"Paris"}},
	}

	for _, tc := range cases {
		got := rewriteQueries(tc.query)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("rewriteQueries(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestSearchForgivingStopsAtFirstHit(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if q == "San Francisco" {
			w.Write([]byte(`[{"name":"San Francisco","country":"US","lat":37.77,"lon":-122.42}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	resolver := NewResolver(owm.NewClient(srv.Client(), "k"), srv.URL)

	got, err := resolver.SearchForgiving(context.Background(), "SanFrancisco", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "San Francisco" {
		t.Fatalf("unexpected result: %+v", got)
	}
	// Literal query first, then the boundary-split rewrite; the combined
	// rewrite must not be tried once a candidate matched.
	want := []string{"SanFrancisco", "San Francisco"}
	if !reflect.DeepEqual(queries, want) {
		t.Fatalf("queries = %v, want %v", queries, want)
	}
}

func TestReverseResolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "1" {
			t.Errorf("limit = %q, want 1", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`[{"name":"Brooklyn","country":"US","state":"New York","lat":40.65,"lon":-73.95}]`))
	}))
	defer srv.Close()

	resolver := NewResolver(owm.NewClient(srv.Client(), "k"), srv.URL)

	got, found, err := resolver.ReverseResolve(context.Background(), 40.65, -73.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a match")
	}
	if got.Name != "Brooklyn" || got.State != "New York" {
		t.Fatalf("unexpected suggestion: %+v", got)
	}
}

func TestGeolocationMessages(t *testing.T) {
	msgs := map[int]string{
		GeoErrPermissionDenied:    GeolocationMessage(GeoErrPermissionDenied),
		GeoErrPositionUnavailable: GeolocationMessage(GeoErrPositionUnavailable),
		GeoErrTimeout:             GeolocationMessage(GeoErrTimeout),
	}

	seen := make(map[string]bool)
	for code, msg := range msgs {
		if msg == "" {
			t.Fatalf("empty message for code %d", code)
		}
		if seen[msg] {
			t.Fatalf("message for code %d is not distinct: %q", code, msg)
		}
		seen[msg] = true
	}
}
