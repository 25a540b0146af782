package geo

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/natededev/weather-dashboard/internal/owm"
	"github.com/natededev/weather-dashboard/internal/weather"
)

// coordPattern matches an optionally signed decimal pair separated by a comma
// and optional whitespace, e.g. "40.71,-74.01" or "40.71 , -74.01".
var coordPattern = regexp.MustCompile(`^-?\d+(\.\d+)?\s*,\s*-?\d+(\.\d+)?$`)

// Resolver turns free-text queries or "lat,lon" pairs into coordinates using
// the OpenWeather geocoding endpoints.
type Resolver struct {
	client  *owm.Client
	baseURL string
}

func NewResolver(client *owm.Client, baseURL string) *Resolver {
	return &Resolver{
		client:  client,
		baseURL: baseURL,
	}
}

// Resolve maps input to coordinates. The second return value reports whether a
// location was found; "not found" is an expected, frequent outcome and is not
// an error. Numeric "lat,lon" input is parsed directly with no network call.
func (r *Resolver) Resolve(ctx context.Context, input string) (weather.Coordinates, bool, error) {
	input = strings.TrimSpace(input)

	if coordPattern.MatchString(input) {
		return parseCoordinatePair(input), true, nil
	}

	results, err := r.Search(ctx, input, 1)
	if err != nil {
		return weather.Coordinates{}, false, err
	}
	if len(results) == 0 {
		return weather.Coordinates{}, false, nil
	}

	return weather.Coordinates{Lat: results[0].Lat, Lon: results[0].Lon}, true, nil
}

func parseCoordinatePair(input string) weather.Coordinates {
	parts := strings.SplitN(input, ",", 2)
	lat, _ := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, _ := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	return weather.Coordinates{Lat: lat, Lon: lon}
}

// geoResult is the wire shape of one /direct or /reverse result.
type geoResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Search runs a geocoding search and returns up to limit suggestions.
func (r *Resolver) Search(ctx context.Context, query string, limit int) ([]weather.LocationSuggestion, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var results []geoResult
	if err := r.client.Get(ctx, r.baseURL, "/direct", params, &results); err != nil {
		return nil, err
	}

	suggestions := make([]weather.LocationSuggestion, 0, len(results))
	for i, res := range results {
		suggestions = append(suggestions, weather.LocationSuggestion{
			ID:      fmt.Sprintf("%.4f-%.4f-%d", res.Lat, res.Lon, i),
			Name:    res.Name,
			Country: res.Country,
			State:   res.State,
			Lat:     res.Lat,
			Lon:     res.Lon,
		})
	}
	return suggestions, nil
}

// SearchForgiving tries the literal query first and then up to three rewrites
// in a fixed order, stopping at the first one yielding any result. This is a
// heuristic cascade for queries like "newyork" or "SanFrancisco", not fuzzy
// matching; ties are broken by rewrite order, never by relevance.
func (r *Resolver) SearchForgiving(ctx context.Context, query string, limit int) ([]weather.LocationSuggestion, error) {
	var lastErr error
	for _, candidate := range rewriteQueries(query) {
		results, err := r.Search(ctx, candidate, limit)
		if err != nil {
			lastErr = err
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// rewriteQueries produces the cascade: original, whitespace joined with ", ",
// camel/letter-digit boundaries split into words, and both combined.
// Duplicate rewrites are dropped while preserving order.
func rewriteQueries(query string) []string {
	query = strings.TrimSpace(query)

	commaJoined := strings.Join(strings.Fields(query), ", ")
	split := splitBoundaries(query)
	splitJoined := strings.Join(strings.Fields(split), ", ")

	candidates := []string{query, commaJoined, split, splitJoined}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// splitBoundaries inserts spaces at lower-to-upper and letter-digit
// boundaries, e.g. "SanFrancisco" -> "San Francisco", "Area51" -> "Area 51".
func splitBoundaries(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && unicode.IsLower(prev):
				b.WriteRune(' ')
			case unicode.IsDigit(r) && unicode.IsLetter(prev):
				b.WriteRune(' ')
			case unicode.IsLetter(r) && unicode.IsDigit(prev):
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ReverseResolve maps coordinates back to the nearest named place. The bool
// reports whether any place matched.
func (r *Resolver) ReverseResolve(ctx context.Context, lat, lon float64) (weather.LocationSuggestion, bool, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("limit", "1")

	var results []geoResult
	if err := r.client.Get(ctx, r.baseURL, "/reverse", params, &results); err != nil {
		return weather.LocationSuggestion{}, false, err
	}
	if len(results) == 0 {
		return weather.LocationSuggestion{}, false, nil
	}

	res := results[0]
	return weather.LocationSuggestion{
		ID:      fmt.Sprintf("%.4f-%.4f-0", res.Lat, res.Lon),
		Name:    res.Name,
		Country: res.Country,
		State:   res.State,
		Lat:     res.Lat,
		Lon:     res.Lon,
	}, true, nil
}
