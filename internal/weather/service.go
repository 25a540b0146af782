package weather

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"
)

// ErrLocationNotFound is the one error the pipeline surfaces to users: a
// direct search that matched nothing. Silently showing mock weather for a
// misspelled city would be misleading, so this never falls back.
var ErrLocationNotFound = errors.New("location not found")

// CoordinateResolver resolves a free-text or "lat,lon" query to coordinates.
// The bool reports whether a location was found.
type CoordinateResolver interface {
	Resolve(ctx context.Context, input string) (Coordinates, bool, error)
}

// WeatherFetcher retrieves normalized weather for resolved coordinates.
type WeatherFetcher interface {
	Fetch(ctx context.Context, coords Coordinates) (WeatherData, error)
}

// Result is what the rendering layer receives. Notice is the side channel
// carrying the degradation message when mock data was substituted for a
// failed or unconfigured live fetch.
type Result struct {
	Data   WeatherData `json:"data"`
	Notice string      `json:"notice,omitempty"`
}

// Service is the pipeline root: resolve a location, fetch current + forecast,
// and fall back to generated data rather than propagating hard failures.
type Service struct {
	resolver   CoordinateResolver
	fetcher    WeatherFetcher
	configured bool

	mu     sync.Mutex
	gen    uint64
	latest *Result
}

// NewService wires the pipeline. configured reports whether an API key is
// present; false switches every request to mock mode without any HTTP.
func NewService(resolver CoordinateResolver, fetcher WeatherFetcher, configured bool) *Service {
	return &Service{
		resolver:   resolver,
		fetcher:    fetcher,
		configured: configured,
	}
}

// GetWeather runs the full pipeline for query. Overlapping calls are guarded
// by a generation counter: only the result of the most recently issued request
// is published as the latest state, so a slow stale response never overwrites
// a newer one.
func (s *Service) GetWeather(ctx context.Context, query string) (Result, error) {
	gen := s.begin()
	query = strings.TrimSpace(query)

	if !s.configured {
		res := s.mockResult(query, "No API key configured; showing sample weather data.")
		s.publish(gen, res)
		return res, nil
	}

	coords, found, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		log.Printf("weather: resolve %q failed: %v; falling back to sample data", query, err)
		res := s.mockResult(query, "Location service unavailable; showing sample weather data.")
		s.publish(gen, res)
		return res, nil
	}
	if !found {
		return Result{}, ErrLocationNotFound
	}

	data, err := s.fetcher.Fetch(ctx, coords)
	if err != nil {
		log.Printf("weather: fetch for %q failed: %v; falling back to sample data", query, err)
		res := s.mockResult(query, "Live weather unavailable; showing sample weather data.")
		s.publish(gen, res)
		return res, nil
	}

	res := Result{Data: data}
	s.publish(gen, res)
	return res, nil
}

// Latest returns the most recently published result, if any.
func (s *Service) Latest() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return Result{}, false
	}
	return *s.latest, true
}

func (s *Service) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// publish stores res as the latest state only when gen is still current.
func (s *Service) publish(gen uint64, res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen {
		s.latest = &res
	}
}

func (s *Service) mockResult(query, notice string) Result {
	res := Result{
		Data:   GenerateMock(time.Now()),
		Notice: notice,
	}
	if query != "" && !strings.ContainsAny(query, "0123456789") {
		res.Data.Location = query
	}
	return res
}
