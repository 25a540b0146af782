package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// APIError is the one error type outbound OpenWeather calls produce. A zero
// StatusCode means the failure happened before an HTTP response existed
// (network error, bad URL, decode failure).
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	APICode    string `json:"apiCode,omitempty"`
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("openweather: %s (status %d)", e.Message, e.StatusCode)
	}
	return "openweather: " + e.Message
}

// Client is a stateless OpenWeather HTTP client constructed once with the API
// key and passed by value-reference into the resolver and fetcher; there is no
// ambient global instance. Calls are wrapped in a circuit breaker so a broken
// upstream fails fast, but nothing is ever retried: callers handle failure by
// falling back to mock data.
type Client struct {
	httpClient *http.Client
	apiKey     string
	circuit    *gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		circuit:    cb,
	}
}

// Get issues a GET against baseURL+endpoint, appends the API key when one is
// configured, and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, baseURL, endpoint string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("appid", c.apiKey)
	}

	u := fmt.Sprintf("%s%s?%s", baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Message: err.Error()}
	}

	_, err = c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, &APIError{Message: execErr.Error()}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newStatusError(resp)
		}

		if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
			return nil, &APIError{Message: "decode response: " + decErr.Error()}
		}
		return nil, nil
	})
	if err != nil {
		if apiErr, ok := err.(*APIError); ok {
			return apiErr
		}
		// Breaker-open and other infrastructure errors still surface as APIError.
		return &APIError{Message: err.Error()}
	}
	return nil
}

// newStatusError builds an APIError from a non-2xx response, preferring the
// message field of the JSON error body the API returns.
func newStatusError(resp *http.Response) *APIError {
	apiErr := &APIError{
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		StatusCode: resp.StatusCode,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Cod     json.Number `json:"cod"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	if payload.Message != "" {
		apiErr.Message = payload.Message
	}
	apiErr.APICode = payload.Cod.String()
	return apiErr
}
