package owm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetAppendsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("appid")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), "test-key")

	var out struct {
		OK bool `json:"ok"`
	}
	if err := client.Get(context.Background(), srv.URL, "/weather", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "test-key" {
		t.Fatalf("appid = %q, want %q", gotKey, "test-key")
	}
	if !out.OK {
		t.Fatal("response was not decoded")
	}
}

func TestGetParsesAPIErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), "k")

	var out any
	err := client.Get(context.Background(), srv.URL, "/weather", nil, &out)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "city not found" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "city not found")
	}
	if apiErr.APICode != "404" {
		t.Fatalf("apiCode = %q, want %q", apiErr.APICode, "404")
	}
}

func TestGetFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), "k")

	var out any
	err := client.Get(context.Background(), srv.URL, "/weather", nil, &out)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Message != "HTTP 500: Internal Server Error" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestGetWrapsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(&http.Client{}, "k")

	var out any
	err := client.Get(context.Background(), url, "/weather", nil, &out)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 0 {
		t.Fatalf("status = %d, want 0 for network failure", apiErr.StatusCode)
	}
	if apiErr.Message == "" {
		t.Fatal("expected original error message to be preserved")
	}
}
