package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func asValidation(err error, target **ValidationError) bool {
	return errors.As(err, target)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	t.Parallel()

	client := New(Config{})
	if client.BaseURL() != DefaultBaseURL {
		t.Fatalf("base URL = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}

	client = New(Config{BaseURL: "http://example.test:9000/"})
	if client.BaseURL() != "http://example.test:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", client.BaseURL())
	}
}

func TestDoSurfacesAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Token: "stale"})
	_, err := client.CurrentUser(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", apiErr.Status)
	}
	if apiErr.Body != "token expired" {
		t.Fatalf("body = %q", apiErr.Body)
	}
}

func TestBearerTokenHeader(t *testing.T) {
	t.Parallel()

	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Account{FullName: "Dev Sharma", Email: "dev@example.com"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	client.SetToken("abc123")
	account, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if auth != "Bearer abc123" {
		t.Fatalf("Authorization = %q", auth)
	}
	if account.Email != "dev@example.com" {
		t.Fatalf("unexpected account %+v", account)
	}
}

func TestFetchIndexStats(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/index-stats" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(IndexStats{TotalChunks: 128, UniqueDocuments: 3})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	stats, err := client.FetchIndexStats(context.Background())
	if err != nil {
		t.Fatalf("FetchIndexStats returned error: %v", err)
	}
	if stats.TotalChunks != 128 || stats.UniqueDocuments != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
