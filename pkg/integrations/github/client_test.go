package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reposcout/reposcout/pkg/cache"
)

func TestSearchRepositories(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("sort") != "stars" || r.URL.Query().Get("order") != "desc" {
			t.Errorf("unexpected sort params: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"name": "jeecg-boot", "clone_url": "https://github.com/jeecgboot/jeecg-boot.git",
			 "description": "Low code platform", "stargazers_count": 39000},
			{"name": "anon", "clone_url": "https://github.com/x/anon.git",
			 "description": null}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("", nil, 0).WithBaseURL(srv.URL)
	repos, err := c.SearchRepositories(context.Background(), "jeecg module language:java", 5)
	if err != nil {
		t.Fatalf("SearchRepositories: %v", err)
	}

	if gotQuery != "jeecg module language:java" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(repos) != 2 {
		t.Fatalf("got %d repos", len(repos))
	}
	if repos[0].Name != "jeecg-boot" || repos[0].Stars != 39000 {
		t.Errorf("repos[0] = %+v", repos[0])
	}
	// JSON null description decodes to the empty string.
	if repos[1].Description != "" || repos[1].Stars != 0 {
		t.Errorf("repos[1] = %+v", repos[1])
	}
}

func TestSearchRepositoriesNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("", nil, 0).WithBaseURL(srv.URL)
	if _, err := c.SearchRepositories(context.Background(), "anything", 5); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestSearchRepositoriesUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"items": [{"name": "a", "clone_url": "u", "stargazers_count": 1}]}`))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	c := NewClient("", fc, time.Hour).WithBaseURL(srv.URL)

	ctx := context.Background()
	if _, err := c.SearchRepositories(ctx, "jeecg", 5); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if _, err := c.SearchRepositories(ctx, "jeecg", 5); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (second call cached)", hits)
	}
}

func TestAuthHeader(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := NewClient("tok123", nil, 0).WithBaseURL(srv.URL)
	if _, err := c.SearchRepositories(context.Background(), "q", 5); err != nil {
		t.Fatalf("SearchRepositories: %v", err)
	}
	if auth != "Bearer tok123" {
		t.Errorf("Authorization = %q", auth)
	}
}
