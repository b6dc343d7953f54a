package scout

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/reposcout/reposcout/pkg/integrations/github"
)

func newSearchSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := github.NewClient("", nil, 0).WithBaseURL(srv.URL)
	return NewSource(client, "", log.New(io.Discard))
}

func TestDiscoverMapsSearchResults(t *testing.T) {
	var gotQuery string
	src := newSearchSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"items": [
			{"name": "jeecg-orders", "clone_url": "https://github.com/x/jeecg-orders.git",
			 "description": "Order module", "stargazers_count": 120},
			{"name": "bare", "clone_url": "https://github.com/x/bare.git"}
		]}`))
	})

	got := src.Discover(context.Background(), "jeecg order module")

	if gotQuery != "jeecg order module language:java" {
		t.Errorf("query = %q", gotQuery)
	}
	want := []Candidate{
		{Name: "jeecg-orders", SourceURL: "https://github.com/x/jeecg-orders.git", Description: "Order module", Stars: 120},
		{Name: "bare", SourceURL: "https://github.com/x/bare.git", Description: "No description provided"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidates = %+v\nwant %+v", got, want)
	}
}

func TestDiscoverLanguageConfigurable(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"items": [{"name": "a", "clone_url": "u"}]}`))
	}))
	defer srv.Close()

	client := github.NewClient("", nil, 0).WithBaseURL(srv.URL)
	NewSource(client, "go", log.New(io.Discard)).Discover(context.Background(), "cache")

	if gotQuery != "cache language:go" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestDiscoverFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
		}},
		{"zero items", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items": []}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newSearchSource(t, tt.handler).Discover(context.Background(), "anything")
			if !reflect.DeepEqual(got, FallbackCandidates()) {
				t.Errorf("expected the full fallback set, got %+v", got)
			}
		})
	}
}

func TestDiscoverNilSearcher(t *testing.T) {
	src := NewSource(nil, "", log.New(io.Discard))
	got := src.Discover(context.Background(), "anything")
	if !reflect.DeepEqual(got, FallbackCandidates()) {
		t.Errorf("expected fallback set, got %+v", got)
	}
}

func TestFallbackCandidates(t *testing.T) {
	fb := FallbackCandidates()
	if len(fb) != 3 {
		t.Fatalf("len = %d", len(fb))
	}
	if fb[0].Name != "jeecg-boot-module-demo" || fb[0].Stars != 3500 {
		t.Errorf("fb[0] = %+v", fb[0])
	}
	if fb[1].Name != "jeepay-payment-system" || fb[1].Stars != 1200 {
		t.Errorf("fb[1] = %+v", fb[1])
	}
	if fb[2].Name != "stripe-java-sdk" || fb[2].Stars != 5000 {
		t.Errorf("fb[2] = %+v", fb[2])
	}
	for _, c := range fb {
		if c.MatchScore != 0 || c.Rationale != "" {
			t.Errorf("fallback candidate pre-scored: %+v", c)
		}
	}
}
