package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-gia/types"
)

const okBody = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {"source": {"id": null, "name": "Reuters"}, "title": "Russia masses troops near Ukraine border",
     "description": "Satellite images show buildup.", "url": "https://example.com/a",
     "publishedAt": "2026-01-05T10:00:00Z"},
    {"source": {"id": "bbc", "name": "BBC"}, "title": "Trade talks resume",
     "description": null, "url": "https://example.com/b", "publishedAt": "2026-01-04T08:30:00Z"}
  ]
}`

func TestSearch_OK(t *testing.T) {
	var gotPath, gotKey string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL+"/", time.Second)
	articles, err := c.Search(context.Background(), DefaultQuery)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/everything" {
		t.Errorf("path = %q, want /everything", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("X-Api-Key = %q", gotKey)
	}
	if q := gotQuery["q"]; len(q) != 1 || q[0] != `geopolitics OR war OR sanctions OR "trade war" OR ukraine OR china OR russia OR israel OR iran` {
		t.Errorf("q = %v", q)
	}
	for key, want := range map[string]string{"language": "en", "sortBy": "publishedAt", "pageSize": "10"} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("%s = %v, want %s", key, got, want)
		}
	}

	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Source.Name != "Reuters" || articles[0].PublishedAt != "2026-01-05T10:00:00Z" {
		t.Errorf("first article = %+v", articles[0])
	}
	if articles[1].Description != "" {
		t.Errorf("null description should decode as empty, got %q", articles[1].Description)
	}
}

func TestSearch_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid","message":"bad key"}`},
		{"rate limited", http.StatusTooManyRequests, `slow down`},
		{"malformed body", http.StatusOK, `{"status": "ok", "articles": [`},
		{"error status", http.StatusOK, `{"status":"error","message":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient("k", srv.URL, time.Second).Search(context.Background(), DefaultQuery)
			var upErr *types.UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upErr.Upstream != "newsapi" {
				t.Errorf("Upstream = %q", upErr.Upstream)
			}
		})
	}
}

func TestSearch_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("k", srv.URL, 5*time.Second).Search(ctx, DefaultQuery)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("k", "", 0)
	if c.baseURL != "https://newsapi.org/v2" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
	if c.client.Timeout != 10*time.Second {
		t.Errorf("timeout = %s", c.client.Timeout)
	}
}
