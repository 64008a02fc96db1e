package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"go-gia/events"
	"go-gia/logger"
	"go-gia/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockLister struct {
	events []types.Event
	origin events.Origin
	panics bool
}

func (m *mockLister) List(ctx context.Context) ([]types.Event, events.Origin) {
	if m.panics {
		panic("boom")
	}
	return m.events, m.origin
}

func (m *mockLister) Fallback() []types.Event {
	return []types.Event{{ID: 1, Title: "fallback", Severity: types.Medium, Regions: []string{"Global"}}}
}

type mockAnalyzer struct {
	calls    int
	event    string
	location string
}

func (m *mockAnalyzer) Analyze(ctx context.Context, event, location string) types.AnalysisResult {
	m.calls++
	m.event, m.location = event, location
	return types.AnalysisResult{Event: event, Location: location, Source: "mock"}
}

func newEngine(lister EventLister, analyzer ImpactAnalyzer) *gin.Engine {
	r := gin.New()
	r.GET("/", Home)
	r.GET("/api/events", GetEvents(lister, logger.Discard()))
	r.POST("/api/analyze", Analyze(analyzer, logger.Discard()))
	r.NoRoute(NotFound)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	rec := do(newEngine(&mockLister{}, &mockAnalyzer{}), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp types.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "G.I.A. Protocol API running" {
		t.Errorf("Status = %q", resp.Status)
	}
	if len(resp.Endpoints) != 2 || resp.Endpoints[0] != "/api/events" || resp.Endpoints[1] != "/api/analyze" {
		t.Errorf("Endpoints = %v", resp.Endpoints)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC 3339: %v", resp.Timestamp, err)
	}
}

func TestGetEvents(t *testing.T) {
	lister := &mockLister{
		events: []types.Event{{ID: 1, Title: "Live", Severity: types.High, Date: "2026-01-05", Regions: []string{"Russia"}}},
		origin: events.Live,
	}
	rec := do(newEngine(lister, &mockAnalyzer{}), http.MethodGet, "/api/events", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get(DataSourceHeader); got != "live" {
		t.Errorf("%s = %q", DataSourceHeader, got)
	}
	var list []types.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "Live" {
		t.Errorf("list = %+v", list)
	}
}

func TestGetEvents_PanicServesFallback(t *testing.T) {
	rec := do(newEngine(&mockLister{panics: true}, &mockAnalyzer{}), http.MethodGet, "/api/events", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(DataSourceHeader); got != "fallback" {
		t.Errorf("%s = %q", DataSourceHeader, got)
	}
	if !strings.Contains(rec.Body.String(), `"title":"fallback"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestAnalyze_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty body", "", "Event required"},
		{"empty object", `{}`, "Event required"},
		{"location only", `{"location":"Paris"}`, "Event required"},
		{"blank event", `{"event":"   "}`, "Event required"},
		{"null", `null`, "Event required"},
		{"broken json", `{"event":`, "Invalid JSON body"},
		{"array", `["Oil crisis"]`, "Invalid JSON body"},
		{"wrong type", `{"event": 42}`, "Invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			rec := do(newEngine(&mockLister{}, analyzer), http.MethodPost, "/api/analyze", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp["error"] != tt.wantErr {
				t.Errorf("error = %q, want %q", resp["error"], tt.wantErr)
			}
			if analyzer.calls != 0 {
				t.Error("analyzer must not be called for invalid input")
			}
		})
	}
}

func TestAnalyze_DefaultsLocation(t *testing.T) {
	analyzer := &mockAnalyzer{}
	rec := do(newEngine(&mockLister{}, analyzer), http.MethodPost, "/api/analyze", `{"event":" Oil crisis "}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if analyzer.event != "Oil crisis" || analyzer.location != "India" {
		t.Errorf("analyzer got %q / %q", analyzer.event, analyzer.location)
	}
}

func TestAnalyze_PassesLocation(t *testing.T) {
	analyzer := &mockAnalyzer{}
	rec := do(newEngine(&mockLister{}, analyzer), http.MethodPost, "/api/analyze", `{"event":"Oil crisis","location":"Paris"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if analyzer.location != "Paris" {
		t.Errorf("location = %q", analyzer.location)
	}
	if !strings.Contains(rec.Body.String(), `"source":"mock"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	rec := do(newEngine(&mockLister{}, &mockAnalyzer{}), http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"error":"Not found"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{types.ErrEventRequired, http.StatusBadRequest},
		{types.ErrMalformedBody, http.StatusBadRequest},
		{fmt.Errorf("bind: %w", types.ErrMalformedBody), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
		{types.Upstream("gemini", errors.New("timeout")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := errorStatus(tt.err); got != tt.want {
			t.Errorf("errorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
