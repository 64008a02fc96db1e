package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chatServer(t *testing.T, content string, status int) (*httptest.Server, *map[string]any) {
	t.Helper()
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gemini-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error": {"message": "model overloaded", "type": "server_error"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   received["model"],
			"choices": []map[string]any{
				{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestGeminiGenerator_Generate(t *testing.T) {
	srv, received := chatServer(t, validReply, http.StatusOK)
	gen := NewGeminiGenerator("gemini-key", srv.URL+"/", 5*time.Second)

	reply, err := gen.Generate(context.Background(), "gemini-2.5-flash", BuildPrompt("Oil crisis", "India"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if reply != validReply {
		t.Errorf("reply = %q", reply)
	}
	if (*received)["model"] != "gemini-2.5-flash" {
		t.Errorf("model = %v", (*received)["model"])
	}
	messages, _ := (*received)["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages = %v", (*received)["messages"])
	}
	user, _ := messages[1].(map[string]any)
	if content, _ := user["content"].(string); !strings.Contains(content, "Oil crisis") {
		t.Errorf("user message = %v", user)
	}
}

func TestGeminiGenerator_ErrorStatus(t *testing.T) {
	srv, _ := chatServer(t, "", http.StatusServiceUnavailable)
	gen := NewGeminiGenerator("gemini-key", srv.URL, 5*time.Second)

	if _, err := gen.Generate(context.Background(), "gemini-2.5-pro", "prompt"); err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestGeminiGenerator_EmptyContent(t *testing.T) {
	srv, _ := chatServer(t, "", http.StatusOK)
	gen := NewGeminiGenerator("gemini-key", srv.URL, 5*time.Second)

	if _, err := gen.Generate(context.Background(), "gemini-2.5-pro", "prompt"); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestGeminiGenerator_WithAnalyzer(t *testing.T) {
	srv, _ := chatServer(t, "```json\n"+validReply+"\n```", http.StatusOK)
	a := NewAnalyzer(NewGeminiGenerator("gemini-key", srv.URL, 5*time.Second), []string{"gemini-2.5-pro"})

	got := a.Analyze(context.Background(), "Oil crisis", "India")
	if got.Source != "Google Gemini AI" || got.OverallSeverity != 6.0 {
		t.Errorf("got %+v", got)
	}
}
