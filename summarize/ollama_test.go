package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkarlov/yt-summary/errors"
)

func newOllamaStub(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Response: response})
	}))
}

func TestOllamaSummarize(t *testing.T) {
	var gotReq ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaResponse{Response: "  a tidy summary\n"})
	}))
	defer srv.Close()

	provider := NewOllama(Options{Host: srv.URL, Model: "llama3.2"})
	got, err := provider.Summarize(context.Background(), "the transcript", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "a tidy summary" {
		t.Errorf("expected trimmed summary, got %q", got)
	}
	if gotReq.Model != "llama3.2" {
		t.Errorf("expected model llama3.2, got %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("expected stream to be disabled")
	}
	if gotReq.Options.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %v", gotReq.Options.Temperature)
	}
	if gotReq.Options.NumPredict != 1000 {
		t.Errorf("expected num_predict 1000, got %d", gotReq.Options.NumPredict)
	}
	if !strings.Contains(gotReq.Prompt, "the transcript") {
		t.Error("expected transcript in prompt")
	}
	if !strings.Contains(gotReq.Prompt, "under 50 words") {
		t.Error("expected length constraint in prompt")
	}
}

func TestOllamaBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	provider := NewOllama(Options{Host: srv.URL})
	_, err := provider.Summarize(context.Background(), "text", 0)
	if !errors.IsBackendFailure(err) {
		t.Fatalf("expected BackendFailure, got %v", err)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected original backend message preserved, got %v", err)
	}
}

func TestOllamaHostPrecedence(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://env-host:11434")

	if p := NewOllama(Options{}); p.host != "http://env-host:11434" {
		t.Errorf("expected env host, got %q", p.host)
	}
	if p := NewOllama(Options{Host: "http://explicit:11434/"}); p.host != "http://explicit:11434" {
		t.Errorf("expected explicit host with trailing slash trimmed, got %q", p.host)
	}
}
