package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestClient(baseURL string) *InnertubeClient {
	c := NewInnertubeClient(5 * time.Second)
	c.baseURL = baseURL
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestGetTranscript(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == playerEndpoint:
			var req playerRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decoding player request: %v", err)
			}
			if req.VideoID != "dQw4w9WgXcQ" {
				t.Errorf("expected videoId dQw4w9WgXcQ, got %q", req.VideoID)
			}
			if req.Context.Client.ClientName != androidClientName {
				t.Errorf("expected ANDROID client, got %q", req.Context.Client.ClientName)
			}
			fmt.Fprintf(w, `{
				"playabilityStatus": {"status": "OK"},
				"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
					{"baseUrl": "%s/api/timedtext?lang=fr", "languageCode": "fr"},
					{"baseUrl": "%s/api/timedtext?lang=en", "languageCode": "en"}
				]}}
			}`, srv.URL, srv.URL)
		case r.URL.Path == "/api/timedtext":
			if r.URL.Query().Get("fmt") != "json3" {
				t.Errorf("expected fmt=json3, got %q", r.URL.Query().Get("fmt"))
			}
			if r.URL.Query().Get("lang") != "en" {
				t.Errorf("expected preferred en track, got %q", r.URL.Query().Get("lang"))
			}
			fmt.Fprint(w, `{"events": [
				{"tStartMs": 0, "dDurationMs": 1000, "segs": [{"utf8": "Hello"}]},
				{"tStartMs": 500, "dDurationMs": 0, "segs": [{"utf8": "\n"}]},
				{"tStartMs": 1000, "dDurationMs": 1000, "segs": [{"utf8": "wor"}, {"utf8": "ld"}]}
			]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	transcript, err := client.GetTranscript(context.Background(), "dQw4w9WgXcQ", []string{"en", "fr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transcript) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(transcript))
	}
	if transcript[0].Text != "Hello" || transcript[0].Start != 0 || transcript[0].Duration != 1 {
		t.Errorf("unexpected first segment: %+v", transcript[0])
	}
	if transcript[1].Text != "world" || transcript[1].Start != 1 {
		t.Errorf("unexpected second segment: %+v", transcript[1])
	}
}

func TestGetTranscriptNoTrackForLanguages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"playabilityStatus": {"status": "OK"},
			"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
				{"baseUrl": "http://unused", "languageCode": "de"}
			]}}
		}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetTranscript(context.Background(), "dQw4w9WgXcQ", []string{"en"})
	if err == nil || !strings.Contains(err.Error(), "no caption track for languages") {
		t.Errorf("expected language mismatch error, got %v", err)
	}
}

func TestGetTranscriptCaptionsDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playabilityStatus": {"status": "OK"}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetTranscript(context.Background(), "dQw4w9WgXcQ", []string{"en"})
	if err == nil || !strings.Contains(err.Error(), "no caption tracks available") {
		t.Errorf("expected no-tracks error, got %v", err)
	}
}

func TestGetTranscriptNotPlayable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"playabilityStatus": {"status": "LOGIN_REQUIRED", "reason": "Sign in to confirm your age"}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetTranscript(context.Background(), "dQw4w9WgXcQ", []string{"en"})
	if err == nil || !strings.Contains(err.Error(), "not playable") {
		t.Errorf("expected playability error, got %v", err)
	}
}

func TestSelectTrackPreferenceOrder(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1", LanguageCode: "de"},
		{BaseURL: "u2", LanguageCode: "en"},
		{BaseURL: "u3", LanguageCode: "fr"},
	}

	track, err := selectTrack(tracks, []string{"fr", "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track.LanguageCode != "fr" {
		t.Errorf("expected fr track, got %s", track.LanguageCode)
	}

	track, err = selectTrack(tracks, []string{"ES", "EN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track.LanguageCode != "en" {
		t.Errorf("expected case-insensitive en match, got %s", track.LanguageCode)
	}
}
