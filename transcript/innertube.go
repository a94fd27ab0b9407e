package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkarlov/yt-summary/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultInnertubeURL = "https://www.youtube.com"
	playerEndpoint      = "/youtubei/v1/player"

	// The ANDROID client returns caption tracks without requiring a signature.
	androidClientName    = "ANDROID"
	androidClientVersion = "20.10.38"
	androidSDKVersion    = 30
)

// InnertubeClient fetches caption tracks through YouTube's innertube player
// endpoint. It is the concrete CaptionClient used outside of tests.
type InnertubeClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
	baseURL    string
}

func NewInnertubeClient(timeout time.Duration) *InnertubeClient {
	return &InnertubeClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		logger:     logrus.StandardLogger(),
		baseURL:    defaultInnertubeURL,
	}
}

type playerRequest struct {
	Context struct {
		Client struct {
			ClientName        string `json:"clientName"`
			ClientVersion     string `json:"clientVersion"`
			AndroidSDKVersion int    `json:"androidSdkVersion"`
		} `json:"client"`
	} `json:"context"`
	VideoID string `json:"videoId"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (c *InnertubeClient) GetTranscript(ctx context.Context, videoID string, languages []string) (models.Transcript, error) {
	tracks, err := c.listCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, err := selectTrack(tracks, languages)
	if err != nil {
		return nil, err
	}

	return c.fetchTrack(ctx, track.BaseURL)
}

func (c *InnertubeClient) listCaptionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	var reqBody playerRequest
	reqBody.Context.Client.ClientName = androidClientName
	reqBody.Context.Client.ClientVersion = androidClientVersion
	reqBody.Context.Client.AndroidSDKVersion = androidSDKVersion
	reqBody.VideoID = videoID

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+playerEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("innertube player request failed: http %d: %s", resp.StatusCode, string(b))
	}

	var player playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		return nil, fmt.Errorf("decoding player response: %w", err)
	}

	if status := player.PlayabilityStatus.Status; status != "" && status != "OK" {
		return nil, fmt.Errorf("video not playable: %s (%s)", status, player.PlayabilityStatus.Reason)
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks available (captions may be disabled)")
	}

	return tracks, nil
}

// selectTrack returns the first track matching the language preference order.
func selectTrack(tracks []captionTrack, languages []string) (captionTrack, error) {
	for _, lang := range languages {
		for _, track := range tracks {
			if strings.EqualFold(track.LanguageCode, lang) {
				return track, nil
			}
		}
	}
	return captionTrack{}, fmt.Errorf("no caption track for languages %v", languages)
}

func (c *InnertubeClient) fetchTrack(ctx context.Context, trackURL string) (models.Transcript, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL+"&fmt=json3", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("timedtext request failed: http %d: %s", resp.StatusCode, string(b))
	}

	var timedText timedTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&timedText); err != nil {
		return nil, fmt.Errorf("decoding timedtext response: %w", err)
	}

	var transcript models.Transcript
	for _, event := range timedText.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		transcript = append(transcript, models.Segment{
			Text:     text,
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
		})
	}

	c.logger.WithField("segments", len(transcript)).Debug("Fetched caption track")

	return transcript, nil
}
