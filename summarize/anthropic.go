package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dkarlov/yt-summary/config"
	"github.com/dkarlov/yt-summary/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultAnthropicHost  = "https://api.anthropic.com"
	defaultAnthropicModel = "claude-3-haiku-20240307"
	anthropicVersion      = "2023-06-01"

	anthropicSystemMessage = "Summarize the provided transcript concisely, focusing on key points and insights."
	anthropicUserPreamble  = "Here is the transcript to summarize:"
)

// Anthropic generates summaries through the messages API.
type Anthropic struct {
	host       string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewAnthropic(opts Options) (*Anthropic, error) {
	const op = "summarize.NewAnthropic"

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = config.GetEnv("ANTHROPIC_API_KEY", "")
	}
	if apiKey == "" {
		return nil, errors.MissingCredential(op, nil,
			"Anthropic API key is required. Set ANTHROPIC_API_KEY or pass it explicitly")
	}

	host := opts.Host
	if host == "" {
		host = defaultAnthropicHost
	}
	model := opts.Model
	if model == "" {
		model = config.GetEnv("ANTHROPIC_MODEL", defaultAnthropicModel)
	}

	return &Anthropic{
		host:       strings.TrimSuffix(host, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.Load().HTTPTimeout},
		logger:     logrus.StandardLogger(),
	}, nil
}

type messagesRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (a *Anthropic) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	const op = "summarize.Anthropic.Summarize"

	payload, err := json.Marshal(messagesRequest{
		Model:  a.model,
		System: anthropicSystemMessage,
		Messages: []chatMessage{
			{Role: "user", Content: buildUserMessage(anthropicUserPreamble, text, maxLength)},
		},
		MaxTokens:   generationCap,
		Temperature: temperature,
	})
	if err != nil {
		return "", errors.BackendFailure(op, err, "encoding messages request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.host+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", errors.BackendFailure(op, err, "building messages request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	a.logger.WithField("model", a.model).Debug("Calling Anthropic")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", errors.BackendFailure(op, err, "anthropic request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", errors.BackendFailure(op, fmt.Errorf("http %d: %s", resp.StatusCode, string(b)), "anthropic request failed")
	}

	var out messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.BackendFailure(op, err, "decoding anthropic response")
	}
	if len(out.Content) == 0 {
		return "", errors.BackendFailure(op, nil, "anthropic returned no content blocks")
	}

	return strings.TrimSpace(out.Content[0].Text), nil
}
