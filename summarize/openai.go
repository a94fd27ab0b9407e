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
	defaultOpenAIHost  = "https://api.openai.com"
	defaultOpenAIModel = "gpt-3.5-turbo"

	openAISystemMessage = "You are a helpful assistant that summarizes transcripts concisely."
	openAIUserPreamble  = "Please summarize the following transcript:"
)

// OpenAI generates summaries through the chat completions API.
type OpenAI struct {
	host       string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewOpenAI(opts Options) (*OpenAI, error) {
	const op = "summarize.NewOpenAI"

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = config.GetEnv("OPENAI_API_KEY", "")
	}
	if apiKey == "" {
		return nil, errors.MissingCredential(op, nil,
			"OpenAI API key is required. Set OPENAI_API_KEY or pass it explicitly")
	}

	host := opts.Host
	if host == "" {
		host = defaultOpenAIHost
	}
	model := opts.Model
	if model == "" {
		model = config.GetEnv("OPENAI_MODEL", defaultOpenAIModel)
	}

	return &OpenAI{
		host:       strings.TrimSuffix(host, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.Load().HTTPTimeout},
		logger:     logrus.StandardLogger(),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	const op = "summarize.OpenAI.Summarize"

	payload, err := json.Marshal(chatCompletionRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: openAISystemMessage},
			{Role: "user", Content: buildUserMessage(openAIUserPreamble, text, maxLength)},
		},
		Temperature: temperature,
		MaxTokens:   generationCap,
	})
	if err != nil {
		return "", errors.BackendFailure(op, err, "encoding completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.BackendFailure(op, err, "building completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	o.logger.WithField("model", o.model).Debug("Calling OpenAI")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", errors.BackendFailure(op, err, "openai request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", errors.BackendFailure(op, fmt.Errorf("http %d: %s", resp.StatusCode, string(b)), "openai request failed")
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.BackendFailure(op, err, "decoding openai response")
	}
	if len(out.Choices) == 0 {
		return "", errors.BackendFailure(op, nil, "openai returned no choices")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
