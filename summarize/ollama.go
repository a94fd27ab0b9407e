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
	defaultOllamaHost  = "http://localhost:11434"
	defaultOllamaModel = "llama3.2"
)

// Ollama generates summaries with a local Ollama model.
type Ollama struct {
	host       string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewOllama(opts Options) *Ollama {
	host := opts.Host
	if host == "" {
		host = config.GetEnv("OLLAMA_HOST", defaultOllamaHost)
	}
	model := opts.Model
	if model == "" {
		model = config.GetEnv("OLLAMA_MODEL", defaultOllamaModel)
	}

	return &Ollama{
		host:       strings.TrimSuffix(host, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: config.Load().HTTPTimeout},
		logger:     logrus.StandardLogger(),
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (o *Ollama) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	const op = "summarize.Ollama.Summarize"

	payload, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: buildPrompt(text, maxLength),
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperature,
			NumPredict:  generationCap,
		},
	})
	if err != nil {
		return "", errors.BackendFailure(op, err, "encoding generation request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", errors.BackendFailure(op, err, "building generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	o.logger.WithField("model", o.model).Debug("Calling Ollama")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", errors.BackendFailure(op, err, "ollama request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", errors.BackendFailure(op, fmt.Errorf("http %d: %s", resp.StatusCode, string(b)), "ollama request failed")
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.BackendFailure(op, err, "decoding ollama response")
	}

	return strings.TrimSpace(out.Response), nil
}
