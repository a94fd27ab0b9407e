package summarize

import (
	"context"
	"strings"

	"github.com/dkarlov/yt-summary/config"
	"github.com/dkarlov/yt-summary/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini generates summaries through the Gemini API via the genai SDK.
type Gemini struct {
	model  string
	apiKey string
	logger *logrus.Logger
}

func NewGemini(opts Options) (*Gemini, error) {
	const op = "summarize.NewGemini"

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = config.GetEnv("GEMINI_API_KEY", "")
	}
	if apiKey == "" {
		return nil, errors.MissingCredential(op, nil,
			"Gemini API key is required. Set GEMINI_API_KEY or pass it explicitly")
	}

	model := opts.Model
	if model == "" {
		model = config.GetEnv("GEMINI_MODEL", defaultGeminiModel)
	}

	return &Gemini{
		model:  model,
		apiKey: apiKey,
		logger: logrus.StandardLogger(),
	}, nil
}

func (g *Gemini) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	const op = "summarize.Gemini.Summarize"

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", errors.BackendFailure(op, err, "creating gemini client")
	}

	g.logger.WithField("model", g.model).Debug("Calling Gemini")

	result, err := client.Models.GenerateContent(ctx, g.model,
		genai.Text(buildPrompt(text, maxLength)),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](temperature),
			MaxOutputTokens: generationCap,
		},
	)
	if err != nil {
		return "", errors.BackendFailure(op, err, "gemini generation failed")
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.BackendFailure(op, nil, "gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return strings.TrimSpace(sb.String()), nil
}
