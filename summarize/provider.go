package summarize

import (
	"context"
	"strings"

	"github.com/dkarlov/yt-summary/config"
	"github.com/dkarlov/yt-summary/errors"
)

// Provider selector names, the closed set accepted by Get.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Fixed sampling parameters shared by every backend.
const (
	temperature   = 0.3
	generationCap = 1000
)

// Provider is the single capability every backend variant implements.
// maxLength is a word-count ceiling for the summary; 0 means unconstrained.
type Provider interface {
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
}

// Options carries per-call overrides for a provider constructor. Zero values
// fall through to the provider's environment variable, then its default.
type Options struct {
	// Model is the backend model name.
	Model string
	// APIKey is the credential for hosted backends.
	APIKey string
	// Host overrides the backend base URL (Ollama host or hosted API root).
	Host string
}

// Get resolves a provider by name. An empty name falls back to the
// SUMMARY_PROVIDER environment variable, then to the Ollama variant.
// Comparison is case-insensitive.
func Get(name string, opts Options) (Provider, error) {
	const op = "summarize.Get"

	if name == "" {
		name = config.GetEnv("SUMMARY_PROVIDER", ProviderOllama)
	}

	switch strings.ToLower(name) {
	case ProviderOllama:
		return NewOllama(opts), nil
	case ProviderOpenAI:
		return NewOpenAI(opts)
	case ProviderAnthropic:
		return NewAnthropic(opts)
	case ProviderGemini:
		return NewGemini(opts)
	default:
		return nil, errors.UnknownProvider(op, name)
	}
}

// SummarizeText resolves the named provider and invokes it. Providers are
// not cached; each call constructs a fresh backend client.
func SummarizeText(ctx context.Context, text, providerName string, maxLength int, opts Options) (string, error) {
	provider, err := Get(providerName, opts)
	if err != nil {
		return "", err
	}
	return provider.Summarize(ctx, text, maxLength)
}
