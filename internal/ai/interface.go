package ai

import (
	"context"
	"errors"
)

var (
	// ErrMissingCredential means the provider API key is not configured.
	ErrMissingCredential = errors.New("ai: missing API key")
	// ErrGenerationFailed wraps every provider, network, or safety failure.
	ErrGenerationFailed = errors.New("generation failed")
)

// TextGenerator defines the contract for a completion model.
// Implementations make exactly one provider call per GenerateContent and never retry.
type TextGenerator interface {
	// GenerateContent returns the model's raw text for prompt. The text is not
	// guaranteed to be JSON or to follow the requested schema.
	GenerateContent(ctx context.Context, prompt string) (string, error)

	Close() error
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Settings selects and configures a provider.
type Settings struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
}

// New builds the TextGenerator named by s.Provider. There is no fallback between providers.
func New(ctx context.Context, s Settings) (TextGenerator, error) {
	switch s.Provider {
	case ProviderGemini, "":
		p, err := NewGeminiProvider(ctx, s.APIKey, s.Model, s.Temperature)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderOpenAI:
		p, err := NewOpenAIProvider(s.APIKey, s.Model, s.Temperature)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, errors.New("ai: unsupported provider " + s.Provider + ", use gemini or openai")
	}
}
