package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAIProvider implements TextGenerator with the OpenAI chat completions API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIProvider creates a provider against the public OpenAI endpoint.
func NewOpenAIProvider(apiKey, model string, temperature float32) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	return NewOpenAIProviderWithConfig(openai.DefaultConfig(apiKey), model, temperature), nil
}

// NewOpenAIProviderWithConfig allows a custom base URL or HTTP client.
func NewOpenAIProviderWithConfig(cfg openai.ClientConfig, model string, temperature float32) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
	}
}

func (p *OpenAIProvider) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no content generated", ErrGenerationFailed)
	}
	if resp.Choices[0].FinishReason == openai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: response blocked by content filter", ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

// Close is a no-op; the OpenAI client holds no resources.
func (p *OpenAIProvider) Close() error { return nil }
