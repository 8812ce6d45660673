package llm

import (
	"context"
	"fmt"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Generator is satisfied by every provider client in this package.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the client for provider. An empty model selects the provider default.
func New(ctx context.Context, provider, apiKey, model string) (Generator, error) {
	switch provider {
	case ProviderGemini, "":
		client, err := NewGeminiClient(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		client, err := NewOpenAIClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: gemini, openai)", provider)
	}
}
