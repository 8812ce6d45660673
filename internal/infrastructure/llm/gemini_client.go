package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient talks to Google's Generative Language API through langchaingo.
type GeminiClient struct {
	model llms.Model
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return NewGeminiClientWithModel(model), nil
}

// NewGeminiClientWithModel wraps any langchaingo model.
func NewGeminiClientWithModel(model llms.Model) *GeminiClient {
	return &GeminiClient{model: model}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	text, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("empty LLM response")
	}
	return cleanResponse(text), nil
}
