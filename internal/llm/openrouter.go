package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openrouterModels maps friendly names to OpenRouter model slugs. Any other
// "vendor/model" slug is sent unchanged.
var openrouterModels = map[string]string{
	"gpt-4o-mini":  "openai/gpt-4o-mini",
	"claude-haiku": "anthropic/claude-haiku-4.5",
	"gemini-flash": "google/gemini-2.0-flash-001",
}

// NewOpenRouterProvider returns an OpenAIProvider pointed at OpenRouter's
// OpenAI-compatible endpoint. Errors it reports are labeled "openrouter".
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	p.model = resolveModel(cfg.Model, openrouterModels)
	p.name = "openrouter"
	return p, nil
}
