package llm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abhisek/tutor/internal/store"
)

// NewProvider creates a Provider from configuration.
// The result is wrapped as caller → retry → timeout → logging → base, so
// every attempt is bounded and audited on its own.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *log.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = newDemoMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	bounded := WithTimeout(logged, cfg.Timeout)
	retried := WithRetry(bounded, cfg.Retry)

	return retried, nil
}

// newDemoMockProvider returns a mock that answers every prompt with the same
// short explanation, so the CLI can run without network access.
func newDemoMockProvider() *MockProvider {
	m := NewMockProvider()
	m.SetFallback(MockResponse{
		Text: "This is an offline mock reply.\n\n" +
			"Question 1: What is the main idea of this concept?\n" +
			"Question 2: How would you apply it to a real-world example?",
	})
	return m
}
