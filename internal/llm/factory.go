package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the provider selected by cfg and wraps it as
// caller → retry → usage → provider, so every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, rec Recorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return WithUsage(NewMockProvider(), rec), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithUsage(base, rec), cfg.Retry), nil
}
