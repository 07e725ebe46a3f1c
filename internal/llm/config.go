package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig tunes the exponential backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig picks small, cheap models: rule classification needs
// little reasoning.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envSetting binds one GRAMMATCH_* variable to a Config field.
type envSetting struct {
	name string
	dst  func(*Config) *string
}

var envSettings = []envSetting{
	{"GRAMMATCH_LLM_PROVIDER", func(c *Config) *string { return &c.Provider }},
	{"GRAMMATCH_ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"GRAMMATCH_ANTHROPIC_MODEL", func(c *Config) *string { return &c.Anthropic.Model }},
	{"GRAMMATCH_OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"GRAMMATCH_OPENAI_MODEL", func(c *Config) *string { return &c.OpenAI.Model }},
	{"GRAMMATCH_OPENAI_BASE_URL", func(c *Config) *string { return &c.OpenAI.BaseURL }},
	{"GRAMMATCH_GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"GRAMMATCH_GEMINI_MODEL", func(c *Config) *string { return &c.Gemini.Model }},
	{"GRAMMATCH_OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
	{"GRAMMATCH_OPENROUTER_MODEL", func(c *Config) *string { return &c.OpenRouter.Model }},
}

// ConfigFromEnv overlays GRAMMATCH_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, s := range envSettings {
		if v := os.Getenv(s.name); v != "" {
			*s.dst(&cfg) = v
		}
	}
	if d := os.Getenv("GRAMMATCH_LLM_TIMEOUT"); d != "" {
		if t, err := time.ParseDuration(d); err == nil {
			cfg.Timeout = t
		}
	}
	return cfg
}

// DiscoverConfig falls back to the vendors' own key variables, checked in
// order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve returns ConfigFromEnv when it validates, and otherwise the
// discovered vendor configuration.
func Resolve() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if found, ok := DiscoverConfig(); ok {
		return found, nil
	}
	return Config{}, err
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "GRAMMATCH_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "GRAMMATCH_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "GRAMMATCH_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "GRAMMATCH_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
