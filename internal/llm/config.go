package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the environment prefix for LLM settings, e.g.
// LINGUOQUEST_LLM_PROVIDER or LINGUOQUEST_LLM_GEMINI_API_KEY.
const EnvPrefix = "LINGUOQUEST_LLM"

// Provider names.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds LLM provider configuration.
type Config struct {
	// Provider is one of gemini, anthropic, openai, openrouter, mock.
	// Empty means discover from the standard API key variables.
	Provider string `envconfig:"PROVIDER"`

	Gemini     ModelConfig `envconfig:"GEMINI"`
	Anthropic  ModelConfig `envconfig:"ANTHROPIC"`
	OpenAI     ModelConfig `envconfig:"OPENAI"`
	OpenRouter ModelConfig `envconfig:"OPENROUTER"`
	Retry      RetryConfig `envconfig:"RETRY"`

	// Timeout bounds one generation including retries.
	Timeout time.Duration `envconfig:"TIMEOUT" default:"45s"`
}

// ModelConfig selects credentials and model for one provider.
type ModelConfig struct {
	APIKey  string `envconfig:"API_KEY"`
	Model   string `envconfig:"MODEL"`
	BaseURL string `envconfig:"BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	InitialWait time.Duration `envconfig:"INITIAL_WAIT" default:"1s"`
	MaxWait     time.Duration `envconfig:"MAX_WAIT" default:"10s"`
	Multiplier  float64       `envconfig:"MULTIPLIER" default:"2"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Gemini:     ModelConfig{Model: "gemini-flash"},
		Anthropic:  ModelConfig{Model: "claude-haiku"},
		OpenAI:     ModelConfig{Model: "gpt-4o-mini"},
		OpenRouter: ModelConfig{Model: "google/gemini-2.5-flash", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// ConfigFromEnv reads LINGUOQUEST_LLM_* variables over the defaults and,
// when no provider is named, discovers one from the standard API key
// variables. ok is false when no provider could be selected.
func ConfigFromEnv() (cfg Config, ok bool, err error) {
	cfg = DefaultConfig()
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, false, fmt.Errorf("llm config: %w", err)
	}
	cfg.fillModelDefaults()

	if cfg.Provider != "" {
		return cfg, true, nil
	}
	return cfg, cfg.discover(), nil
}

// DiscoverConfig probes standard API key variables in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter).
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	if !cfg.discover() {
		return Config{}, false
	}
	return cfg, true
}

func (c *Config) discover() bool {
	probes := []struct {
		env      string
		provider string
		target   *ModelConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			if p.target.APIKey == "" {
				p.target.APIKey = k
			}
			return true
		}
	}
	return false
}

// envconfig leaves fields empty when the variable is set to "".
func (c *Config) fillModelDefaults() {
	def := DefaultConfig()
	for _, pair := range []struct{ dst, src *ModelConfig }{
		{&c.Gemini, &def.Gemini},
		{&c.Anthropic, &def.Anthropic},
		{&c.OpenAI, &def.OpenAI},
		{&c.OpenRouter, &def.OpenRouter},
	} {
		if pair.dst.Model == "" {
			pair.dst.Model = pair.src.Model
		}
		if pair.dst.BaseURL == "" {
			pair.dst.BaseURL = pair.src.BaseURL
		}
	}
}

// Selected returns the model settings of the chosen provider.
func (c Config) Selected() ModelConfig {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderOpenRouter:
		return c.OpenRouter
	}
	return ModelConfig{}
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter:
		if c.Selected().APIKey == "" {
			return fmt.Errorf("%s_%s_API_KEY is required for the %s provider",
				EnvPrefix, envName(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	case ProviderAnthropic:
		return "ANTHROPIC"
	default:
		return "GEMINI"
	}
}
