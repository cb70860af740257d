package llm

import (
	"os"
	"testing"
	"time"
)

func clearKeys(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		EnvPrefix + "_PROVIDER", EnvPrefix + "_TIMEOUT", EnvPrefix + "_ANTHROPIC_MODEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestConfigFromEnv_Discovery(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, ok, err := ConfigFromEnv()
	if err != nil || !ok {
		t.Fatalf("ok = %v, err = %v", ok, err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("cfg = %+v; openai key should win over anthropic", cfg)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("model default lost: %q", cfg.OpenAI.Model)
	}
}

func TestConfigFromEnv_Explicit(t *testing.T) {
	clearKeys(t)
	t.Setenv(EnvPrefix+"_PROVIDER", "anthropic")
	t.Setenv(EnvPrefix+"_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv(EnvPrefix+"_ANTHROPIC_MODEL", "claude-sonnet")
	t.Setenv(EnvPrefix+"_TIMEOUT", "5s")

	cfg, ok, err := ConfigFromEnv()
	if err != nil || !ok {
		t.Fatalf("ok = %v, err = %v", ok, err)
	}
	if cfg.Selected().Model != "claude-sonnet" || cfg.Timeout != 5*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.OpenRouter.BaseURL != defaultOpenRouterBaseURL {
		t.Fatalf("openrouter base url = %q", cfg.OpenRouter.BaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConfigFromEnv_NothingConfigured(t *testing.T) {
	clearKeys(t)
	if _, ok, err := ConfigFromEnv(); ok || err != nil {
		t.Fatalf("ok = %v, err = %v", ok, err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: ModelConfig{APIKey: "k"}}, false},
		{"gemini key on wrong provider", Config{Provider: ProviderOpenAI, Gemini: ModelConfig{APIKey: "k"}}, true},
		{"mock", Config{Provider: ProviderMock}, false},
		{"unknown", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(t.Context(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}

	if _, err := NewProvider(t.Context(), Config{Provider: ProviderOpenAI}, nil, nil); err == nil {
		t.Fatal("expected validation error")
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(t.Context(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Fatalf("provider = %T, want *TimeoutProvider", p)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}
}
