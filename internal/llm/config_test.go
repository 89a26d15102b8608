package llm

import (
	"errors"
	"testing"
	"time"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NURSEBOT_LLM_PROVIDER", "OPENROUTER_API_KEY", "OPENAI_API_KEY",
		"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "NURSEBOT_LLM_TIMEOUT",
		"NURSEBOT_OPENROUTER_MODEL", "NURSEBOT_OPENROUTER_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "openrouter" {
		t.Errorf("expected openrouter default, got %q", cfg.Provider)
	}
	if cfg.OpenRouter.Model != "openrouter/zephyr-7b-beta" {
		t.Errorf("unexpected default model: %q", cfg.OpenRouter.Model)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("unexpected default timeout: %v", cfg.Timeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("NURSEBOT_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NURSEBOT_LLM_TIMEOUT", "90s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("expected openai, got %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("expected key from env, got %q", cfg.OpenAI.APIKey)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("expected 90s timeout, got %v", cfg.Timeout)
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("ANTHROPIC_API_KEY", "an-key")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "openrouter" {
		t.Errorf("openrouter should win priority, got %q", cfg.Provider)
	}
}

func TestDiscoverConfig_NothingSet(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Error("expected discovery to fail with no keys set")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	var notConfigured *ErrNotConfigured
	if !errors.As(err, &notConfigured) {
		t.Fatalf("expected ErrNotConfigured for keyless config, got %v", err)
	}

	cfg.OpenRouter.APIKey = "or-key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cfg.Provider = "unknown"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider needs no key, got %v", err)
	}
}
