package llm

import (
	"strings"
	"testing"

	"github.com/stellarlinkco/llm-arena/internal/config"
)

func TestNewClientFromConfig_NoCredentials(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.LLM.Providers = map[string]config.ProviderConfig{
		"openrouter": {APIKey: ""},
	}

	_, err := NewClientFromConfig(cfg)
	if err == nil {
		t.Fatalf("NewClientFromConfig: expected error without credentials")
	}
	if !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Fatalf("error should name the env vars to set: got %v", err)
	}
}

func TestNewClientFromConfig_RegistersConfiguredProviders(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = "openrouter"
	cfg.LLM.Providers = map[string]config.ProviderConfig{
		"openrouter": {APIKey: "k1"},
		"anthropic":  {APIKey: "k2"},
	}

	c, err := NewClientFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewClientFromConfig: %v", err)
	}
	if c == nil {
		t.Fatalf("NewClientFromConfig: nil client")
	}
}

func TestNewClientFromConfig_DefaultFallsBack(t *testing.T) {
	t.Parallel()

	// Default names a provider with no credential; the client must fall
	// back to the one that is configured instead of failing.
	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = "openrouter"
	cfg.LLM.Providers = map[string]config.ProviderConfig{
		"anthropic": {APIKey: "k"},
	}

	if _, err := NewClientFromConfig(cfg); err != nil {
		t.Fatalf("NewClientFromConfig: %v", err)
	}
}

func TestNewClientFromConfig_UnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.LLM.Providers = map[string]config.ProviderConfig{
		"mystery": {APIKey: "k"},
	}

	if _, err := NewClientFromConfig(cfg); err == nil {
		t.Fatalf("NewClientFromConfig: expected error for unknown provider name")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	t.Parallel()

	got := Options{}.withDefaults()
	if got.Temperature != 0.001 || got.MaxTokens != 10 {
		t.Fatalf("withDefaults: got %+v", got)
	}

	got = Options{Temperature: 0.7, MaxTokens: 100}.withDefaults()
	if got.Temperature != 0.7 || got.MaxTokens != 100 {
		t.Fatalf("withDefaults should keep explicit values: got %+v", got)
	}
}
