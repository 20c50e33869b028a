package llm

import (
	"errors"
	"sort"
	"strings"

	"github.com/stellarlinkco/llm-arena/internal/config"
)

// NewClientFromConfig builds the provider registry and routing client.
// It fails hard when no provider has a credential: an eval run without a
// completion backend can only produce a batch of transport errors.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}

	opts := Options{
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	r := NewRegistry()
	for name, pcfg := range cfg.LLM.Providers {
		if strings.TrimSpace(pcfg.APIKey) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case "":
			continue
		case "anthropic", "claude":
			r.Register(NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, opts))
		case "openrouter", "openai":
			r.Register(NewOpenAIProvider(key, pcfg.APIKey, pcfg.BaseURL, opts))
		default:
			return nil, errors.New("llm: unknown provider " + strings.TrimSpace(name))
		}
	}

	if len(r.Names()) == 0 {
		return nil, errors.New("llm: no provider credentials configured: set OPENROUTER_API_KEY (or OPENAI_API_KEY / ANTHROPIC_API_KEY)")
	}

	defaultName := cfg.LLM.DefaultProvider
	if _, ok := r.Get(defaultName); !ok {
		// Fall back to whichever provider is configured.
		names := r.Names()
		sort.Strings(names)
		defaultName = names[0]
	}

	return NewClient(r, defaultName)
}
