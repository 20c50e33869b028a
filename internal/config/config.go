package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

const (
	// Zero temperature breaks some providers behind OpenRouter, so the
	// default is merely very low.
	DefaultTemperature = 0.001
	DefaultMaxTokens   = 10
	DefaultMaxWorkers  = 5
)

type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Runner  RunnerConfig  `yaml:"runner"`
	Storage StorageConfig `yaml:"storage"`
}

type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Temperature     float64                   `yaml:"temperature,omitempty"`
	MaxTokens       int                       `yaml:"max_tokens,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type RunnerConfig struct {
	MaxWorkers int `yaml:"max_workers,omitempty"`
}

type StorageConfig struct {
	Type string `yaml:"type,omitempty"` // "sqlite" or "memory"
	Path string `yaml:"path,omitempty"` // SQLite file path
}

// Load reads the YAML config at path and applies environment overrides.
// A missing file is not an error when the path is the default; credentials
// are usually supplied through the environment alone.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	usingDefault := path == DefaultPath

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	case os.IsNotExist(err) && usingDefault:
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.LLM.DefaultProvider) == "" {
		cfg.LLM.DefaultProvider = "openrouter"
	}
	if cfg.LLM.Temperature <= 0 {
		cfg.LLM.Temperature = DefaultTemperature
	}
	if cfg.LLM.MaxTokens <= 0 {
		cfg.LLM.MaxTokens = DefaultMaxTokens
	}
	if cfg.Runner.MaxWorkers <= 0 {
		cfg.Runner.MaxWorkers = DefaultMaxWorkers
	}

	if v := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openrouter"]
		p.APIKey = v
		cfg.LLM.Providers["openrouter"] = p
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openai"]
		p.APIKey = v
		cfg.LLM.Providers["openai"] = p
	}
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.LLM.Providers["anthropic"]
		p.APIKey = v
		cfg.LLM.Providers["anthropic"] = p
	}
	if v := strings.TrimSpace(os.Getenv("LLM_ARENA_DB")); v != "" {
		cfg.Storage.Path = v
	}

	return &cfg, nil
}
