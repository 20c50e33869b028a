package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stellarlinkco/llm-arena/internal/chat"
)

// Completer is the narrow contract the eval layer depends on.
type Completer interface {
	Completion(ctx context.Context, model string, msgs []chat.Message) (string, error)
}

// Client routes model identifiers to providers. Identifiers keep the
// OpenRouter form "vendor/model"; when the vendor prefix names a registered
// provider the call goes there directly with the prefix stripped, otherwise
// the whole identifier is passed to the default provider.
type Client struct {
	registry    *Registry
	defaultName string
}

func NewClient(registry *Registry, defaultProvider string) (*Client, error) {
	if registry == nil {
		return nil, errors.New("llm: nil registry")
	}
	name := strings.ToLower(strings.TrimSpace(defaultProvider))
	if name == "" {
		name = "openrouter"
	}
	if _, ok := registry.Get(name); !ok {
		available := registry.Names()
		sort.Strings(available)
		return nil, fmt.Errorf("llm: default provider %q not configured (available: %s)",
			name, strings.Join(available, ", "))
	}
	return &Client{registry: registry, defaultName: name}, nil
}

func (c *Client) Completion(ctx context.Context, model string, msgs []chat.Message) (string, error) {
	if c == nil || c.registry == nil {
		return "", errors.New("llm: nil client")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return "", errors.New("llm: empty model")
	}

	if prefix, rest, ok := strings.Cut(model, "/"); ok {
		if p, found := c.registry.Get(prefix); found {
			return p.Complete(ctx, rest, msgs)
		}
	}

	p, ok := c.registry.Get(c.defaultName)
	if !ok {
		return "", fmt.Errorf("llm: default provider %q not configured", c.defaultName)
	}
	return p.Complete(ctx, model, msgs)
}

// BatchCompletion issues one completion per message sequence. Individual
// failures are masked as empty strings so one bad call cannot sink the rest.
func (c *Client) BatchCompletion(ctx context.Context, model string, batches [][]chat.Message) []string {
	out := make([]string, len(batches))
	for i, msgs := range batches {
		resp, err := c.Completion(ctx, model, msgs)
		if err != nil {
			continue
		}
		out[i] = resp
	}
	return out
}
