package llm

import (
	"context"

	"github.com/stellarlinkco/llm-arena/internal/chat"
)

// Provider is a chat-completion backend. Complete sends the full message
// sequence and returns the raw response text.
type Provider interface {
	Name() string
	Complete(ctx context.Context, model string, msgs []chat.Message) (string, error)
}

// Options bound sampling for every completion issued through a provider.
type Options struct {
	Temperature float64
	MaxTokens   int
}

func (o Options) withDefaults() Options {
	if o.Temperature <= 0 {
		o.Temperature = 0.001
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = 10
	}
	return o
}
