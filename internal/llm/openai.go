package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/stellarlinkco/llm-arena/internal/chat"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider speaks the OpenAI chat-completions wire format. With the
// default base URL it talks to OpenRouter, which fronts every model the
// evals care about; pointing it at api.openai.com works the same way.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	opts   Options
}

func NewOpenAIProvider(name, apiKey, baseURL string, opts Options) *OpenAIProvider {
	cfg := openai.DefaultConfig(strings.TrimSpace(apiKey))
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = openRouterBaseURL
	}
	cfg.BaseURL = strings.TrimRight(url, "/")

	name = strings.TrimSpace(name)
	if name == "" {
		name = "openrouter"
	}

	return &OpenAIProvider{
		name:   name,
		client: openai.NewClientWithConfig(cfg),
		opts:   opts.withDefaults(),
	}
}

func (p *OpenAIProvider) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

func (p *OpenAIProvider) Complete(ctx context.Context, model string, msgs []chat.Message) (string, error) {
	if p == nil || p.client == nil {
		return "", errors.New("llm: openai: nil client")
	}
	if ctx == nil {
		return "", errors.New("llm: openai: nil context")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return "", errors.New("llm: openai: empty model")
	}
	if len(msgs) == 0 {
		return "", errors.New("llm: openai: no messages")
	}

	oMsgs := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		oMsgs = append(oMsgs, openai.ChatCompletionMessage{
			Role:    normalizeOpenAIRole(string(m.Role)),
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    oMsgs,
		MaxTokens:   p.opts.MaxTokens,
		Temperature: float32(p.opts.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("llm: %s: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: %s: empty choices", p.name)
	}
	return resp.Choices[0].Message.Content, nil
}

func normalizeOpenAIRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "system":
		return openai.ChatMessageRoleSystem
	case "assistant":
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
