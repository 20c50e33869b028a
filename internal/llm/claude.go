package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/stellarlinkco/llm-arena/internal/chat"
)

// ClaudeProvider talks to the Anthropic messages API directly, bypassing
// OpenRouter for model ids registered under the "anthropic" prefix.
type ClaudeProvider struct {
	client anthropic.Client
	opts   Options
}

func NewClaudeProvider(apiKey, baseURL string, opts Options) *ClaudeProvider {
	reqOpts := make([]option.RequestOption, 0, 2)
	if v := strings.TrimSpace(apiKey); v != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(v))
	}
	if v := strings.TrimSpace(baseURL); v != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(strings.TrimRight(v, "/")))
	}
	return &ClaudeProvider{
		client: anthropic.NewClient(reqOpts...),
		opts:   opts.withDefaults(),
	}
}

func (p *ClaudeProvider) Name() string {
	return "anthropic"
}

func (p *ClaudeProvider) Complete(ctx context.Context, model string, msgs []chat.Message) (string, error) {
	if p == nil {
		return "", errors.New("llm: anthropic: nil provider")
	}
	if ctx == nil {
		return "", errors.New("llm: anthropic: nil context")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		return "", errors.New("llm: anthropic: empty model")
	}
	if len(msgs) == 0 {
		return "", errors.New("llm: anthropic: no messages")
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(p.opts.MaxTokens),
		Temperature: param.NewOpt(p.opts.Temperature),
	}

	// The messages API takes system prompts out of band.
	for _, m := range msgs {
		switch m.Role {
		case chat.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{
				Text: m.Content,
				Type: "text",
			})
		case chat.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(m.Content)},
			})
		default:
			params.Messages = append(params.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(m.Content)},
			})
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llm: anthropic: %w", err)
	}
	if msg == nil {
		return "", errors.New("llm: anthropic: nil response")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String(), nil
}
