package eval

import (
	"context"
	"errors"
	"strings"

	"github.com/stellarlinkco/llm-arena/internal/chat"
	"github.com/stellarlinkco/llm-arena/internal/llm"
)

// Agent produces the next message for its role given the transcript so far.
// Done reports whether the agent considers the task finished after its most
// recent turn.
type Agent interface {
	Role() chat.Role
	Respond(ctx context.Context, t *chat.Transcript) (string, error)
	Done() bool
}

// Assistant is the model-backed agent. It prepends its fixed preamble
// (system prompt or few-shot seed messages) to the transcript and asks the
// completion backend for the next message. It never mutates the transcript;
// the conversation loop owns appends.
//
// The base Assistant is done after a single reply. Game tasks embed it and
// override Done with their terminal condition.
type Assistant struct {
	Client    llm.Completer
	ModelName string
	Preamble  []chat.Message
}

func (a *Assistant) Role() chat.Role {
	return chat.RoleAssistant
}

func (a *Assistant) Respond(ctx context.Context, t *chat.Transcript) (string, error) {
	if a == nil || a.Client == nil {
		return "", errors.New("eval: assistant: nil client")
	}
	if strings.TrimSpace(a.ModelName) == "" {
		return "", errors.New("eval: assistant: empty model")
	}

	msgs := make([]chat.Message, 0, len(a.Preamble)+t.Len())
	msgs = append(msgs, a.Preamble...)
	msgs = append(msgs, t.Messages()...)
	return a.Client.Completion(ctx, a.ModelName, msgs)
}

func (a *Assistant) Done() bool {
	return true
}

// SystemPreamble builds a single-message preamble from a system prompt.
func SystemPreamble(prompt string) []chat.Message {
	return []chat.Message{{Role: chat.RoleSystem, Content: prompt}}
}
