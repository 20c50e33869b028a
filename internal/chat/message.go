package chat

import (
	"fmt"
	"strings"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged chat message. Immutable once created.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered message history of one trial. Append-only;
// owned by exactly one eval instance, never shared across trials.
type Transcript struct {
	msgs []Message
}

func (t *Transcript) Append(role Role, content string) {
	if t == nil {
		return
	}
	t.msgs = append(t.msgs, Message{Role: role, Content: content})
}

// Messages returns a copy of the history so callers cannot mutate it.
func (t *Transcript) Messages() []Message {
	if t == nil || len(t.msgs) == 0 {
		return nil
	}
	out := make([]Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

func (t *Transcript) Len() int {
	if t == nil {
		return 0
	}
	return len(t.msgs)
}

// Last returns the most recent message, or false if the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if t == nil || len(t.msgs) == 0 {
		return Message{}, false
	}
	return t.msgs[len(t.msgs)-1], true
}

// String renders the transcript one "role: content" line per message.
func (t *Transcript) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, m := range t.msgs {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
	}
	return sb.String()
}
