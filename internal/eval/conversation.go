package eval

import (
	"context"
	"errors"

	"github.com/stellarlinkco/llm-arena/internal/chat"
)

const defaultMaxTurns = 10

// Eval is one independently-seeded trial: run the conversation once, score
// it once, discard it.
type Eval interface {
	Name() string
	Model() string
	Run(ctx context.Context) (float64, error)
	Transcript() *chat.Transcript
}

// Conversation drives the alternating turn loop between the opponent (the
// user-variant agent, which always takes the first turn so that providers
// requiring a leading user message are happy) and the assistant. Task evals
// embed it and layer their evaluate step on top of RunTurns.
type Conversation struct {
	EvalName  string
	ModelName string
	Assistant Agent
	Opponent  Agent
	MaxTurns  int

	transcript chat.Transcript
}

func (c *Conversation) Name() string {
	if c == nil {
		return ""
	}
	return c.EvalName
}

func (c *Conversation) Model() string {
	if c == nil {
		return ""
	}
	return c.ModelName
}

func (c *Conversation) Transcript() *chat.Transcript {
	if c == nil {
		return nil
	}
	return &c.transcript
}

// RunTurns alternates agents until one reports done or MaxTurns rounds have
// passed. Each round is one opponent turn followed by one assistant turn, so
// the transcript never exceeds 2*MaxTurns messages.
func (c *Conversation) RunTurns(ctx context.Context) error {
	if c == nil {
		return errors.New("eval: nil conversation")
	}
	if ctx == nil {
		return errors.New("eval: nil context")
	}
	if c.Assistant == nil || c.Opponent == nil {
		return errors.New("eval: conversation missing agents")
	}

	maxTurns := c.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}

	for turn := 0; turn < maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := c.step(ctx, c.Opponent)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		done, err = c.step(ctx, c.Assistant)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

func (c *Conversation) step(ctx context.Context, agent Agent) (bool, error) {
	response, err := agent.Respond(ctx, &c.transcript)
	if err != nil {
		return false, err
	}
	c.transcript.Append(agent.Role(), response)
	return agent.Done(), nil
}
