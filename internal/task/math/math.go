// Package math implements the arithmetic evaluation: a seeded poser
// generates a random two-operand problem, the model answers with a bare
// number, and the grade is 1.0 for an exact match with the rounded ground
// truth and 0.0 otherwise (including unparseable answers).
package math

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/stellarlinkco/llm-arena/internal/chat"
	"github.com/stellarlinkco/llm-arena/internal/eval"
	"github.com/stellarlinkco/llm-arena/internal/llm"
)

const systemPrompt = `Answer the math problem with the numeric result only. Round to two decimal places if necessary. Do not add newlines, commas, or any other characters.

Examples:

User: 1 + 1
Assistant: 2
----
User: 234/2
Assistant: 117
----
User: 10/2- 5
Assistant: 0
----
User: 823 * 377
Assistant: 310271
----
User: 1/3
Assistant: 0.33`

const (
	defaultLow  = 100
	defaultHigh = 1000
)

var operators = []string{"+", "-", "*", "/"}

// Problem is one generated arithmetic question.
type Problem struct {
	X  int64
	Y  int64
	Op string
}

func (p Problem) String() string {
	return fmt.Sprintf("%d %s %d", p.X, p.Op, p.Y)
}

// Answer is the ground truth, rounded to two decimal places to match the
// system prompt's instructions.
func (p Problem) Answer() (float64, error) {
	x, y := float64(p.X), float64(p.Y)
	var v float64
	switch p.Op {
	case "+":
		v = x + y
	case "-":
		v = x - y
	case "*":
		v = x * y
	case "/":
		if p.Y == 0 {
			return 0, errors.New("math: division by zero")
		}
		v = x / y
	default:
		return 0, fmt.Errorf("math: unknown operator %q", p.Op)
	}
	return gomath.Round(v*100) / 100, nil
}

// NewProblem draws operands in [low, high) and an operator from the rng.
func NewProblem(rng *rand.Rand, low, high int64) Problem {
	span := high - low
	if span <= 0 {
		span = 1
	}
	return Problem{
		X:  low + rng.Int64N(span),
		Y:  low + rng.Int64N(span),
		Op: operators[rng.IntN(len(operators))],
	}
}

// poser is the user-variant agent: it asks the problem and waits.
type poser struct {
	problem Problem
}

func (p *poser) Role() chat.Role { return chat.RoleUser }

func (p *poser) Respond(ctx context.Context, t *chat.Transcript) (string, error) {
	return p.problem.String(), nil
}

func (p *poser) Done() bool { return false }

// Eval is one arithmetic trial.
type Eval struct {
	eval.Conversation
	problem Problem
}

func New(client llm.Completer, model string, seed int64, low, high int64) *Eval {
	rng := eval.NewRand(seed)
	problem := NewProblem(rng, low, high)

	e := &Eval{problem: problem}
	e.EvalName = "math"
	e.ModelName = model
	e.Assistant = &eval.Assistant{
		Client:    client,
		ModelName: model,
		Preamble:  eval.SystemPreamble(systemPrompt),
	}
	e.Opponent = &poser{problem: problem}
	e.MaxTurns = 1
	return e
}

func (e *Eval) Run(ctx context.Context) (float64, error) {
	if e == nil {
		return 0, errors.New("math: nil eval")
	}
	if err := e.RunTurns(ctx); err != nil {
		return 0, err
	}
	return e.evaluate()
}

func (e *Eval) evaluate() (float64, error) {
	gt, err := e.problem.Answer()
	if err != nil {
		return 0, err
	}

	last, ok := e.Transcript().Last()
	if !ok || last.Role != chat.RoleAssistant {
		return 0, errors.New("math: no assistant answer in transcript")
	}
	return Grade(last.Content, gt), nil
}

// Grade scores a raw model answer against the ground truth: 1.0 on exact
// numeric match, 0.0 otherwise. Non-numeric output is simply wrong, not an
// error; the model was told to answer with a number.
func Grade(response string, groundTruth float64) float64 {
	pred, err := strconv.ParseFloat(strings.TrimSpace(response), 64)
	if err != nil {
		return 0
	}
	if pred == groundTruth {
		return 1
	}
	return 0
}

// Register adds the math eval to the registry.
func Register(r *eval.Registry, client llm.Completer) error {
	return r.Register(eval.Definition{
		Name:        "math",
		Description: "Basic arithmetic problems with random integers",
		DefaultRuns: 50,
		Params:      eval.Params{"low": int64(defaultLow), "high": int64(defaultHigh)},
		New: func(model string, seed int64, params eval.Params) (eval.Eval, error) {
			low := paramInt64(params, "low", defaultLow)
			high := paramInt64(params, "high", defaultHigh)
			if low >= high {
				return nil, fmt.Errorf("math: invalid operand range [%d, %d)", low, high)
			}
			return New(client, model, seed, low, high), nil
		},
	})
}

func paramInt64(params eval.Params, key string, fallback int64) int64 {
	v, ok := params[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return fallback
	}
}
