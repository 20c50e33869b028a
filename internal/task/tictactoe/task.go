// Package tictactoe implements the tic-tac-toe evaluation: the model plays
// a full game against a random or perfect opponent and is scored 1.0 for a
// win, 0.5 for a draw, and 0.0 for a loss. An unparseable or illegal move
// forfeits the game and scores as a loss.
package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/stellarlinkco/llm-arena/internal/chat"
	"github.com/stellarlinkco/llm-arena/internal/eval"
	"github.com/stellarlinkco/llm-arena/internal/llm"
)

const systemPrompt = `You are an expert TicTacToe player, and always make the perfect move. Either 'X' or 'O' may go first.

Respond only with a number between 1 and 9, where 1 is the top-left corner and 9 is the bottom-right corner. The game board positions are numbered as follows:

1 2 3
4 5 6
7 8 9

Respond ONLY with a number between 1 and 9. Do not respond with any new lines or other text.`

// preamble seeds the model with worked examples of reading a board and
// answering with a bare position number.
func preamble() []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: systemPrompt},
		{Role: chat.RoleUser, Content: "Game Board:\n. . .\n. . .\n. . .\n'X' to play"},
		{Role: chat.RoleAssistant, Content: "1"},
		{Role: chat.RoleUser, Content: "Game Board:\nX . .\n. . .\n. . .\n'O' to play"},
		{Role: chat.RoleAssistant, Content: "5"},
		{Role: chat.RoleUser, Content: "Game Board:\nO X O\n. X .\n. . O\n'X' to play"},
		{Role: chat.RoleAssistant, Content: "8"},
	}
}

// OpponentKind selects the counterpart move source.
type OpponentKind string

const (
	OpponentRandom  OpponentKind = "random"
	OpponentPerfect OpponentKind = "perfect"
)

// opponent is the user-variant agent. It plays its own move (unless the
// model goes first and the board is untouched) and renders the board state
// as the next prompt.
type opponent struct {
	board    *Board
	rng      *rand.Rand
	kind     OpponentKind
	llmFirst bool
}

func (o *opponent) Role() chat.Role { return chat.RoleUser }

func (o *opponent) Respond(ctx context.Context, t *chat.Transcript) (string, error) {
	firstTurn := t.Len() == 0
	if (!firstTurn || !o.llmFirst) && !o.board.IsOver() {
		move := o.pick()
		if err := o.board.Play(move); err != nil {
			return "", fmt.Errorf("tictactoe: opponent move: %w", err)
		}
	}
	return o.board.Render(), nil
}

func (o *opponent) pick() int {
	if o.kind == OpponentPerfect {
		return o.board.BestMove()
	}
	moves := o.board.Moves()
	return moves[o.rng.IntN(len(moves))]
}

func (o *opponent) Done() bool {
	return o.board.IsOver()
}

// player is the model-backed agent. It parses the model's reply as a board
// position and applies it; an invalid reply is recorded as a forfeit rather
// than raised as an error, so the grade can treat it as a loss.
type player struct {
	eval.Assistant
	board   *Board
	forfeit string
}

func (p *player) Respond(ctx context.Context, t *chat.Transcript) (string, error) {
	response, err := p.Assistant.Respond(ctx, t)
	if err != nil {
		return "", err
	}

	move, convErr := strconv.Atoi(strings.TrimSpace(response))
	if convErr != nil {
		p.forfeit = fmt.Sprintf("unparseable move %q", response)
		return response, nil
	}
	if err := p.board.Play(move); err != nil {
		p.forfeit = fmt.Sprintf("illegal move %d", move)
		return response, nil
	}
	return response, nil
}

func (p *player) Done() bool {
	return p.forfeit != "" || p.board.IsOver()
}

// Eval is one game.
type Eval struct {
	eval.Conversation
	board   *Board
	llmMark Mark
	player  *player
}

func New(client llm.Completer, model string, seed int64, kind OpponentKind) (*Eval, error) {
	switch kind {
	case OpponentRandom, OpponentPerfect:
	default:
		return nil, fmt.Errorf("tictactoe: invalid opponent %q", kind)
	}

	rng := eval.NewRand(seed)
	board := NewBoard()

	// Randomize which mark the model plays; X always moves first.
	llmFirst := rng.IntN(2) == 0
	llmMark := MarkO
	if llmFirst {
		llmMark = MarkX
	}

	p := &player{
		Assistant: eval.Assistant{
			Client:    client,
			ModelName: model,
			Preamble:  preamble(),
		},
		board: board,
	}

	e := &Eval{
		board:   board,
		llmMark: llmMark,
		player:  p,
	}
	e.EvalName = "tictactoe_" + string(kind)
	e.ModelName = model
	e.Assistant = p
	e.Opponent = &opponent{
		board:    board,
		rng:      rng,
		kind:     kind,
		llmFirst: llmFirst,
	}
	e.MaxTurns = 10
	return e, nil
}

func (e *Eval) Run(ctx context.Context) (float64, error) {
	if e == nil {
		return 0, errors.New("tictactoe: nil eval")
	}
	if err := e.RunTurns(ctx); err != nil {
		return 0, err
	}
	return e.evaluate(), nil
}

// evaluate scores the finished game for the model: 1 win, 0.5 draw, 0 loss.
// A forfeit counts as a loss.
func (e *Eval) evaluate() float64 {
	if e.player.forfeit != "" {
		return 0
	}
	switch e.board.Winner() {
	case e.llmMark:
		return 1
	case Empty:
		return 0.5
	default:
		return 0
	}
}

// Forfeit reports the invalid-move reason, if the game was forfeited.
func (e *Eval) Forfeit() (string, bool) {
	if e == nil || e.player == nil || e.player.forfeit == "" {
		return "", false
	}
	return e.player.forfeit, true
}

// Register adds both tic-tac-toe variants to the registry.
func Register(r *eval.Registry, client llm.Completer) error {
	for _, kind := range []OpponentKind{OpponentRandom, OpponentPerfect} {
		kind := kind
		desc := "Tic-tac-toe against a random opponent"
		if kind == OpponentPerfect {
			desc = "Tic-tac-toe against a perfect negamax opponent"
		}
		err := r.Register(eval.Definition{
			Name:        "tictactoe_" + string(kind),
			Description: desc,
			DefaultRuns: 10,
			New: func(model string, seed int64, params eval.Params) (eval.Eval, error) {
				return New(client, model, seed, kind)
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
