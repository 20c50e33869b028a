package tictactoe

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stellarlinkco/llm-arena/internal/chat"
	"github.com/stellarlinkco/llm-arena/internal/eval"
)

type completerFunc func(ctx context.Context, model string, msgs []chat.Message) (string, error)

func (f completerFunc) Completion(ctx context.Context, model string, msgs []chat.Message) (string, error) {
	return f(ctx, model, msgs)
}

// boardFromRender reconstructs board state from the prompt text so a stub
// player can move without reaching into the eval.
func boardFromRender(t *testing.T, render string) *Board {
	t.Helper()
	lines := strings.Split(render, "\n")
	if len(lines) != 5 || lines[0] != "Game Board:" {
		t.Fatalf("unexpected render: %q", render)
	}

	b := &Board{}
	for row := 0; row < 3; row++ {
		cells := strings.Fields(lines[row+1])
		if len(cells) != 3 {
			t.Fatalf("unexpected row %q", lines[row+1])
		}
		for col, c := range cells {
			switch c {
			case "X":
				b.cells[3*row+col] = MarkX
			case "O":
				b.cells[3*row+col] = MarkO
			case ".":
			default:
				t.Fatalf("unexpected cell %q", c)
			}
		}
	}
	switch {
	case strings.Contains(lines[4], "'X'"):
		b.turn = MarkX
	case strings.Contains(lines[4], "'O'"):
		b.turn = MarkO
	default:
		t.Fatalf("unexpected footer %q", lines[4])
	}
	return b
}

// perfectPlayer replies with the negamax-optimal move for whatever board it
// is shown.
func perfectPlayer(t *testing.T) completerFunc {
	t.Helper()
	return func(ctx context.Context, model string, msgs []chat.Message) (string, error) {
		last := msgs[len(msgs)-1]
		b := boardFromRender(t, last.Content)
		return strconv.Itoa(b.BestMove()), nil
	}
}

func TestEval_PerfectModelNeverLoses(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 10; seed++ {
		e, err := New(perfectPlayer(t), "test-model", seed, OpponentRandom)
		if err != nil {
			t.Fatalf("seed %d: New: %v", seed, err)
		}
		score, err := e.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: Run: %v", seed, err)
		}
		if score == 0 {
			t.Fatalf("seed %d: perfect play lost", seed)
		}
		if _, forfeited := e.Forfeit(); forfeited {
			t.Fatalf("seed %d: perfect play forfeited", seed)
		}
	}
}

func TestEval_PerfectVsPerfectDraws(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 6; seed++ {
		e, err := New(perfectPlayer(t), "test-model", seed, OpponentPerfect)
		if err != nil {
			t.Fatalf("seed %d: New: %v", seed, err)
		}
		score, err := e.Run(context.Background())
		if err != nil {
			t.Fatalf("seed %d: Run: %v", seed, err)
		}
		if score != 0.5 {
			t.Fatalf("seed %d: got %v want 0.5", seed, score)
		}
	}
}

func TestEval_UnparseableMoveForfeits(t *testing.T) {
	t.Parallel()

	babbler := completerFunc(func(ctx context.Context, model string, msgs []chat.Message) (string, error) {
		return "the center square", nil
	})

	e, err := New(babbler, "test-model", 0, OpponentRandom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	score, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if score != 0 {
		t.Fatalf("score: got %v want 0", score)
	}
	reason, forfeited := e.Forfeit()
	if !forfeited {
		t.Fatalf("Forfeit: expected forfeit")
	}
	if !strings.Contains(reason, "unparseable") {
		t.Fatalf("Forfeit reason: got %q", reason)
	}
}

func TestEval_IllegalMoveForfeits(t *testing.T) {
	t.Parallel()

	// Always answers 1; the second attempt (at the latest) is illegal.
	stubborn := completerFunc(func(ctx context.Context, model string, msgs []chat.Message) (string, error) {
		return "1", nil
	})

	e, err := New(stubborn, "test-model", 0, OpponentRandom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	score, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if score != 0 {
		t.Fatalf("score: got %v want 0", score)
	}
	if _, forfeited := e.Forfeit(); !forfeited {
		t.Fatalf("Forfeit: expected forfeit")
	}
}

func TestEval_BackendErrorPropagates(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("backend down")
	failing := completerFunc(func(ctx context.Context, model string, msgs []chat.Message) (string, error) {
		return "", wantErr
	})

	e, err := New(failing, "test-model", 0, OpponentRandom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Run: got %v want %v", err, wantErr)
	}
}

func TestEval_TranscriptAlternates(t *testing.T) {
	t.Parallel()

	e, err := New(perfectPlayer(t), "test-model", 2, OpponentPerfect)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	msgs := e.Transcript().Messages()
	if len(msgs) == 0 {
		t.Fatalf("empty transcript")
	}
	for i, m := range msgs {
		want := chat.RoleUser
		if i%2 == 1 {
			want = chat.RoleAssistant
		}
		if m.Role != want {
			t.Fatalf("message %d role: got %q want %q", i, m.Role, want)
		}
	}
}

func TestNew_InvalidOpponent(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, "m", 0, OpponentKind("psychic")); err == nil {
		t.Fatalf("New: expected error for invalid opponent kind")
	}
}

func TestEval_Deterministic(t *testing.T) {
	t.Parallel()

	run := func() []chat.Message {
		e, err := New(perfectPlayer(t), "test-model", 7, OpponentRandom)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := e.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return e.Transcript().Messages()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("transcript lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("message %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	r := eval.NewRegistry()
	if err := Register(r, perfectPlayer(t)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, name := range []string{"tictactoe_random", "tictactoe_perfect"} {
		def, ok := r.Get(name)
		if !ok {
			t.Fatalf("Get(%q): not registered", name)
		}
		if def.DefaultRuns != 10 {
			t.Fatalf("%s DefaultRuns: got %d want 10", name, def.DefaultRuns)
		}
	}

	factory, err := r.Factory("tictactoe_perfect", "test-model", nil)
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	ev, err := factory(1)
	if err != nil {
		t.Fatalf("factory(1): %v", err)
	}
	score, err := ev.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if score != 0.5 {
		t.Fatalf("score: got %v want 0.5", score)
	}
}
