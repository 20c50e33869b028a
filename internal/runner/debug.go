package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/stellarlinkco/llm-arena/internal/eval"
)

// DebugEval runs exactly one trial synchronously, outside the worker pool,
// and dumps the full transcript to out. Errors come back unwrapped and
// unisolated: this is the inspection path, not the batch path.
func (r *Runner) DebugEval(ctx context.Context, factory eval.Factory, seed int64, out io.Writer) (*DebugResult, error) {
	if r == nil {
		return nil, errors.New("runner: nil runner")
	}
	if ctx == nil {
		return nil, errors.New("runner: nil context")
	}
	if factory == nil {
		return nil, errors.New("runner: nil eval factory")
	}
	if out == nil {
		out = io.Discard
	}

	ev, err := factory(seed)
	if err != nil {
		return nil, err
	}

	res := &DebugResult{
		EvalName:  ev.Name(),
		ModelName: ev.Model(),
		Seed:      seed,
	}

	score, runErr := ev.Run(ctx)

	if t := ev.Transcript(); t != nil {
		res.Transcript = t.Messages()
		fmt.Fprint(out, t.String())
	}

	if runErr != nil {
		return res, runErr
	}

	res.Score = score
	fmt.Fprintf(out, "score: %v\n", score)
	return res, nil
}
