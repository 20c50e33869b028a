// Package runner executes batches of independent eval trials under a
// bounded worker pool, isolating failures per trial and aggregating the
// surviving scores. It never retries: retry policy belongs to the
// completion client, the runner's contract is fault isolation.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/stellarlinkco/llm-arena/internal/eval"
)

const (
	DefaultMaxWorkers = 5

	// Below this success rate a batch is suspicious enough to warn about,
	// though aggregation still proceeds over the successful trials.
	lowSuccessRate = 0.1
)

// ErrNoSuccessfulRuns means every trial in a batch failed; no aggregate is
// produced or persisted.
var ErrNoSuccessfulRuns = errors.New("runner: no successful runs")

// Runner runs batches. Results is optional; when nil (or SaveResults is
// off) aggregates are not persisted. Progress defaults to io.Discard.
type Runner struct {
	Results  ResultWriter
	Progress io.Writer
}

type outcome struct {
	index     int
	score     float64
	evalName  string
	modelName string
	err       error
}

// BatchEval runs opts.Runs trials from the factory, at most opts.MaxWorkers
// in flight at once, and aggregates the successful scores. Trial i is seeded
// with i, so a batch is reproducible run to run.
func (r *Runner) BatchEval(ctx context.Context, factory eval.Factory, opts Options) (*BatchResult, error) {
	if r == nil {
		return nil, errors.New("runner: nil runner")
	}
	if ctx == nil {
		return nil, errors.New("runner: nil context")
	}
	if factory == nil {
		return nil, errors.New("runner: nil eval factory")
	}
	if opts.Runs <= 0 {
		return nil, fmt.Errorf("runner: runs must be > 0 (got %d)", opts.Runs)
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = DefaultMaxWorkers
	}

	progress := r.Progress
	if progress == nil {
		progress = io.Discard
	}

	sem := make(chan struct{}, opts.MaxWorkers)
	outcomes := make(chan outcome, opts.Runs)

	var wg sync.WaitGroup
	for i := 0; i < opts.Runs; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes <- runTrial(ctx, factory, index)
		}(i)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	out := &BatchResult{}
	completed := 0
	for oc := range outcomes {
		completed++
		if opts.Verbose {
			fmt.Fprintf(progress, "\rcompleted %d/%d", completed, opts.Runs)
		}

		if oc.err != nil {
			out.Failed = append(out.Failed, FailedRun{Index: oc.index, Err: oc.err})
			continue
		}
		out.Scores = append(out.Scores, oc.score)
		if out.EvalName == "" {
			out.EvalName = oc.evalName
			out.ModelName = oc.modelName
		}
	}
	if opts.Verbose {
		fmt.Fprintln(progress)
	}

	if len(out.Scores) == 0 {
		return out, fmt.Errorf("%w: all %d trials failed (indices %v)",
			ErrNoSuccessfulRuns, opts.Runs, out.FailedIndices())
	}

	out.Stats = computeStats(out.Scores, opts.Runs)

	if opts.Runs > 1 && out.Stats.SuccessRate < lowSuccessRate {
		fmt.Fprintf(progress, "warning: only %d/%d trials succeeded (%.0f%%); aggregating successful trials only\n",
			out.Stats.SuccessfulRuns, opts.Runs, out.Stats.SuccessRate*100)
	}

	if opts.SaveResults && r.Results != nil {
		err := r.Results.SaveResult(ctx, out.ModelName, out.EvalName, out.Stats.Mean, out.Stats.SuccessfulRuns)
		if err != nil {
			out.SaveErr = fmt.Errorf("runner: save result: %w", err)
			fmt.Fprintf(progress, "warning: %v\n", out.SaveErr)
		}
	}

	return out, nil
}

// runTrial is the isolation boundary: any failure in construction,
// execution, or evaluation of one trial becomes a failed outcome and never
// touches its siblings.
func runTrial(ctx context.Context, factory eval.Factory, index int) (oc outcome) {
	oc.index = index
	defer func() {
		if rec := recover(); rec != nil {
			oc.err = fmt.Errorf("runner: trial %d panicked: %v", index, rec)
		}
	}()

	ev, err := factory(int64(index))
	if err != nil {
		oc.err = fmt.Errorf("runner: construct trial %d: %w", index, err)
		return oc
	}

	oc.evalName = ev.Name()
	oc.modelName = ev.Model()

	score, err := ev.Run(ctx)
	if err != nil {
		oc.err = fmt.Errorf("runner: trial %d: %w", index, err)
		return oc
	}
	oc.score = score
	return oc
}
