package runner

import (
	"context"
	"sort"

	"github.com/stellarlinkco/llm-arena/internal/chat"
)

// ResultWriter persists one aggregate record per completed batch. The store
// package satisfies this.
type ResultWriter interface {
	SaveResult(ctx context.Context, model, evalName string, meanScore float64, runs int) error
}

// Options control one batch invocation.
type Options struct {
	Runs        int
	MaxWorkers  int
	SaveResults bool
	Verbose     bool
}

// FailedRun records one isolated trial failure.
type FailedRun struct {
	Index int
	Err   error
}

// BatchResult aggregates a batch. Scores holds successful trial scores in
// completion order; the statistics are order-independent.
type BatchResult struct {
	EvalName  string
	ModelName string
	Scores    []float64
	Stats     Stats
	Failed    []FailedRun

	// SaveErr reports a persistence failure. It never discards the
	// statistics already computed.
	SaveErr error
}

// FailedIndices lists the failed trial indices in ascending order.
func (r *BatchResult) FailedIndices() []int {
	if r == nil || len(r.Failed) == 0 {
		return nil
	}
	out := make([]int, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Index)
	}
	sort.Ints(out)
	return out
}

// DebugResult reports one synchronous trial run outside the worker pool.
type DebugResult struct {
	EvalName   string
	ModelName  string
	Seed       int64
	Score      float64
	Transcript []chat.Message
}
