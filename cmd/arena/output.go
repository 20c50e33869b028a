package main

import (
	"fmt"
	"io"

	"github.com/stellarlinkco/llm-arena/internal/runner"
)

func printBatchSummary(w io.Writer, res *runner.BatchResult) {
	if res == nil {
		return
	}
	s := res.Stats
	fmt.Fprintf(w, "mean=%.4f std=%.4f min=%.4f max=%.4f median=%.4f\n",
		s.Mean, s.Std, s.Min, s.Max, s.Median)
	fmt.Fprintf(w, "success rate %.0f%% (%d/%d)\n",
		s.SuccessRate*100, s.SuccessfulRuns, s.TotalRuns)
	if idx := res.FailedIndices(); len(idx) > 0 {
		fmt.Fprintf(w, "failed trials: %v\n", idx)
	}
	if res.SaveErr != nil {
		fmt.Fprintf(w, "save failed: %v\n", res.SaveErr)
	}
	fmt.Fprintln(w)
}
