package runner

import (
	"math"
	"sort"
)

// Stats summarize the successful scores of a batch. SuccessRate is measured
// against the requested trial count, not the successful count.
type Stats struct {
	Mean           float64 `json:"mean"`
	Std            float64 `json:"std"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Median         float64 `json:"median"`
	SuccessRate    float64 `json:"success_rate"`
	SuccessfulRuns int     `json:"successful_runs"`
	TotalRuns      int     `json:"total_runs"`
}

func computeStats(scores []float64, totalRuns int) Stats {
	st := Stats{
		SuccessfulRuns: len(scores),
		TotalRuns:      totalRuns,
	}
	if totalRuns > 0 {
		st.SuccessRate = float64(len(scores)) / float64(totalRuns)
	}
	if len(scores) == 0 {
		return st
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.Median = median(sorted)

	var sum float64
	for _, s := range sorted {
		sum += s
	}
	st.Mean = sum / float64(len(sorted))

	var sq float64
	for _, s := range sorted {
		d := s - st.Mean
		sq += d * d
	}
	st.Std = math.Sqrt(sq / float64(len(sorted)))

	return st
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
