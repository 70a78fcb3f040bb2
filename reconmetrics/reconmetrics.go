// Package reconmetrics aggregates and reports per-iteration
// reconstruction statistics: wall-clock duration, image sum/voxel-count
// sanity figures, and skipped-LOR counts. A small accumulating struct
// with a tabular Print method, plus a percentile helper for the
// duration distribution, computed with gonum/stat rather than a
// hand-rolled nearest-rank routine.
package reconmetrics

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/petalo-go/petalo/mlem"
)

// IterationRecord captures one completed MLEM iteration.
type IterationRecord struct {
	Iteration   int
	Duration    time.Duration
	ImageSum    float64
	SkippedLORs int
}

// Report aggregates IterationRecords across a reconstruction run.
type Report struct {
	Records []IterationRecord
}

// Record appends one iteration's figures. stats is the reconstructor's
// running Stats, whose SkippedLORs accumulates across iterations; the
// record keeps only its growth since the previous record, so each
// IterationRecord holds that iteration's own skipped count.
func (r *Report) Record(iteration int, dur time.Duration, imageSum float64, stats mlem.Stats) {
	skipped := stats.SkippedLORs
	for _, rec := range r.Records {
		skipped -= rec.SkippedLORs
	}
	r.Records = append(r.Records, IterationRecord{
		Iteration:   iteration,
		Duration:    dur,
		ImageSum:    imageSum,
		SkippedLORs: skipped,
	})
}

// durationsSeconds returns every recorded duration in seconds, the unit
// gonum/stat.Quantile expects its samples in.
func (r *Report) durationsSeconds() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Duration.Seconds()
	}
	return out
}

// Percentile returns the p-th percentile (0-100) of iteration durations
// in seconds, using gonum's empirical CDF quantile estimator.
func (r *Report) Percentile(p float64) float64 {
	if len(r.Records) == 0 {
		return 0
	}
	xs := r.durationsSeconds()
	sort.Float64s(xs)
	return stat.Quantile(p/100.0, stat.Empirical, xs, nil)
}

// Print writes a summary table to stdout: totals and averages first,
// tail-latency percentiles after.
func (r *Report) Print() {
	fmt.Println("=== Reconstruction Metrics ===")
	fmt.Printf("Iterations Completed : %d\n", len(r.Records))
	if len(r.Records) == 0 {
		return
	}

	var totalDur time.Duration
	var totalSkipped int
	for _, rec := range r.Records {
		totalDur += rec.Duration
		totalSkipped += rec.SkippedLORs
	}
	last := r.Records[len(r.Records)-1]

	avgDur := totalDur / time.Duration(len(r.Records))
	fmt.Printf("Average Iteration Time : %s\n", avgDur)
	fmt.Printf("Total Reconstruction Time : %s\n", totalDur)
	fmt.Printf("Skipped LORs (last iter) : %d\n", last.SkippedLORs)
	fmt.Printf("Skipped LORs (total)     : %d\n", totalSkipped)
	fmt.Printf("Final Image Sum          : %.6g\n", last.ImageSum)
	fmt.Printf("Iteration Time p50/p90/p99 : %.4fs / %.4fs / %.4fs\n",
		r.Percentile(50), r.Percentile(90), r.Percentile(99))
}
