// Package stats computes descriptive latency and throughput statistics
// over batch outcomes and compares them across runs.
package stats

import (
	"sort"
	"time"

	"github.com/user/geobench/internal/bench"
)

// Summary holds descriptive statistics over the successful outcomes of
// one batch. Latency figures are in milliseconds. A summary with
// Count == 0 is "empty": its latency fields are meaningless and must
// not be compared.
type Summary struct {
	Count  int
	Failed int

	Mean   float64
	Median float64
	Min    float64
	Max    float64
	P95    float64
	P99    float64

	QPS float64
}

// Empty reports whether the summary has no successful outcomes.
func (s Summary) Empty() bool { return s.Count == 0 }

// Summarize aggregates the successful outcomes of a batch. Failed
// outcomes are counted but excluded from every latency figure. A zero
// wall time yields QPS 0 rather than infinity.
func Summarize(outcomes []bench.Outcome, wall time.Duration) Summary {
	durs := make([]float64, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if !o.Success {
			failed++
			continue
		}
		durs = append(durs, float64(o.Duration)/float64(time.Millisecond))
	}

	s := Summary{Count: len(durs), Failed: failed}
	if s.Count == 0 {
		return s
	}

	sort.Float64s(durs)

	var sum float64
	for _, d := range durs {
		sum += d
	}
	s.Mean = sum / float64(s.Count)
	s.Median = median(durs)
	s.Min = durs[0]
	s.Max = durs[len(durs)-1]
	s.P95 = durs[rankIndex(len(durs), 0.95)]
	s.P99 = durs[rankIndex(len(durs), 0.99)]

	if secs := wall.Seconds(); secs > 0 {
		s.QPS = float64(s.Count) / secs
	}
	return s
}

// median of a sorted slice. Even-sized inputs take the mean of the two
// middle values; both compared runs are summarized the same way, so
// ratios stay symmetric.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// rankIndex is the zero-based nearest-rank index floor(n*p), clamped
// to the valid range. No interpolation.
func rankIndex(n int, p float64) int {
	idx := int(float64(n) * p)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
