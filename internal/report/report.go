// Package report renders run summaries and comparisons as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/user/geobench/internal/stats"
)

// PrintSummary writes one run's statistics.
func PrintSummary(w io.Writer, s stats.Summary) {
	if s.Empty() {
		fmt.Fprintf(w, "  no successful operations (%d failed)\n", s.Failed)
		return
	}
	fmt.Fprintf(w, "  count:   %d", s.Count)
	if s.Failed > 0 {
		fmt.Fprintf(w, " (%d failed)", s.Failed)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  qps:     %.2f\n", s.QPS)
	fmt.Fprintf(w, "  mean:    %.2fms\n", s.Mean)
	fmt.Fprintf(w, "  median:  %.2fms\n", s.Median)
	fmt.Fprintf(w, "  p95:     %.2fms\n", s.P95)
	fmt.Fprintf(w, "  p99:     %.2fms\n", s.P99)
	fmt.Fprintf(w, "  min:     %.2fms\n", s.Min)
	fmt.Fprintf(w, "  max:     %.2fms\n", s.Max)
}

// PrintComparison writes the side-by-side metric table and a verdict
// per metric.
func PrintComparison(w io.Writer, c stats.Comparison) {
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintf(w, "%s vs %s\n", c.NameA, c.NameB)
	fmt.Fprintln(w, strings.Repeat("=", 64))

	if c.Incomparable {
		switch {
		case c.A.Empty() && c.B.Empty():
			fmt.Fprintf(w, "incomparable: neither %s nor %s had successful operations\n", c.NameA, c.NameB)
		case c.A.Empty():
			fmt.Fprintf(w, "incomparable: %s had no successful operations\n", c.NameA)
		default:
			fmt.Fprintf(w, "incomparable: %s had no successful operations\n", c.NameB)
		}
		return
	}

	fmt.Fprintf(w, "%-12s %14s %14s %18s\n", "metric", c.NameA, c.NameB, "ratio")
	fmt.Fprintln(w, strings.Repeat("-", 64))
	fmt.Fprintf(w, "%-12s %14d %14d\n", "count", c.A.Count, c.B.Count)
	fmt.Fprintf(w, "%-12s %14d %14d\n", "failed", c.A.Failed, c.B.Failed)
	for _, m := range c.Metrics {
		fmt.Fprintf(w, "%-12s %14.2f %14.2f %18s\n", metricLabel(m.Name), m.A, m.B, ratioLabel(m))
	}

	fmt.Fprintln(w)
	for _, name := range []string{"qps", "mean"} {
		for _, m := range c.Metrics {
			if m.Name != name || m.Winner == "" || m.Ratio == 0 {
				continue
			}
			loser := c.NameA
			if loser == m.Winner {
				loser = c.NameB
			}
			if m.Name == "qps" {
				fmt.Fprintf(w, "%s throughput is %.2fx %s\n", m.Winner, m.Ratio, loser)
			} else {
				fmt.Fprintf(w, "%s mean latency is %.2fx lower than %s\n", m.Winner, m.Ratio, loser)
			}
		}
	}
}

func metricLabel(name string) string {
	if name == "qps" {
		return "qps"
	}
	return name + "(ms)"
}

func ratioLabel(m stats.Metric) string {
	if m.Winner == "" {
		return "even"
	}
	if m.Ratio == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx %s", m.Ratio, m.Winner)
}
