package stats

type direction int

const (
	higherBetter direction = iota
	lowerBetter
)

// Metric compares one figure across two runs. Ratio is the larger
// value over the smaller, so it is always >= 1 when defined; it is 0
// when the smaller value is 0 and no meaningful ratio exists. Winner
// names the better side, or is empty on a tie.
type Metric struct {
	Name   string
	A, B   float64
	Ratio  float64
	Winner string
}

// Comparison is the result of comparing two run summaries. When either
// side is empty the comparison is marked incomparable and carries no
// metrics.
type Comparison struct {
	NameA, NameB string
	A, B         Summary
	Incomparable bool
	Metrics      []Metric
}

// Compare computes per-metric ratios between two summaries. Throughput
// is better when higher; every latency figure is better when lower.
func Compare(nameA string, a Summary, nameB string, b Summary) Comparison {
	c := Comparison{NameA: nameA, NameB: nameB, A: a, B: b}
	if a.Empty() || b.Empty() {
		c.Incomparable = true
		return c
	}
	c.Metrics = []Metric{
		metric("qps", a.QPS, b.QPS, nameA, nameB, higherBetter),
		metric("mean", a.Mean, b.Mean, nameA, nameB, lowerBetter),
		metric("median", a.Median, b.Median, nameA, nameB, lowerBetter),
		metric("p95", a.P95, b.P95, nameA, nameB, lowerBetter),
		metric("p99", a.P99, b.P99, nameA, nameB, lowerBetter),
		metric("min", a.Min, b.Min, nameA, nameB, lowerBetter),
		metric("max", a.Max, b.Max, nameA, nameB, lowerBetter),
	}
	return c
}

func metric(name string, a, b float64, nameA, nameB string, dir direction) Metric {
	m := Metric{Name: name, A: a, B: b}
	if a == b {
		return m
	}

	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo > 0 {
		m.Ratio = hi / lo
	}

	bWins := b > a
	if dir == lowerBetter {
		bWins = b < a
	}
	if bWins {
		m.Winner = nameB
	} else {
		m.Winner = nameA
	}
	return m
}
