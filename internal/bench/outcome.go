// Package bench runs batches of operations against a remote service
// through a bounded worker pool and records one timed outcome per
// operation.
package bench

import "time"

// Outcome is the recorded result of one executed operation. It is
// produced exactly once per submitted operation and never mutated.
type Outcome struct {
	Success  bool
	Duration time.Duration
	Err      string
}

// Result holds the raw product of one batch: one outcome per input
// operation, in input order, plus the wall time of the whole batch.
type Result struct {
	Outcomes []Outcome
	Elapsed  time.Duration
}

// Succeeded counts successful outcomes.
func (r Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

// Failed counts failed outcomes.
func (r Result) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}
