package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// ErrNoConnections reports that every worker that tried to connect
// failed, so the target was never reached at all. A single failed dial
// only fails the item that worker took.
var ErrNoConnections = errors.New("bench: no worker established a connection")

// Dial opens the dedicated connection for one worker. The runner calls
// it lazily on the worker's first item and closes the connection when
// the worker exits.
type Dial[C io.Closer] func(ctx context.Context) (C, error)

// Runner drives a batch of operations across a bounded worker pool.
// Each worker owns one connection for its lifetime; connections are
// never shared between workers.
type Runner[C io.Closer] struct {
	Dial        Dial[C]
	Concurrency int

	// OnProgress, when set together with ProgressEvery, is invoked
	// with the completion count every ProgressEvery completions. It
	// runs on a dedicated goroutine and is signalled without blocking
	// completion processing; signals arriving while the observer is
	// busy are dropped.
	ProgressEvery int
	OnProgress    func(done, total int)
}

// Run submits every operation exactly once and returns after each has
// produced an outcome, success or failure. Outcomes are indexed by
// input position. A worker whose dial fails records a failed outcome
// for the one item it took and exits, leaving the rest of the batch to
// the workers that connected. A cancelled context stops dispatch of
// not-yet-started operations, which are recorded as failed; in-flight
// operations run to completion.
func (r *Runner[C]) Run(ctx context.Context, ops []Op[C]) (Result, error) {
	if r.Concurrency <= 0 {
		return Result{}, fmt.Errorf("bench: concurrency must be positive, got %d", r.Concurrency)
	}
	if r.Dial == nil {
		return Result{}, errors.New("bench: Dial is required")
	}

	total := len(ops)
	result := Result{Outcomes: make([]Outcome, total)}
	if total == 0 {
		return result, nil
	}

	var (
		completed  atomic.Int64
		connected  atomic.Int64
		dialsTried atomic.Int64
		failures   atomic.Int64
		live       atomic.Int64
	)

	notify := make(chan int, 1)
	var observerWG sync.WaitGroup
	observing := r.OnProgress != nil && r.ProgressEvery > 0
	if observing {
		observerWG.Add(1)
		go func() {
			defer observerWG.Done()
			for done := range notify {
				r.OnProgress(done, total)
			}
		}()
	}

	workers := r.Concurrency
	if workers > total {
		workers = total
	}

	queue := make(chan int)
	allDead := make(chan struct{})
	live.Store(int64(workers))
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if live.Add(-1) == 0 {
					close(allDead)
				}
			}()

			var conn C
			dialed := false
			defer func() {
				if dialed {
					_ = conn.Close()
				}
			}()

			record := func(idx int, out Outcome) {
				result.Outcomes[idx] = out
				if !out.Success {
					if n := failures.Add(1); n <= 3 || n%1000 == 0 {
						slog.Warn("operation failed", "item", idx, "failures", n, "err", out.Err)
					}
				}
				done := int(completed.Add(1))
				if observing && done%r.ProgressEvery == 0 {
					select {
					case notify <- done:
					default:
					}
				}
			}

			for idx := range queue {
				if !dialed {
					dialsTried.Add(1)
					c, err := r.Dial(ctx)
					if err != nil {
						// Fatal for this worker only: fail the item
						// that triggered the dial and get out of the
						// way so the rest of the queue drains to
						// workers that did connect.
						record(idx, Outcome{Err: fmt.Errorf("dial: %w", err).Error()})
						return
					}
					conn = c
					dialed = true
					connected.Add(1)
				}
				record(idx, Execute(ctx, conn, ops[idx]))
			}
		}()
	}

dispatch:
	for idx := range ops {
		if ctx.Err() != nil {
			for j := idx; j < total; j++ {
				result.Outcomes[j] = Outcome{Err: ctx.Err().Error()}
			}
			break dispatch
		}
		select {
		case queue <- idx:
		case <-ctx.Done():
			for j := idx; j < total; j++ {
				result.Outcomes[j] = Outcome{Err: ctx.Err().Error()}
			}
			break dispatch
		case <-allDead:
			// Every worker exited on a failed dial; nothing is left
			// to take the remaining items.
			for j := idx; j < total; j++ {
				result.Outcomes[j] = Outcome{Err: ErrNoConnections.Error()}
			}
			break dispatch
		}
	}
	close(queue)
	wg.Wait()
	close(notify)
	observerWG.Wait()

	result.Elapsed = time.Since(start)

	if dialsTried.Load() > 0 && connected.Load() == 0 {
		return result, ErrNoConnections
	}
	return result, nil
}
