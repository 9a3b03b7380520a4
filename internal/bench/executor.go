package bench

import (
	"context"
	"io"
	"time"
)

// Op executes one operation against a worker-owned connection.
type Op[C io.Closer] func(ctx context.Context, conn C) error

// Execute runs op and captures its outcome. The measured window
// brackets the call only; time spent queued for a worker slot is not
// included. Errors are captured with the duration elapsed up to the
// failure point and never propagated; retry policy, if any, belongs to
// the transport behind the connection.
func Execute[C io.Closer](ctx context.Context, conn C, op Op[C]) Outcome {
	start := time.Now()
	err := op(ctx, conn)
	elapsed := time.Since(start)
	if err != nil {
		return Outcome{Duration: elapsed, Err: err.Error()}
	}
	return Outcome{Success: true, Duration: elapsed}
}
