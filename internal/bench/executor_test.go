package bench_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/geobench/internal/bench"
)

func TestExecuteSuccess(t *testing.T) {
	conn := &stubConn{}
	op := func(ctx context.Context, c *stubConn) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	}
	out := bench.Execute(context.Background(), conn, bench.Op[*stubConn](op))
	if !out.Success {
		t.Fatalf("Execute returned failure: %+v", out)
	}
	if out.Duration < 5*time.Millisecond {
		t.Errorf("Duration = %v, want >= 5ms", out.Duration)
	}
	if out.Err != "" {
		t.Errorf("Err = %q, want empty", out.Err)
	}
}

func TestExecuteFailureKeepsElapsed(t *testing.T) {
	conn := &stubConn{}
	op := func(ctx context.Context, c *stubConn) error {
		time.Sleep(2 * time.Millisecond)
		return errors.New("read timeout")
	}
	out := bench.Execute(context.Background(), conn, bench.Op[*stubConn](op))
	if out.Success {
		t.Fatal("Execute reported success for a failing op")
	}
	if out.Err != "read timeout" {
		t.Errorf("Err = %q, want %q", out.Err, "read timeout")
	}
	if out.Duration < 2*time.Millisecond {
		t.Errorf("Duration = %v, want elapsed time up to the failure", out.Duration)
	}
}
