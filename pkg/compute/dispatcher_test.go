// pkg/compute/dispatcher_test.go
package compute

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcher_RunCoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"single_worker", 1, 100},
		{"more_workers_than_elements", 16, 5},
		{"uneven_split", 3, 1000},
		{"empty_range", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.workers)
			hits := make([]int32, tt.n)
			err := d.RunAndWait(context.Background(), "count", tt.n, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			})
			if err != nil {
				t.Fatalf("RunAndWait() error: %v", err)
			}
			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times, expected exactly once", i, h)
				}
			}
		})
	}
}

func TestDispatcher_WaitBeforeReadSeesResults(t *testing.T) {
	d := NewDispatcher(4)
	buf := make([]float64, 4096)
	dispatch := d.Run(context.Background(), "fill", len(buf), func(i int) {
		buf[i] = float64(i) * 2
	})
	if err := dispatch.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	for i, v := range buf {
		if v != float64(i)*2 {
			t.Fatalf("buf[%d] = %v after Wait, expected %v", i, v, float64(i)*2)
		}
	}
}

func TestDispatcher_KernelPanicBecomesDispatchError(t *testing.T) {
	d := NewDispatcher(2)
	err := d.RunAndWait(context.Background(), "explode", 10, func(i int) {
		if i == 7 {
			panic("bad element")
		}
	})
	var de *DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("expected DispatchError, got %v", err)
	}
	if de.Pass != "explode" {
		t.Errorf("DispatchError.Pass = %q, expected %q", de.Pass, "explode")
	}
}

func TestDispatcher_CancelledContextFailsPass(t *testing.T) {
	d := NewDispatcher(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.RunAndWait(ctx, "cancelled", 100, func(i int) {})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDispatcher_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	d := NewDispatcher(1)
	for i := 0; i < 6; i++ {
		_ = d.RunAndWait(context.Background(), "failing", 1, func(int) {
			panic("always fails")
		})
	}
	// Breaker should now reject without running the kernel.
	ran := false
	err := d.RunAndWait(context.Background(), "rejected", 1, func(int) { ran = true })
	if err == nil {
		t.Fatal("expected rejection from open breaker")
	}
	if ran {
		t.Error("kernel ran despite open breaker")
	}
}

func TestDispatch_WaitQuiescesCancelledPass(t *testing.T) {
	d := NewDispatcher(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 4 * cancelPollStride
	var writes int64
	started := make(chan struct{})
	release := make(chan struct{})
	dispatch := d.Run(ctx, "slow-fill", n, func(i int) {
		if i == 0 {
			close(started)
			<-release
		}
		atomic.AddInt64(&writes, 1)
	})

	// Cancel while the pass is mid-flight, then let it proceed.
	<-started
	cancel()
	close(release)

	if err := dispatch.Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled pass")
	}

	atWait := atomic.LoadInt64(&writes)
	if atWait >= n {
		t.Fatalf("pass ran to completion (%d writes) despite cancellation", atWait)
	}

	// Once Wait has returned the pass must be quiescent: the caller owns the
	// buffers again, so no kernel may still be writing behind its back.
	select {
	case <-dispatch.Done():
	default:
		t.Fatal("Done() not closed after Wait returned")
	}
	time.Sleep(10 * time.Millisecond)
	if after := atomic.LoadInt64(&writes); after != atWait {
		t.Fatalf("writes climbed from %d to %d after Wait returned", atWait, after)
	}
}

func TestDispatch_DoneChannelCloses(t *testing.T) {
	d := NewDispatcher(2)
	dispatch := d.Run(context.Background(), "noop", 16, func(int) {})
	<-dispatch.Done()
	if err := dispatch.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() after Done error: %v", err)
	}
}
