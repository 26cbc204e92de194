// Package compute models bulk data-parallel passes over fixed-size buffers.
// A Dispatcher splits an index range across a worker pool and returns an
// explicit completion handle; callers must wait on the handle before reading
// the buffers a pass writes. Failures surface as DispatchError and repeated
// failures trip a circuit breaker so the host can degrade to its last known
// good state instead of re-dispatching into a broken backend every frame.
package compute

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/sony/gobreaker"

	"github.com/JTStephens18/galaxyGPU/pkg/logging"
)

// ErrNotInitialized is returned by simulators when an update pass is
// requested before a successful initialization pass.
var ErrNotInitialized = errors.New("compute: buffers not initialized")

// DispatchError reports a failed or rejected pass.
type DispatchError struct {
	Pass string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("compute dispatch %q failed: %v", e.Pass, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Kernel is the per-element body of a pass. It must touch only the element
// at its own index so elements can run in any order and in parallel.
type Kernel func(i int)

// Dispatch is the completion handle for an in-flight pass.
type Dispatch struct {
	done chan struct{}
	err  error
}

// Done returns a channel closed when the pass has finished.
func (d *Dispatch) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the pass is quiescent and returns the pass error if
// any. On cancellation Wait still waits for the kernel goroutines to stop
// before returning: the caller holds the buffers the pass writes, so
// returning with writers still running would hand back a buffer mid-write.
// Kernels poll cancellation, so a cancelled pass winds down promptly.
func (d *Dispatch) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		<-d.done
		if d.err != nil {
			return d.err
		}
		return &DispatchError{Pass: "wait", Err: ctx.Err()}
	}
}

// failed builds an already-completed dispatch carrying an error.
func failed(pass string, err error) *Dispatch {
	d := &Dispatch{done: make(chan struct{})}
	d.err = &DispatchError{Pass: pass, Err: err}
	close(d.done)
	return d
}

// Dispatcher runs kernels over index ranges on a fixed worker pool.
type Dispatcher struct {
	workers int
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewDispatcher creates a dispatcher with the given worker count. A count
// of zero or less selects GOMAXPROCS workers.
func NewDispatcher(workers int) *Dispatcher {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := logging.NewLogger()

	settings := gobreaker.Settings{
		Name: "compute-dispatch",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "compute breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Dispatcher{
		workers: workers,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Workers returns the pool size.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Run starts an asynchronous pass of kernel over [0, n) and returns its
// completion handle. If the circuit breaker is open the pass is rejected
// immediately and the handle carries the rejection. A kernel panic is
// recovered into the pass error rather than crashing the frame loop.
func (d *Dispatcher) Run(ctx context.Context, pass string, n int, kernel Kernel) *Dispatch {
	if n < 0 {
		return failed(pass, fmt.Errorf("negative element count %d", n))
	}
	if d.breaker.State() == gobreaker.StateOpen {
		return failed(pass, gobreaker.ErrOpenState)
	}

	dispatch := &Dispatch{done: make(chan struct{})}
	go func() {
		defer close(dispatch.done)
		_, err := d.breaker.Execute(func() (interface{}, error) {
			return nil, d.execute(ctx, n, kernel)
		})
		if err != nil {
			d.logger.Error(ctx, "compute pass failed", err, "pass", pass, "elements", n)
			dispatch.err = &DispatchError{Pass: pass, Err: err}
		}
	}()
	return dispatch
}

// RunAndWait dispatches a pass and blocks until it completes.
func (d *Dispatcher) RunAndWait(ctx context.Context, pass string, n int, kernel Kernel) error {
	return d.Run(ctx, pass, n, kernel).Wait(ctx)
}

// cancelPollStride is how many elements a chunk runs between cancellation
// checks. A power of two so the check is a mask, not a division.
const cancelPollStride = 1024

// execute splits the index range into contiguous chunks, one per worker, and
// joins them. Chunks poll for cancellation as they go so a cancelled pass
// stops writing quickly instead of running to completion.
func (d *Dispatcher) execute(ctx context.Context, n int, kernel Kernel) (err error) {
	if n == 0 {
		return nil
	}

	workers := d.workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	var mu sync.Mutex
	setErr := func(e error) {
		mu.Lock()
		if err == nil {
			err = e
		}
		mu.Unlock()
	}

	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					setErr(fmt.Errorf("kernel panic: %v", r))
				}
			}()
			for i := start; i < end; i++ {
				if (i-start)&(cancelPollStride-1) == 0 && ctx.Err() != nil {
					setErr(ctx.Err())
					return
				}
				kernel(i)
			}
		}(start, end)
	}
	wg.Wait()
	return err
}
