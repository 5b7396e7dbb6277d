package bench

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fpierfederici/redbench/internal/store"
)

// Dispatcher schedules workers and awaits their completion. The runner takes
// one explicitly instead of relying on process-global state, so independent
// runs stay isolated and tests can inject a failing substrate.
type Dispatcher interface {
	// Go schedules fn; a non-nil error means the unit could not be spawned.
	Go(fn func()) error
	// Wait blocks until every scheduled unit has returned.
	Wait() error
}

type groupDispatcher struct {
	g *errgroup.Group
}

// NewDispatcher returns the default goroutine-backed dispatcher.
func NewDispatcher() Dispatcher {
	return &groupDispatcher{g: &errgroup.Group{}}
}

func (d *groupDispatcher) Go(fn func()) error {
	d.g.Go(func() error {
		fn()
		return nil
	})
	return nil
}

func (d *groupDispatcher) Wait() error {
	return d.g.Wait()
}

// RunResult captures one complete run. It is never mutated after creation.
type RunResult struct {
	Elapsed  time.Duration
	Workers  int
	ChunkOps int

	// Completed counts operations that reached a terminal response,
	// including the ones that failed verification.
	Completed      int
	Mismatches     int
	WorkerFailures int
	Cancelled      bool

	Throughput float64

	LatencyP50 time.Duration
	LatencyP95 time.Duration
	LatencyP99 time.Duration
}

// Runner executes a workload by scheduling one worker per chunk. Each worker
// acquires its own connection, runs its chunk in index order, and releases
// the connection on every exit path.
type Runner struct {
	Provider store.Provider

	// NewDispatcher overrides the scheduling substrate; nil means the
	// default goroutine dispatcher.
	NewDispatcher func() Dispatcher

	Logger *slog.Logger
}

type workerOutcome struct {
	completed  int
	mismatches int
	failed     bool
	latencies  []time.Duration
}

// Run blocks until every worker reaches a terminal state. Mismatches and
// worker-level connection failures are folded into the result; only a
// dispatcher failure aborts the run, as *SchedulingError.
func (r *Runner) Run(ctx context.Context, w Workload) (*RunResult, error) {
	chunks, err := Split(w.TotalOps, w.WorkerHint)
	if err != nil {
		return nil, err
	}

	disp := r.dispatcher()
	logger := r.logger()

	var (
		mu        sync.Mutex
		completed int
		misses    int
		failures  int
		latencies = make([]time.Duration, 0, w.TotalOps)
	)

	start := time.Now()
	for _, chunk := range chunks {
		chunk := chunk
		spawnErr := disp.Go(func() {
			out := r.runWorker(ctx, w, chunk, logger)

			mu.Lock()
			completed += out.completed
			misses += out.mismatches
			if out.failed {
				failures++
			}
			latencies = append(latencies, out.latencies...)
			mu.Unlock()
		})
		if spawnErr != nil {
			disp.Wait()
			return nil, &SchedulingError{Err: spawnErr}
		}
	}

	if err := disp.Wait(); err != nil {
		return nil, &SchedulingError{Err: err}
	}
	elapsed := time.Since(start)

	p50, p95, p99 := percentiles(latencies)

	return &RunResult{
		Elapsed:        elapsed,
		Workers:        len(chunks),
		ChunkOps:       chunks[0].Ops,
		Completed:      completed,
		Mismatches:     misses,
		WorkerFailures: failures,
		Cancelled:      ctx.Err() != nil,
		Throughput:     float64(completed) / elapsed.Seconds(),
		LatencyP50:     p50,
		LatencyP95:     p95,
		LatencyP99:     p99,
	}, nil
}

func (r *Runner) runWorker(ctx context.Context, w Workload, chunk Chunk, logger *slog.Logger) workerOutcome {
	var out workerOutcome

	conn, err := r.Provider.Acquire(ctx)
	if err != nil {
		logger.Warn("worker failed to connect", "owner", chunk.Owner, "err", err)
		out.failed = true
		return out
	}
	defer conn.Close()

	out.latencies = make([]time.Duration, 0, chunk.Ops)
	for i := 0; i < chunk.Ops; i++ {
		// Cancellation stops dispatching new operations; the one in
		// flight is never interrupted.
		if ctx.Err() != nil {
			return out
		}

		key := Key(w.Namespace, chunk.Owner, i)
		value := Value(chunk.Owner, i, w.ValueSize)

		opStart := time.Now()
		var opErr error
		switch w.Mode {
		case ModePipelined:
			opErr = RunPipelined(ctx, conn, key, value)
		default:
			opErr = RunSequential(ctx, conn, key, value)
		}
		out.latencies = append(out.latencies, time.Since(opStart))

		var mismatch *MismatchError
		switch {
		case opErr == nil:
			out.completed++
		case errors.As(opErr, &mismatch):
			out.completed++
			out.mismatches++
			logger.Warn("round trip verification failed", "owner", chunk.Owner, "err", opErr)
		default:
			// Transport failure: abort this chunk only, siblings
			// keep going.
			logger.Warn("worker aborted", "owner", chunk.Owner, "completed", out.completed, "err", opErr)
			out.failed = true
			return out
		}
	}

	return out
}

func (r *Runner) dispatcher() Dispatcher {
	if r.NewDispatcher != nil {
		return r.NewDispatcher()
	}
	return NewDispatcher()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func percentiles(latencies []time.Duration) (p50, p95, p99 time.Duration) {
	if len(latencies) == 0 {
		return 0, 0, 0
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	idx := func(pct int) int {
		i := n * pct / 100
		if i >= n {
			i = n - 1
		}
		return i
	}
	return sorted[idx(50)], sorted[idx(95)], sorted[idx(99)]
}
