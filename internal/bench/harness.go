package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fpierfederici/redbench/internal/bench/statistics"
)

// DefaultRepetitions is how many times a workload is run when the caller
// does not say otherwise.
const DefaultRepetitions = 5

// Summary aggregates the results of all repetitions of one workload.
type Summary struct {
	Workload Workload
	Runs     []*RunResult

	// Throughput statistics across runs, in operations per second. Best is
	// Max, worst is Min.
	Throughput statistics.Stats
}

// Harness runs a workload a fixed number of times, strictly one run after
// another so repetitions never interfere on shared keys or connections, and
// derives aggregate statistics over the per-run throughputs.
type Harness struct {
	Runner      *Runner
	Repetitions int

	// Reset, when set, is invoked before each repetition. The store's keys
	// must be cleared between runs; that is the caller's responsibility,
	// wired here as a hook, never performed by the harness itself.
	Reset func(ctx context.Context) error

	Logger *slog.Logger
}

// Benchmark executes the repetitions and summarizes them. A scheduling
// failure in any repetition aborts the whole benchmark; a cancelled run ends
// the series early with the results gathered so far.
func (h *Harness) Benchmark(ctx context.Context, w Workload) (*Summary, error) {
	reps := h.Repetitions
	if reps <= 0 {
		reps = DefaultRepetitions
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runs := make([]*RunResult, 0, reps)
	for i := 0; i < reps; i++ {
		if h.Reset != nil {
			if err := h.Reset(ctx); err != nil {
				return nil, fmt.Errorf("reset before run %d: %w", i+1, err)
			}
		}

		res, err := h.Runner.Run(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		runs = append(runs, res)

		logger.Info("run finished",
			"run", i+1,
			"elapsed", res.Elapsed.Round(time.Millisecond),
			"completed", res.Completed,
			"throughput", fmt.Sprintf("%.0f", res.Throughput),
			"mismatches", res.Mismatches,
			"worker_failures", res.WorkerFailures,
		)

		if res.Cancelled {
			logger.Info("benchmark cancelled", "runs_completed", len(runs))
			break
		}
	}

	throughputs := make([]float64, len(runs))
	for i, r := range runs {
		throughputs[i] = r.Throughput
	}

	return &Summary{
		Workload:   w,
		Runs:       runs,
		Throughput: statistics.Calculate(throughputs),
	}, nil
}
