// Package display renders benchmark results as fixed-width tables on stdout.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/fpierfederici/redbench/internal/bench"
)

// Header prints the run configuration block before the benchmark starts.
func Header(addr string, w bench.Workload, repetitions int) {
	fmt.Println("Redis Round-Trip Benchmark")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Endpoint:     %s\n", addr)
	fmt.Printf("Mode:         %s\n", w.Mode)
	fmt.Printf("Operations:   %d\n", w.TotalOps)
	fmt.Printf("Worker Hint:  %d\n", w.WorkerHint)
	if w.ValueSize > 0 {
		fmt.Printf("Value Size:   %d bytes\n", w.ValueSize)
	}
	fmt.Printf("Repetitions:  %d\n", repetitions)
	fmt.Println()
}

// Summary prints the per-run table followed by the aggregate statistics.
func Summary(sum *bench.Summary) {
	fmt.Println()
	fmt.Println("RESULTS - Per Run")
	fmt.Println(strings.Repeat("=", 96))
	fmt.Printf("%-5s%-12s%-10s%-14s%-12s%-12s%-12s%-10s%-9s\n",
		"Run", "Elapsed", "Ops", "Throughput", "p50", "p95", "p99", "Mismatch", "Failed")
	fmt.Println(strings.Repeat("-", 96))

	for i, r := range sum.Runs {
		status := ""
		if r.Cancelled {
			status = " (cancelled)"
		}
		fmt.Printf("%-5d%-12s%-10d%-14s%-12s%-12s%-12s%-10d%-9d%s\n",
			i+1,
			r.Elapsed.Round(time.Millisecond),
			r.Completed,
			fmt.Sprintf("%.0f op/s", r.Throughput),
			r.LatencyP50.Round(time.Microsecond),
			r.LatencyP95.Round(time.Microsecond),
			r.LatencyP99.Round(time.Microsecond),
			r.Mismatches,
			r.WorkerFailures,
			status)
	}

	workers := 0
	if len(sum.Runs) > 0 {
		workers = sum.Runs[0].Workers
	}

	fmt.Println()
	fmt.Printf("AGGREGATE - Throughput over %d runs (%d workers)\n", len(sum.Runs), workers)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("%-15s%s\n", "Best", fmt.Sprintf("%.2f op/s", sum.Throughput.Max))
	fmt.Printf("%-15s%s\n", "Worst", fmt.Sprintf("%.2f op/s", sum.Throughput.Min))
	fmt.Printf("%-15s%s\n", "Mean", fmt.Sprintf("%.2f op/s", sum.Throughput.Mean))
	fmt.Printf("%-15s%s\n", "Median", fmt.Sprintf("%.2f op/s", sum.Throughput.Median))
	fmt.Printf("%-15s%s\n", "Std Dev", fmt.Sprintf("%.2f", sum.Throughput.StdDev))
	fmt.Printf("%-15s%s\n", "CV", fmt.Sprintf("%.2f%%", sum.Throughput.CV))
}
