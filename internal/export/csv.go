// Package export writes benchmark results to CSV for plotting.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/fpierfederici/redbench/internal/bench"
)

// RunsToCSV exports one row per repetition plus a trailing aggregate row.
func RunsToCSV(sum *bench.Summary, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Run", "Mode", "Workers", "ElapsedSeconds", "Operations",
		"Throughput", "LatencyP50us", "LatencyP95us", "LatencyP99us",
		"Mismatches", "WorkerFailures", "Cancelled",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for i, r := range sum.Runs {
		row := []string{
			fmt.Sprintf("%d", i+1),
			string(sum.Workload.Mode),
			fmt.Sprintf("%d", r.Workers),
			fmt.Sprintf("%.4f", r.Elapsed.Seconds()),
			fmt.Sprintf("%d", r.Completed),
			fmt.Sprintf("%.2f", r.Throughput),
			fmt.Sprintf("%.1f", float64(r.LatencyP50.Microseconds())),
			fmt.Sprintf("%.1f", float64(r.LatencyP95.Microseconds())),
			fmt.Sprintf("%.1f", float64(r.LatencyP99.Microseconds())),
			fmt.Sprintf("%d", r.Mismatches),
			fmt.Sprintf("%d", r.WorkerFailures),
			fmt.Sprintf("%t", r.Cancelled),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	aggregate := []string{
		"aggregate",
		string(sum.Workload.Mode),
		"",
		"",
		"",
		fmt.Sprintf("best=%.2f worst=%.2f mean=%.2f stddev=%.2f",
			sum.Throughput.Max, sum.Throughput.Min, sum.Throughput.Mean, sum.Throughput.StdDev),
		"", "", "", "", "", "",
	}
	if err := writer.Write(aggregate); err != nil {
		return fmt.Errorf("write CSV aggregate row: %w", err)
	}

	return nil
}
