// Package statistics computes summary measures over repeated run
// throughputs.
package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats holds statistical measures for a metric across runs.
type Stats struct {
	Median float64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	CV     float64 // Coefficient of Variation (%)
	Values []float64
}

// Calculate computes all measures for a slice of values.
func Calculate(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := stat.Mean(sorted, nil)
	sd := 0.0
	if len(sorted) >= 2 {
		sd = stat.StdDev(sorted, nil)
	}
	cv := 0.0
	if mean != 0 {
		cv = sd / math.Abs(mean) * 100
	}

	// Keep the original run order for raw exports.
	valuesCopy := make([]float64, len(values))
	copy(valuesCopy, values)

	return Stats{
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Mean:   mean,
		StdDev: sd,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		CV:     cv,
		Values: valuesCopy,
	}
}
