package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	stats := Calculate(values)

	assert.InDelta(t, 30, stats.Mean, 1e-9)
	assert.InDelta(t, 30, stats.Median, 1e-9)
	assert.InDelta(t, 10, stats.Min, 1e-9)
	assert.InDelta(t, 50, stats.Max, 1e-9)
	assert.InDelta(t, 15.811, stats.StdDev, 0.001)
	assert.InDelta(t, 52.705, stats.CV, 0.001)
	assert.Equal(t, values, stats.Values)
}

func TestCalculatePreservesRunOrder(t *testing.T) {
	values := []float64{3, 1, 2}
	stats := Calculate(values)
	assert.Equal(t, []float64{3, 1, 2}, stats.Values)
	assert.InDelta(t, 1, stats.Min, 1e-9)
	assert.InDelta(t, 3, stats.Max, 1e-9)
}

func TestCalculateSingleValue(t *testing.T) {
	stats := Calculate([]float64{42})
	assert.InDelta(t, 42, stats.Mean, 1e-9)
	assert.Zero(t, stats.StdDev)
	assert.Zero(t, stats.CV)
}

func TestCalculateEmpty(t *testing.T) {
	assert.Equal(t, Stats{}, Calculate(nil))
}
