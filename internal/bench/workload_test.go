package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEvenDivision(t *testing.T) {
	chunks, err := Split(20000, 100)
	require.NoError(t, err)

	require.Len(t, chunks, 100)
	for i, c := range chunks {
		assert.Equal(t, i, c.Owner)
		assert.Equal(t, 200, c.Ops)
	}
}

func TestSplitPrimeTotal(t *testing.T) {
	// 17 has no divisor between 5 and 17, so every operation gets its own
	// worker.
	chunks, err := Split(17, 5)
	require.NoError(t, err)

	require.Len(t, chunks, 17)
	for i, c := range chunks {
		assert.Equal(t, i, c.Owner)
		assert.Equal(t, 1, c.Ops)
	}
}

func TestSplitSmallestDivisor(t *testing.T) {
	tests := []struct {
		total       int
		hint        int
		wantWorkers int
	}{
		{total: 100, hint: 1, wantWorkers: 1},
		{total: 100, hint: 3, wantWorkers: 4},
		{total: 100, hint: 7, wantWorkers: 10},
		{total: 100, hint: 100, wantWorkers: 100},
		{total: 12, hint: 5, wantWorkers: 6},
	}

	for _, tt := range tests {
		chunks, err := Split(tt.total, tt.hint)
		require.NoError(t, err)
		assert.Len(t, chunks, tt.wantWorkers, "Split(%d, %d)", tt.total, tt.hint)

		// The chosen count must be >= hint, divide total exactly, and be
		// minimal among divisors >= hint.
		w := len(chunks)
		assert.GreaterOrEqual(t, w, tt.hint)
		assert.Zero(t, tt.total%w)
		for cand := tt.hint; cand < w; cand++ {
			assert.NotZero(t, tt.total%cand, "smaller divisor %d exists", cand)
		}

		sum := 0
		for _, c := range chunks {
			sum += c.Ops
		}
		assert.Equal(t, tt.total, sum)
	}
}

func TestSplitHintLargerThanTotal(t *testing.T) {
	chunks, err := Split(8, 50)
	require.NoError(t, err)
	assert.Len(t, chunks, 8)
	for _, c := range chunks {
		assert.Equal(t, 1, c.Ops)
	}
}

func TestSplitRejectsNonPositiveInputs(t *testing.T) {
	_, err := Split(0, 4)
	assert.Error(t, err)

	_, err = Split(-5, 4)
	assert.Error(t, err)

	_, err = Split(100, 0)
	assert.Error(t, err)
}

func TestSplitDeterministic(t *testing.T) {
	a, err := Split(3600, 48)
	require.NoError(t, err)
	b, err := Split(3600, 48)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKeysUniqueAcrossChunks(t *testing.T) {
	chunks, err := Split(5000, 25)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for _, c := range chunks {
		for i := 0; i < c.Ops; i++ {
			k := Key("ns", c.Owner, i)
			_, dup := seen[k]
			require.False(t, dup, "duplicate key %s", k)
			seen[k] = struct{}{}
		}
	}
	assert.Len(t, seen, 5000)
}

func TestNewWorkloadNamespacesDiffer(t *testing.T) {
	a := NewWorkload(100, 4, ModeSequential)
	b := NewWorkload(100, 4, ModeSequential)
	assert.NotEmpty(t, a.Namespace)
	assert.NotEqual(t, a.Namespace, b.Namespace)
}

func TestValuePadding(t *testing.T) {
	v := Value(3, 7, 0)
	assert.Equal(t, "val-3-0000000007", v)

	padded := Value(3, 7, 64)
	assert.Len(t, padded, 64)
	assert.Contains(t, padded, "val-3-0000000007")

	// Padding never truncates.
	assert.Equal(t, v, Value(3, 7, 4))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("sequential")
	require.NoError(t, err)
	assert.Equal(t, ModeSequential, m)

	m, err = ParseMode("pipelined")
	require.NoError(t, err)
	assert.Equal(t, ModePipelined, m)

	_, err = ParseMode("batched")
	assert.Error(t, err)
}
