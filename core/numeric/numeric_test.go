package numeric

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestSumsEmpty(t *testing.T) {
	assert.Equal(t, 0.0, NaiveSum([]float64{}))
	assert.Equal(t, 0.0, FastSum([]float64(nil)))
	assert.Equal(t, float32(0), FastF64Sum(nil))
	assert.Equal(t, 0.0, ParallelSum([]float64{}, 4, 0))
}

func TestFastSumMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	// Lengths around the lane width exercise the chunk and remainder paths.
	for _, n := range []int{1, 5, Lanes - 1, Lanes, Lanes + 1, 3 * Lanes, 1000, 4099} {
		values := make([]float64, n)
		for i := range values {
			values[i] = rng.NormFloat64() * 10
		}

		want := floats.Sum(values)
		assert.True(t, scalar.EqualWithinAbsOrRel(want, NaiveSum(values), 1e-9, 1e-12), "naive n=%d", n)
		assert.True(t, scalar.EqualWithinAbsOrRel(want, FastSum(values), 1e-9, 1e-12), "fast n=%d", n)
		assert.True(t, scalar.EqualWithinAbsOrRel(want, ParallelSum(values, 4, 64), 1e-9, 1e-12), "parallel n=%d", n)
	}
}

func TestFastSumFloat32(t *testing.T) {
	values := make([]float32, 37)
	for i := range values {
		values[i] = float32(i)
	}
	// Small integers are exact in float32, so every variant is exact.
	assert.Equal(t, float32(666), FastSum(values))
	assert.Equal(t, float32(666), NaiveSum(values))
	assert.Equal(t, float32(666), FastF64Sum(values))
}

func TestFastF64Sum(t *testing.T) {
	const records = 300000
	values := make([]float32, records)
	for i := range values {
		values[i] = 0.23500371
	}

	want := values[0] * float32(records)
	assert.NotEqual(t, want, NaiveSum(values))
	assert.Equal(t, want, FastF64Sum(values))
}

func TestParallelSumBelowThreshold(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 15.0, ParallelSum(values, 0, 100))
}

func TestParallelSumWorkers(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	values := make([]float64, 5000)
	for i := range values {
		values[i] = rng.NormFloat64()
	}
	want := floats.Sum(values)

	// One worker never fans out.
	assert.Equal(t, FastSum(values), ParallelSum(values, 1, 0))

	tests := []struct {
		name    string
		workers int
	}{
		{"two", 2},
		{"three", 3},
		{"more workers than useful", 64},
		{"one per CPU", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParallelSum(values, tt.workers, 0)
			assert.True(t, scalar.EqualWithinAbsOrRel(want, got, 1e-9, 1e-12))
			// Fixed worker count, fixed chunking, same result.
			assert.Equal(t, got, ParallelSum(values, tt.workers, 0))
		})
	}
}

func BenchmarkNaiveSum(b *testing.B) {
	values := make([]float64, 100000)
	for i := range values {
		values[i] = float64(i % 97)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NaiveSum(values)
	}
}

func BenchmarkFastSum(b *testing.B) {
	values := make([]float64, 100000)
	for i := range values {
		values[i] = float64(i % 97)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FastSum(values)
	}
}

func BenchmarkFastF64Sum(b *testing.B) {
	values := make([]float32, 100000)
	for i := range values {
		values[i] = float32(i%97) * 0.25
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = FastF64Sum(values)
	}
}
