package leaf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/YuminosukeSato/gbdtkernel/core/constraint"
)

func ptr(c constraint.Constraint) *constraint.Constraint { return &c }

func TestWeightAndGain(t *testing.T) {
	assert.Equal(t, -2.0, Weight(1.0, 6.0, 2.0))
	assert.Equal(t, 12.0, Gain(1.0, 6.0, 2.0))
	assert.Equal(t, float32(0.5), Weight(float32(0), float32(-1), float32(2)))
}

func TestGainGivenWeightPeaksAtOptimum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		l2 := rng.Float64() * 3
		g := rng.NormFloat64() * 5
		h := rng.Float64()*10 + 0.1
		w := Weight(l2, g, h)

		best := GainGivenWeight(l2, g, h, w)
		require.True(t, scalar.EqualWithinAbsOrRel(Gain(l2, g, h), best, 1e-9, 1e-9))

		delta := rng.Float64() + 0.01
		assert.Less(t, GainGivenWeight(l2, g, h, w+delta), best)
		assert.Less(t, GainGivenWeight(l2, g, h, w-delta), best)
	}
}

func TestConstrainedWeight(t *testing.T) {
	tests := []struct {
		name string
		g, h float64
		c    *constraint.Constraint
		want float64
	}{
		{"nil passes through", -10, 1, nil, 10},
		{"unconstrained passes through", -10, 1, ptr(constraint.Unconstrained), 10},
		{"positive clamps above", -10, 1, ptr(constraint.Positive), 1},
		{"negative clamps below", 10, 1, ptr(constraint.Negative), -1},
		{"inside bounds untouched", -0.5, 1, ptr(constraint.Positive), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstrainedWeight(0.0, tt.g, tt.h, -1.0, 1.0, tt.c))
		})
	}
}

func TestConstrainedWeightWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	all := []*constraint.Constraint{nil, ptr(constraint.Unconstrained), ptr(constraint.Positive), ptr(constraint.Negative)}
	for i := 0; i < 500; i++ {
		l2 := rng.Float64() * 2
		g := rng.NormFloat64() * 20
		h := rng.Float64() * 10
		lower := -rng.Float64() * 2
		upper := rng.Float64() * 2
		for _, c := range all {
			got := ConstrainedWeight(l2, g, h, lower, upper, c)
			if c != nil && c.IsMonotone() {
				assert.GreaterOrEqual(t, got, lower)
				assert.LessOrEqual(t, got, upper)
			} else {
				assert.Equal(t, Weight(l2, g, h), got)
			}
		}
	}
}

func TestCullGain(t *testing.T) {
	negInf := math.Inf(-1)
	tests := []struct {
		name   string
		lw, rw float64
		c      *constraint.Constraint
		want   float64
	}{
		{"nil", 2, 1, nil, 5},
		{"unconstrained", 2, 1, ptr(constraint.Unconstrained), 5},
		{"positive ordered", 1, 2, ptr(constraint.Positive), 5},
		{"positive equal", 1, 1, ptr(constraint.Positive), 5},
		{"positive violated", 2, 1, ptr(constraint.Positive), negInf},
		{"negative ordered", 2, 1, ptr(constraint.Negative), 5},
		{"negative equal", 1, 1, ptr(constraint.Negative), 5},
		{"negative violated", 1, 2, ptr(constraint.Negative), negInf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CullGain(5.0, tt.lw, tt.rw, tt.c))
		})
	}

	assert.True(t, math.IsInf(float64(CullGain(float32(1), 3, 2, ptr(constraint.Positive))), -1))
}

func TestSplitGain(t *testing.T) {
	left := Stats[float64]{Gradient: 4, Hessian: 3}
	right := Stats[float64]{Gradient: -4, Hessian: 3}

	t.Run("unconstrained equals sum of gains", func(t *testing.T) {
		s := SplitGain(1.0, left, right, math.Inf(-1), math.Inf(1), nil)
		assert.InDelta(t, Gain(1.0, 4.0, 3.0)+Gain(1.0, -4.0, 3.0), s.Gain, 1e-12)
		assert.Equal(t, -1.0, s.LeftWeight)
		assert.Equal(t, 1.0, s.RightWeight)
	})

	t.Run("positive keeps increasing children", func(t *testing.T) {
		s := SplitGain(1.0, left, right, math.Inf(-1), math.Inf(1), ptr(constraint.Positive))
		assert.False(t, math.IsInf(s.Gain, -1))
	})

	t.Run("negative culls increasing children", func(t *testing.T) {
		s := SplitGain(1.0, left, right, math.Inf(-1), math.Inf(1), ptr(constraint.Negative))
		assert.True(t, math.IsInf(s.Gain, -1))
	})

	t.Run("bounds lower the gain", func(t *testing.T) {
		free := SplitGain(1.0, left, right, -0.5, 0.5, nil)
		bound := SplitGain(1.0, left, right, -0.5, 0.5, ptr(constraint.Positive))
		assert.Equal(t, -0.5, bound.LeftWeight)
		assert.Equal(t, 0.5, bound.RightWeight)
		assert.Less(t, bound.Gain, free.Gain)
	})
}

func TestStats(t *testing.T) {
	parent := StatsOf([]float64{1, 2, 3, -1}, []float64{1, 1, 1, 1})
	assert.Equal(t, Stats[float64]{Gradient: 5, Hessian: 4}, parent)

	left := Stats[float64]{Gradient: 3, Hessian: 2}
	right := parent.Sub(left)
	assert.Equal(t, Stats[float64]{Gradient: 2, Hessian: 2}, right)
	assert.Equal(t, parent, left.Add(right))
}
