// Package binning turns continuous feature values into 16-bit bin codes.
//
// Percentiles and MapBin are the low-level kernels. Cuts, BinColumn and
// BinMatrix build on them to discretize whole columns, with code 0
// reserved for missing values.
package binning

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/gbdtkernel/core/numeric"
	"github.com/YuminosukeSato/gbdtkernel/pkg/errors"
)

// Percentiles returns one value of v per requested level, using the
// cumulative normalized weight of the values in ascending order. A value
// is emitted for a level once the cumulative weight reaches it, so values
// repeat when one sample satisfies several levels. Level 0 always matches
// the smallest value, and levels left unreached by rounding emit the
// largest value.
//
// levels must be non-decreasing and within [0, 1]; v must not contain NaN.
func Percentiles[T numeric.Float](v, sampleWeight, levels []T) ([]T, error) {
	const op = "Percentiles"

	if len(levels) == 0 {
		return nil, errors.NewValueError(op, "no percentile levels requested")
	}
	for i, l := range levels {
		if !(l >= 0 && l <= 1) {
			return nil, errors.NewValueErrorf(op, "level %v at position %d is outside [0, 1]", l, i)
		}
		if i > 0 && l < levels[i-1] {
			return nil, errors.NewValueErrorf(op, "levels decrease at position %d (%v after %v)", i, l, levels[i-1])
		}
	}
	if len(v) == 0 {
		return nil, errors.NewValueError(op, "no values to take percentiles of")
	}
	if len(sampleWeight) != len(v) {
		return nil, errors.NewDimensionError(op, "sampleWeight", len(v), len(sampleWeight))
	}
	for i, x := range v {
		if math.IsNaN(float64(x)) {
			return nil, errors.NewValueErrorf(op, "value at position %d is NaN", i)
		}
	}

	total := numeric.FastSum(sampleWeight)
	if err := errors.CheckDenominator(op, float64(total)); err != nil {
		return nil, err
	}

	idx := make([]int, len(v))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	out := make([]T, 0, len(levels))
	k := 0
	current := levels[0]
	var cumulative T
	for _, i := range idx {
		cumulative += sampleWeight[i] / total
		if current != 0 && cumulative < current {
			continue
		}
		for current == 0 || cumulative >= current {
			out = append(out, v[i])
			k++
			if k == len(levels) {
				return out, nil
			}
			current = levels[k]
		}
	}

	largest := v[idx[len(idx)-1]]
	for len(out) < len(levels) {
		out = append(out, largest)
	}
	return out, nil
}
