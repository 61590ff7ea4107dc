// Package numeric holds the summation kernels shared by binning and the
// leaf statistics. Every sum of gradients, hessians or sample weights in the
// library goes through one of these functions.
package numeric

import (
	"golang.org/x/exp/constraints"
)

// Float is the element type accepted by the generic kernels.
type Float interface {
	constraints.Float
}

// Lanes is the number of independent accumulators FastSum keeps.
const Lanes = 16

// NaiveSum folds values left to right. It is the reference the other
// variants are checked against.
func NaiveSum[T Float](values []T) T {
	var sum T
	for _, v := range values {
		sum += v
	}
	return sum
}

// FastSum sums values with Lanes running totals, one per position inside a
// chunk of Lanes elements. The lanes are folded in order after the last
// whole chunk and the remainder is summed on its own and added last.
//
// The order of additions differs from NaiveSum, so results agree only
// within floating point tolerance.
func FastSum[T Float](values []T) T {
	var acc [Lanes]T
	n := len(values) - len(values)%Lanes
	for i := 0; i < n; i += Lanes {
		chunk := values[i : i+Lanes : i+Lanes]
		for l := 0; l < Lanes; l++ {
			acc[l] += chunk[l]
		}
	}

	var remainder T
	for _, v := range values[n:] {
		remainder += v
	}

	var reduced T
	for _, s := range acc {
		reduced += s
	}
	return reduced + remainder
}

// FastF64Sum has the lane layout of FastSum but widens every float32 to
// float64 before adding it and narrows only the final total. Summing N
// copies of v this way gives v*N exactly whenever v*N is representable as
// a float32, which a float32 accumulator does not for large N.
func FastF64Sum(values []float32) float32 {
	var acc [Lanes]float64
	n := len(values) - len(values)%Lanes
	for i := 0; i < n; i += Lanes {
		chunk := values[i : i+Lanes : i+Lanes]
		for l := 0; l < Lanes; l++ {
			acc[l] += float64(chunk[l])
		}
	}

	var remainder float64
	for _, v := range values[n:] {
		remainder += float64(v)
	}

	var reduced float64
	for _, s := range acc {
		reduced += s
	}
	return float32(reduced + remainder)
}
