// Package leaf computes leaf weights and split gains from aggregated
// gradient and hessian sums under L2 regularization, optionally honouring a
// monotonic constraint.
//
// All functions are pure and allocation free. A nil constraint behaves like
// constraint.Unconstrained.
package leaf

import (
	"math"

	"github.com/YuminosukeSato/gbdtkernel/core/constraint"
	"github.com/YuminosukeSato/gbdtkernel/core/numeric"
)

// Weight is the optimal value of a leaf holding the given sums:
// -(gradientSum / (hessianSum + l2)).
func Weight[T numeric.Float](l2, gradientSum, hessianSum T) T {
	return -(gradientSum / (hessianSum + l2))
}

// Gain is the score of isolating the given sums into one leaf:
// gradientSum² / (hessianSum + l2).
func Gain[T numeric.Float](l2, gradientSum, hessianSum T) T {
	return (gradientSum * gradientSum) / (hessianSum + l2)
}

// GainGivenWeight is the gain of a leaf forced to weight instead of its
// optimum. At weight == Weight(l2, g, h) it equals Gain(l2, g, h) and it
// falls off quadratically on either side.
func GainGivenWeight[T numeric.Float](l2, gradientSum, hessianSum, weight T) T {
	return -(2*gradientSum*weight + (hessianSum+l2)*(weight*weight))
}

// ConstrainedWeight is Weight clamped into [lowerBound, upperBound] when c
// is monotone. Otherwise the unconstrained weight is returned unchanged.
func ConstrainedWeight[T numeric.Float](l2, gradientSum, hessianSum, lowerBound, upperBound T, c *constraint.Constraint) T {
	weight := Weight(l2, gradientSum, hessianSum)
	if c == nil || !c.IsMonotone() {
		return weight
	}
	if weight > upperBound {
		return upperBound
	}
	if weight < lowerBound {
		return lowerBound
	}
	return weight
}

// CullGain returns negative infinity when the child weights violate c:
// leftWeight > rightWeight under Positive, leftWeight < rightWeight under
// Negative. Any other input returns gain unchanged.
func CullGain[T numeric.Float](gain, leftWeight, rightWeight T, c *constraint.Constraint) T {
	if c == nil {
		return gain
	}
	switch *c {
	case constraint.Positive:
		if leftWeight > rightWeight {
			return T(math.Inf(-1))
		}
	case constraint.Negative:
		if leftWeight < rightWeight {
			return T(math.Inf(-1))
		}
	}
	return gain
}
