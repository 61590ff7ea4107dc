package leaf

import (
	"github.com/YuminosukeSato/gbdtkernel/core/constraint"
	"github.com/YuminosukeSato/gbdtkernel/core/numeric"
)

// Stats is the gradient and hessian aggregate of one side of a candidate split.
type Stats[T numeric.Float] struct {
	Gradient T
	Hessian  T
}

// Add returns the element-wise sum of s and o.
func (s Stats[T]) Add(o Stats[T]) Stats[T] {
	return Stats[T]{Gradient: s.Gradient + o.Gradient, Hessian: s.Hessian + o.Hessian}
}

// Sub returns the element-wise difference of s and o, which is how the
// right side of a split is usually derived from the parent total.
func (s Stats[T]) Sub(o Stats[T]) Stats[T] {
	return Stats[T]{Gradient: s.Gradient - o.Gradient, Hessian: s.Hessian - o.Hessian}
}

// StatsOf reduces per-sample gradients and hessians with the lane sum.
func StatsOf[T numeric.Float](gradients, hessians []T) Stats[T] {
	return Stats[T]{Gradient: numeric.FastSum(gradients), Hessian: numeric.FastSum(hessians)}
}

// Split is the evaluation of one candidate split.
type Split[T numeric.Float] struct {
	Gain        T
	LeftWeight  T
	RightWeight T
}

// SplitGain evaluates a split the caller has already chosen. Both children
// get ConstrainedWeight within [lowerBound, upperBound], their
// GainGivenWeight values are added, and the total is culled with CullGain
// when the children are ordered against c.
func SplitGain[T numeric.Float](l2 T, left, right Stats[T], lowerBound, upperBound T, c *constraint.Constraint) Split[T] {
	lw := ConstrainedWeight(l2, left.Gradient, left.Hessian, lowerBound, upperBound, c)
	rw := ConstrainedWeight(l2, right.Gradient, right.Hessian, lowerBound, upperBound, c)
	gain := GainGivenWeight(l2, left.Gradient, left.Hessian, lw) +
		GainGivenWeight(l2, right.Gradient, right.Hessian, rw)
	return Split[T]{
		Gain:        CullGain(gain, lw, rw, c),
		LeftWeight:  lw,
		RightWeight: rw,
	}
}
