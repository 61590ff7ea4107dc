// Package partition reorders a node's sample index array in place around a
// split threshold on a feature's bin codes.
//
// Both partitions are single-pass two-pointer scans. They never sort, never
// allocate, and leave an element where it is unless it sits on the wrong
// side of the boundary, so running them on an already partitioned slice
// performs no swaps and returns the same split points.
//
// The index array holds row numbers into the bin-code column. After a call
// the left and right runs are disjoint subslices of index, which lets child
// nodes be processed concurrently without copying or locking.
package partition

import (
	"golang.org/x/exp/constraints"

	"github.com/YuminosukeSato/gbdtkernel/pkg/errors"
)

// MissingBin is the bin code reserved for a missing feature value. Every
// real bin code is >= 1.
const MissingBin uint16 = 0

// IsMissing reports whether code is the missing sentinel.
func IsMissing(code uint16) bool {
	return code == MissingBin
}

// Order is the result of comparing a split threshold with a bin code.
type Order int8

const (
	// Less means the threshold is below the code: the sample goes right.
	Less Order = -1
	// Equal means the code equals the threshold: the sample goes right.
	Equal Order = 0
	// Greater means the code is below the threshold: the sample goes left.
	Greater Order = 1
)

func (o Order) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "unknown"
	}
}

// MissingCompare compares split with code. A missing code compares as Less
// when missingRight is set, sending it right, and as Greater otherwise.
// Real codes compare by integer order.
func MissingCompare(split, code uint16, missingRight bool) Order {
	if IsMissing(code) {
		if missingRight {
			return Less
		}
		return Greater
	}
	switch {
	case split < code:
		return Less
	case split > code:
		return Greater
	default:
		return Equal
	}
}

// OnSplit partitions index so that index[:s] holds the samples whose code is
// below split and index[s:] the samples at or above it. Missing samples go
// to the side chosen by missingRight. It returns s.
func OnSplit[I constraints.Integer](index []I, codes []uint16, split uint16, missingRight bool) int {
	goesLeft := func(i I) bool {
		return MissingCompare(split, codes[i], missingRight) == Greater
	}

	low, high := 0, len(index)
	for low < high {
		if goesLeft(index[low]) {
			low++
			continue
		}
		// index[low] belongs right. Skip the tail that is already in place
		// and pull the last misplaced element down to low.
		for high-1 > low && !goesLeft(index[high-1]) {
			high--
		}
		high--
		if high > low {
			index[low], index[high] = index[high], index[low]
			low++
		}
	}
	return low
}

// OnSplitExcludeMissing partitions index into three runs and returns
// (low, missing):
//
//	index[:missing]     samples whose code is MissingBin
//	index[missing:low]  real codes below split
//	index[low:]         codes at or above split
//
// split must not be MissingBin. When every sample is missing the runs are
// meaningless as a split: the index is left a valid permutation and
// errors.ErrAllMissing is returned with low == missing == len(index).
func OnSplitExcludeMissing[I constraints.Integer](index []I, codes []uint16, split uint16) (low, missing int, err error) {
	if IsMissing(split) {
		return 0, 0, errors.NewValueErrorf("OnSplitExcludeMissing", "split value %d is the missing bin", split)
	}

	goesRight := func(i I) bool {
		c := codes[i]
		return !IsMissing(c) && c >= split
	}

	high := len(index)
	for low < high {
		c := codes[index[low]]
		if IsMissing(c) {
			// index[missing:low] are real codes below split, so rotating
			// the first of them up to low keeps the middle run intact.
			index[missing], index[low] = index[low], index[missing]
			missing++
			low++
			continue
		}
		if c < split {
			low++
			continue
		}
		for high-1 > low && goesRight(index[high-1]) {
			high--
		}
		high--
		if high > low {
			// The incoming element is missing or below split; it is
			// classified on the next pass without advancing low.
			index[low], index[high] = index[high], index[low]
		}
	}

	if len(index) > 0 && missing == len(index) {
		return low, missing, errors.WithStack(errors.ErrAllMissing)
	}
	return low, missing, nil
}
