package numeric

import (
	"github.com/YuminosukeSato/gbdtkernel/core/parallel"
)

// ParallelSum splits values into one contiguous chunk per worker, reduces
// each chunk with FastSum and reduces the partial totals with FastSum again.
// workers <= 0 means one per CPU. Inputs no longer than threshold, or a
// single worker, are summed inline.
func ParallelSum[T Float](values []T, workers, threshold int) T {
	if len(values) <= threshold || workers == 1 {
		return FastSum(values)
	}
	partials := parallel.MapN(workers, len(values), func(start, end int) T {
		return FastSum(values[start:end])
	})
	return FastSum(partials)
}
