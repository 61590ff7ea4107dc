// Package gbdtkernel provides the numeric kernels used to grow
// histogram-based gradient boosted decision trees in Go.
//
// The kernels are the inner loop of a tree trainer: they run once per
// candidate split, per node, per boosting iteration. The library does not
// search thresholds, build histograms or manage trees. It supplies the
// primitives a tree grower calls.
//
// # Features
//
//   - Lane-structured summation with an optional float64 accumulator for
//     float32 data
//   - Leaf weight and gain with L2 regularization and monotone constraints
//   - Weighted percentile binning with 16-bit bin codes, 0 reserved for missing
//   - In-place O(n) partitioning of sample indices with missing-value routing
//
// # Installation
//
//	go get github.com/YuminosukeSato/gbdtkernel
//
// # Quick Start
//
//	p := params.Default()
//	binned, err := binning.NewBinner(p).BinMatrix(X, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	col := binned[0]
//	low, missing, err := partition.OnSplitExcludeMissing(index, col.Codes, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	left := leaf.StatsOf(g[missing:low], h[missing:low])
//	right := leaf.StatsOf(g[low:], h[low:])
//	split := leaf.SplitGain(p.L2, left, right, math.Inf(-1), math.Inf(1), nil)
//
// See examples/kernels for a complete program.
//
// # Packages
//
//   - core/numeric: NaiveSum, FastSum, FastF64Sum and ParallelSum
//   - core/constraint: monotone constraint tags
//   - core/params: configuration with LightGBM and scikit-learn aliases
//   - core/parallel: goroutine fan-out over contiguous ranges
//   - leaf: leaf weight, gain and split evaluation
//   - binning: Percentiles, MapBin and the column and matrix binning drivers
//   - partition: OnSplit and OnSplitExcludeMissing
//   - pkg/errors: structured errors on cockroachdb/errors
//   - pkg/log: zerolog and slog logging
//
// # Errors
//
// Contract violations such as an empty percentile request, a zero weight
// total or an all-missing slice passed to OnSplitExcludeMissing are
// returned as errors to the caller. They are never logged and dropped.
//
// # Concurrency
//
// The kernels keep no state between calls and may run concurrently as long
// as each call has exclusive access to the index slice it partitions. The
// runs produced by a partition are disjoint subslices, so child nodes can be
// processed in parallel without locks.
//
// # License
//
// gbdtkernel is released under the MIT License.
package gbdtkernel
