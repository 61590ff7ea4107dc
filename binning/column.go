package binning

import (
	"math"
	"time"

	"github.com/kelindar/bitmap"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gbdtkernel/core/params"
	"github.com/YuminosukeSato/gbdtkernel/core/parallel"
	"github.com/YuminosukeSato/gbdtkernel/partition"
	"github.com/YuminosukeSato/gbdtkernel/pkg/errors"
	"github.com/YuminosukeSato/gbdtkernel/pkg/log"
)

// Cuts computes the bin boundaries of one feature column. It takes nbins
// evenly spaced weighted percentiles of the non-missing values, replaces
// the lowest with -Inf, appends +Inf and drops repeated boundaries. Mapping
// any non-missing value through MapBin with the result yields a code >= 1.
//
// weights may be nil for unit weights.
func Cuts(values, weights []float64, nbins int) ([]float64, error) {
	const op = "Cuts"

	if nbins < 1 {
		return nil, errors.NewValueErrorf(op, "nbins must be positive, got %d", nbins)
	}
	if weights == nil {
		weights = ones(len(values))
	}
	if len(weights) != len(values) {
		return nil, errors.NewDimensionError(op, "weights", len(values), len(weights))
	}

	v, w := values, weights
	if floats.HasNaN(values) {
		v = make([]float64, 0, len(values))
		w = make([]float64, 0, len(values))
		for i, x := range values {
			if !math.IsNaN(x) {
				v = append(v, x)
				w = append(w, weights[i])
			}
		}
	}
	if len(v) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "%s: all %d values are missing", op, len(values))
	}

	levels := make([]float64, nbins)
	for i := range levels {
		levels[i] = float64(i) / float64(nbins)
	}
	p, err := Percentiles(v, w, levels)
	if err != nil {
		return nil, err
	}

	p[0] = math.Inf(-1)
	p = append(p, math.Inf(1))

	cuts := p[:1]
	for _, c := range p[1:] {
		if c != cuts[len(cuts)-1] {
			cuts = append(cuts, c)
		}
	}
	return cuts, nil
}

func ones(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// BinnedColumn is one feature column mapped to bin codes.
type BinnedColumn struct {
	// Codes holds one bin code per row; partition.MissingBin marks NaN rows.
	Codes []uint16
	// Cuts are the boundaries the codes were mapped through.
	Cuts []float64
	// Missing has a bit set for every row whose value was NaN.
	Missing bitmap.Bitmap
}

// IsMissing reports whether row had a missing value.
func (c *BinnedColumn) IsMissing(row int) bool {
	return c.Missing.Contains(uint32(row))
}

// MissingCount returns the number of missing rows.
func (c *BinnedColumn) MissingCount() int {
	return c.Missing.Count()
}

// AllMissing reports whether every row of c named in index is missing.
// Callers check it before partitioning a node with
// partition.OnSplitExcludeMissing, using the same index type.
func AllMissing[I constraints.Integer](c *BinnedColumn, index []I) bool {
	for _, row := range index {
		if !c.Missing.Contains(uint32(row)) {
			return false
		}
	}
	return len(index) > 0
}

// Binner builds bin codes for columns and matrices.
type Binner struct {
	// MaxBin is the number of percentile levels requested per column.
	MaxBin int
	// NumThreads bounds the columns binned concurrently by BinMatrix.
	NumThreads int

	logger log.Logger
}

// NewBinner returns a Binner configured from p, logging through the
// package default logger.
func NewBinner(p params.Params) *Binner {
	return &Binner{
		MaxBin:     p.MaxBin,
		NumThreads: p.NumThreads,
		logger:     log.GetLogger().With(log.ComponentKey, "binning"),
	}
}

// WithLogger returns a copy of b that logs to l.
func (b *Binner) WithLogger(l log.Logger) *Binner {
	c := *b
	c.logger = l.With(log.ComponentKey, "binning")
	return &c
}

// BinColumn computes cuts for values and maps every row to its code.
func (b *Binner) BinColumn(values, weights []float64) (*BinnedColumn, error) {
	return b.binColumn(-1, values, weights)
}

func (b *Binner) binColumn(feature int, values, weights []float64) (*BinnedColumn, error) {
	start := time.Now()

	cuts, err := Cuts(values, weights, b.MaxBin)
	if err != nil {
		if feature >= 0 {
			return nil, errors.Wrapf(err, "feature %d", feature)
		}
		return nil, err
	}

	col := &BinnedColumn{
		Codes: make([]uint16, len(values)),
		Cuts:  cuts,
	}
	for i, x := range values {
		if math.IsNaN(x) {
			col.Codes[i] = partition.MissingBin
			col.Missing.Set(uint32(i))
			continue
		}
		code, err := MapBin(cuts, x)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		col.Codes[i] = code
	}

	b.logger.Debug("column binned",
		log.OperationKey, log.OperationBinColumn,
		log.FeatureKey, feature,
		log.SamplesKey, len(values),
		log.MissingKey, col.MissingCount(),
		log.RequestedBinsKey, b.MaxBin,
		log.BinsKey, len(cuts),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return col, nil
}

// BinMatrix bins every column of X concurrently. weights may be nil. The
// first error by column order is returned.
func (b *Binner) BinMatrix(X mat.Matrix, weights []float64) ([]*BinnedColumn, error) {
	start := time.Now()
	rows, cols := X.Dims()
	if weights != nil && len(weights) != rows {
		return nil, errors.NewDimensionError("BinMatrix", "weights", rows, len(weights))
	}
	if err := errors.CheckNumericalStability("BinMatrix", weights, 0); err != nil {
		return nil, err
	}

	out := make([]*BinnedColumn, cols)
	errs := make([]error, cols)
	workers := parallel.Workers(b.NumThreads, cols)
	parallel.ParallelizeN(workers, cols, func(s, e int) {
		values := make([]float64, rows)
		for j := s; j < e; j++ {
			mat.Col(values, j, X)
			errs[j] = errors.SafeExecute("binning.BinMatrix", func() error {
				col, err := b.binColumn(j, values, weights)
				out[j] = col
				return err
			})
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	b.logger.Debug("matrix binned",
		log.OperationKey, log.OperationBinMatrix,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.WorkersKey, workers,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return out, nil
}
