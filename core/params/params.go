// Package params holds the configuration shared by the kernel drivers and
// maps LightGBM and scikit-learn parameter names onto it.
package params

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/YuminosukeSato/gbdtkernel/core/constraint"
	"github.com/YuminosukeSato/gbdtkernel/pkg/errors"
	"github.com/YuminosukeSato/gbdtkernel/pkg/log"
)

// Params configures the leaf statistics, binning and parallel drivers.
type Params struct {
	// L2 is the regularization added to every hessian sum.
	L2 float64 `json:"lambda_l2"`

	// MaxBin is the number of percentile levels requested per feature.
	MaxBin int `json:"max_bin"`

	// MonotoneConstraints holds one entry per feature: -1, 0 or 1.
	MonotoneConstraints []int `json:"monotone_constraints"`

	// NumThreads caps the goroutines used by the drivers. <= 0 means one per CPU.
	NumThreads int `json:"num_threads"`

	// ParallelThreshold is the input length below which sums stay on the
	// calling goroutine.
	ParallelThreshold int `json:"parallel_threshold"`
}

// Default returns the parameters used when nothing is configured.
func Default() Params {
	return Params{
		L2:                1.0,
		MaxBin:            256,
		NumThreads:        0,
		ParallelThreshold: 4096,
	}
}

// MaxBinLimit is the largest MaxBin whose codes still fit in 16 bits.
const MaxBinLimit = math.MaxUint16

// Validate checks every field and returns the first ValidationError found.
func (p *Params) Validate() error {
	if p.L2 < 0 || math.IsNaN(p.L2) || math.IsInf(p.L2, 0) {
		return errors.NewValidationError("lambda_l2", "must be a finite value >= 0", p.L2)
	}
	if p.MaxBin < 2 || p.MaxBin > MaxBinLimit {
		return errors.NewValidationError("max_bin", fmt.Sprintf("must be in [2, %d]", MaxBinLimit), p.MaxBin)
	}
	for i, v := range p.MonotoneConstraints {
		if v < -1 || v > 1 {
			return errors.NewValidationError("monotone_constraints", fmt.Sprintf("entry %d must be -1, 0 or 1", i), v)
		}
	}
	if p.ParallelThreshold < 0 {
		return errors.NewValidationError("parallel_threshold", "must be >= 0", p.ParallelThreshold)
	}
	return nil
}

// Constraints converts MonotoneConstraints into a constraint.Set.
func (p *Params) Constraints() (constraint.Set, error) {
	return constraint.FromInts(p.MonotoneConstraints)
}

// Load decodes JSON from r on top of Default and validates the result.
func Load(r io.Reader) (Params, error) {
	p := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, errors.Wrap(err, "decode params")
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}

	log.GetLogger().Debug("params loaded",
		log.ComponentKey, "params",
		log.OperationKey, log.OperationLoadParams,
		log.RegularizationKey, p.L2,
		log.RequestedBinsKey, p.MaxBin,
	)
	return p, nil
}

// aliases maps every accepted name to the canonical JSON name.
var aliases = map[string]string{}

func addMapping(canonical string, names ...string) {
	aliases[canonical] = canonical
	for _, n := range names {
		aliases[n] = canonical
	}
}

func init() {
	addMapping("lambda_l2", "reg_lambda", "l2_regularization", "lambda")
	addMapping("max_bin", "max_bins")
	addMapping("monotone_constraints", "monotone_constraint", "monotonic_cst")
	addMapping("num_threads", "n_jobs", "num_thread", "nthread")
	addMapping("parallel_threshold")
}

// Canonical returns the canonical name of a parameter or alias.
func Canonical(name string) (string, bool) {
	c, ok := aliases[strings.ToLower(name)]
	return c, ok
}

// FromMap builds Params from a loosely typed map such as a decoded Python
// kwargs dict. Unknown keys raise a ParameterWarning and are skipped.
func FromMap(m map[string]interface{}) (Params, error) {
	p := Default()

	// Sorted so warnings come out in a stable order.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := m[key]
		name, ok := Canonical(key)
		if !ok {
			errors.Warn(errors.NewParameterWarning(key, "unknown parameter"))
			continue
		}

		var err error
		switch name {
		case "lambda_l2":
			p.L2, err = toFloat(name, value)
		case "max_bin":
			p.MaxBin, err = toInt(name, value)
		case "num_threads":
			p.NumThreads, err = toInt(name, value)
		case "parallel_threshold":
			p.ParallelThreshold, err = toInt(name, value)
		case "monotone_constraints":
			p.MonotoneConstraints, err = toInts(name, value)
		}
		if err != nil {
			return Params{}, err
		}
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func toFloat(name string, v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, errors.NewValidationError(name, "must be a number", v)
}

func toInt(name string, v interface{}) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, errors.NewValidationError(name, "must be an integer", v)
		}
		return int(x), nil
	}
	return 0, errors.NewValidationError(name, "must be an integer", v)
}

func toInts(name string, v interface{}) ([]int, error) {
	switch x := v.(type) {
	case []int:
		return append([]int(nil), x...), nil
	case []interface{}:
		out := make([]int, len(x))
		for i, e := range x {
			n, err := toInt(name, e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, errors.NewValidationError(name, "must be a list of integers", v)
}
