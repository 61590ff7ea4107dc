package binning

import (
	"math"

	"github.com/YuminosukeSato/gbdtkernel/core/numeric"
	"github.com/YuminosukeSato/gbdtkernel/pkg/errors"
)

// MapBin returns the index of the first cut strictly greater than v.
// cuts must be ascending. NaN compares below every cut and maps to 0.
func MapBin[T numeric.Float](cuts []T, v T) (uint16, error) {
	low, high := 0, len(cuts)
	for low != high {
		mid := int(uint(low+high) >> 1)
		// False for NaN, which drives the search to 0.
		if cuts[mid] <= v {
			low = mid + 1
		} else {
			high = mid
		}
	}
	if low > math.MaxUint16 {
		return 0, errors.NewValueErrorf("MapBin", "bin index %d does not fit in 16 bits", low)
	}
	return uint16(low), nil
}
