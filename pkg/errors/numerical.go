package errors

import "math"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckNumericalStability returns a NumericalInstabilityError carrying all
// of values if any of them is NaN or ±Inf.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if !finite(v) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar is CheckNumericalStability for one value.
func CheckScalar(operation string, value float64, iteration int) error {
	if finite(value) {
		return nil
	}
	return NewNumericalInstabilityError(operation, []float64{value}, iteration)
}

// CheckDenominator rejects a value that is about to be divided by.
// Zero yields a ValueError, NaN or Inf a NumericalInstabilityError.
// Nothing is clamped or replaced: a NaN gain must never leave the kernel.
func CheckDenominator(operation string, value float64) error {
	if err := CheckScalar(operation, value, 0); err != nil {
		return err
	}
	if value == 0 {
		return NewValueError(operation, "denominator is zero")
	}
	return nil
}
