// Package constraint defines the monotonic constraint tag attached to a
// feature and the per-feature lookup the leaf kernels consume.
package constraint

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/gbdtkernel/pkg/errors"
)

// Constraint restricts the direction of a feature's effect on predictions.
type Constraint uint8

const (
	// Unconstrained places no restriction on the feature.
	Unconstrained Constraint = iota
	// Positive requires predictions to be non-decreasing in the feature.
	Positive
	// Negative requires predictions to be non-increasing in the feature.
	Negative
)

func (c Constraint) String() string {
	switch c {
	case Unconstrained:
		return "unconstrained"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "Constraint(" + strconv.Itoa(int(c)) + ")"
	}
}

// IsMonotone reports whether c is Positive or Negative.
func (c Constraint) IsMonotone() bool {
	return c == Positive || c == Negative
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (c Constraint) MarshalZerologObject(e *zerolog.Event) {
	e.Str("constraint", c.String())
}

// Parse converts a user-facing name into a Constraint.
func Parse(s string) (Constraint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unconstrained", "none", "0", "":
		return Unconstrained, nil
	case "positive", "increasing", "1", "+1":
		return Positive, nil
	case "negative", "decreasing", "-1":
		return Negative, nil
	}
	return Unconstrained, errors.NewValueErrorf("constraint.Parse", "unknown constraint %q", s)
}

// FromInt converts the LightGBM monotone_constraints encoding
// (-1, 0, 1) into a Constraint.
func FromInt(v int) (Constraint, error) {
	switch v {
	case 0:
		return Unconstrained, nil
	case 1:
		return Positive, nil
	case -1:
		return Negative, nil
	}
	return Unconstrained, errors.NewValueErrorf("constraint.FromInt", "monotone constraint must be -1, 0 or 1, got %d", v)
}

// Set maps feature indices to their constraint. Features without an entry
// are unconstrained.
type Set map[int]Constraint

// FromInts builds a Set from a LightGBM style list, one entry per feature.
// Zero entries are left out of the Set.
func FromInts(values []int) (Set, error) {
	s := make(Set)
	for feature, v := range values {
		c, err := FromInt(v)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", feature)
		}
		if c != Unconstrained {
			s[feature] = c
		}
	}
	return s, nil
}

// For returns the constraint of feature, or nil when the feature has none.
// The leaf kernels treat nil and Unconstrained alike.
func (s Set) For(feature int) *Constraint {
	c, ok := s[feature]
	if !ok {
		return nil
	}
	return &c
}
