package interval

import "math"

// Interval is a closed range [min, max] of float64 values.
// The zero value is the degenerate interval [0, 0].
type Interval struct {
	min float64
	max float64
}

// New returns the interval [min, max]. The bounds are stored as given; no
// ordering check is performed.
func New(min, max float64) Interval {
	return Interval{min: min, max: max}
}

// Point returns the degenerate interval [v, v].
func Point(v float64) Interval {
	return Interval{min: v, max: v}
}

// NewChecked is New with validation. It rejects NaN bounds and min > max but
// never reorders them.
func NewChecked(min, max float64) (Interval, error) {
	itv := New(min, max)
	if err := itv.Validate(); err != nil {
		return Interval{}, err
	}
	return itv, nil
}

// Min returns the lower bound.
func (itv Interval) Min() float64 {
	return itv.min
}

// Max returns the upper bound.
func (itv Interval) Max() float64 {
	return itv.max
}

// Width returns max - min.
func (itv Interval) Width() float64 {
	return itv.max - itv.min
}

// Midpoint returns the centre of the interval.
func (itv Interval) Midpoint() float64 {
	return itv.min + (itv.max-itv.min)/2
}

// IsDegenerate reports whether the interval holds a single value.
func (itv Interval) IsDegenerate() bool {
	return itv.min == itv.max
}

// Contains reports whether min <= val <= max.
func (itv Interval) Contains(val float64) bool {
	return itv.min <= val && val <= itv.max
}

// Surrounds reports whether min < val < max.
func (itv Interval) Surrounds(val float64) bool {
	return itv.min < val && val < itv.max
}

// ContainsInterval reports whether o lies entirely within itv.
func (itv Interval) ContainsInterval(o Interval) bool {
	return itv.min <= o.min && o.max <= itv.max
}

// StraddlesZero reports whether zero is a member of the interval.
func (itv Interval) StraddlesZero() bool {
	return itv.Contains(0)
}

// Clamp limits val to the interval's bounds.
func (itv Interval) Clamp(val float64) float64 {
	if val < itv.min {
		return itv.min
	}
	if val > itv.max {
		return itv.max
	}

	return val
}

// IsWellFormed reports whether neither bound is NaN and min <= max.
func (itv Interval) IsWellFormed() bool {
	return itv.Validate() == nil
}

// Validate returns ErrNaN or ErrInverted when the interval is not well formed.
func (itv Interval) Validate() error {
	if math.IsNaN(itv.min) || math.IsNaN(itv.max) {
		return ErrNaN
	}
	if itv.min > itv.max {
		return ErrInverted
	}
	return nil
}
