package interval

// Add returns [itv.min+o.min, itv.max+o.max].
func (itv Interval) Add(o Interval) Interval {
	return Interval{min: itv.min + o.min, max: itv.max + o.max}
}

// Sub returns [itv.min-o.max, itv.max-o.min]. The cross pairing keeps every
// x-y with x in itv and y in o inside the result, so itv.Sub(itv) is only
// [0, 0] for a degenerate itv.
func (itv Interval) Sub(o Interval) Interval {
	return Interval{min: itv.min - o.max, max: itv.max - o.min}
}

// Mul returns the extrema of the four bound products.
func (itv Interval) Mul(o Interval) Interval {
	return extrema(
		itv.min*o.min,
		itv.min*o.max,
		itv.max*o.min,
		itv.max*o.max,
	)
}

// Div returns the extrema of the four bound quotients. A divisor containing
// zero produces infinite or NaN bounds; see DivChecked. A 0/0 quotient
// after the first is ignored, so [0, 1]/[-1, 0] is [-1, +Inf].
func (itv Interval) Div(o Interval) Interval {
	return extrema(
		itv.min/o.min,
		itv.min/o.max,
		itv.max/o.min,
		itv.max/o.max,
	)
}

// DivChecked is Div that returns ErrDivisorContainsZero instead of
// propagating IEEE infinities.
func (itv Interval) DivChecked(o Interval) (Interval, error) {
	if o.StraddlesZero() {
		return Interval{}, ErrDivisorContainsZero
	}
	return itv.Div(o), nil
}

// AddScalar returns [itv.min+s, itv.max+s].
func (itv Interval) AddScalar(s float64) Interval {
	return Interval{min: itv.min + s, max: itv.max + s}
}

// SubScalar returns [itv.min-s, itv.max-s].
func (itv Interval) SubScalar(s float64) Interval {
	return Interval{min: itv.min - s, max: itv.max - s}
}

// MulScalar scales both bounds by s, swapping them when s is negative.
func (itv Interval) MulScalar(s float64) Interval {
	return pair(itv.min*s, itv.max*s)
}

// DivScalar divides both bounds by s, swapping them when s is negative.
func (itv Interval) DivScalar(s float64) Interval {
	return pair(itv.min/s, itv.max/s)
}

// DivScalarChecked is DivScalar that rejects a zero divisor.
func (itv Interval) DivScalarChecked(s float64) (Interval, error) {
	if s == 0 {
		return Interval{}, ErrDivisorContainsZero
	}
	return itv.DivScalar(s), nil
}

// ScalarAdd returns s + itv.
func ScalarAdd(s float64, itv Interval) Interval {
	return Interval{min: s + itv.min, max: s + itv.max}
}

// ScalarSub returns s - itv, that is [s-itv.max, s-itv.min].
func ScalarSub(s float64, itv Interval) Interval {
	return Interval{min: s - itv.max, max: s - itv.min}
}

// ScalarMul returns s * itv.
func ScalarMul(s float64, itv Interval) Interval {
	return pair(s*itv.min, s*itv.max)
}

// ScalarDiv returns s / itv.
func ScalarDiv(s float64, itv Interval) Interval {
	return pair(s/itv.min, s/itv.max)
}

// ScalarDivChecked is ScalarDiv that returns ErrDivisorContainsZero when itv
// contains zero.
func ScalarDivChecked(s float64, itv Interval) (Interval, error) {
	if itv.StraddlesZero() {
		return Interval{}, ErrDivisorContainsZero
	}
	return ScalarDiv(s, itv), nil
}

// AddAssign sets itv to itv.Add(o) and returns the new value.
func (itv *Interval) AddAssign(o Interval) Interval {
	*itv = itv.Add(o)
	return *itv
}

// SubAssign sets itv to itv.Sub(o) and returns the new value.
func (itv *Interval) SubAssign(o Interval) Interval {
	*itv = itv.Sub(o)
	return *itv
}

// MulAssign sets itv to itv.Mul(o) and returns the new value.
func (itv *Interval) MulAssign(o Interval) Interval {
	*itv = itv.Mul(o)
	return *itv
}

// DivAssign sets itv to itv.Div(o) and returns the new value.
func (itv *Interval) DivAssign(o Interval) Interval {
	*itv = itv.Div(o)
	return *itv
}

// AddScalarAssign sets itv to itv.AddScalar(s) and returns the new value.
func (itv *Interval) AddScalarAssign(s float64) Interval {
	*itv = itv.AddScalar(s)
	return *itv
}

// SubScalarAssign sets itv to itv.SubScalar(s) and returns the new value.
func (itv *Interval) SubScalarAssign(s float64) Interval {
	*itv = itv.SubScalar(s)
	return *itv
}

// MulScalarAssign sets itv to itv.MulScalar(s) and returns the new value.
func (itv *Interval) MulScalarAssign(s float64) Interval {
	*itv = itv.MulScalar(s)
	return *itv
}

// DivScalarAssign sets itv to itv.DivScalar(s) and returns the new value.
func (itv *Interval) DivScalarAssign(s float64) Interval {
	*itv = itv.DivScalar(s)
	return *itv
}

// extrema builds the tightest interval holding all four values. Each bound
// starts at a and is replaced only by a strictly smaller or larger value, so
// a NaN after the first position is skipped and a NaN in a is kept.
func extrema(a, b, c, d float64) Interval {
	lo, hi := a, a
	for _, v := range [...]float64{b, c, d} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return Interval{min: lo, max: hi}
}

// pair orders two values into an interval, with the same NaN handling as
// extrema.
func pair(a, b float64) Interval {
	return extrema(a, b, a, b)
}
