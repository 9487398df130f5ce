package interval

import (
	"errors"
	"fmt"
)

var (
	// ErrInverted is returned when an interval has min > max.
	ErrInverted = errors.New("interval: min is greater than max")

	// ErrNaN is returned when either bound is NaN.
	ErrNaN = errors.New("interval: bound is NaN")

	// ErrDivisorContainsZero is returned by the checked division variants
	// when the divisor contains zero.
	ErrDivisorContainsZero = errors.New("interval: divisor contains zero")
)

// ParseError describes text that could not be read as an interval.
type ParseError struct {
	// Input is the text that failed to parse.
	Input string

	// Err is the underlying cause, usually a *strconv.NumError.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("interval: parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
