// Package interval implements closed-interval arithmetic over float64.
//
// An Interval is the set of all reals in [min, max]. Every operation derives
// new bounds that enclose every possible result of applying the operator to
// any pair of members:
//
//	[a, b] + [c, d] = [a+c, b+d]
//	[a, b] - [c, d] = [a-d, b-c]
//	[a, b] * [c, d] = [min(ac, ad, bc, bd), max(ac, ad, bc, bd)]
//	[a, b] / [c, d] = [min(a/c, a/d, b/c, b/d), max(a/c, a/d, b/c, b/d)]
//
// Multiplication and division always evaluate all four bound permutations
// rather than branching on operand signs. The extrema are taken left to
// right with strict comparisons, so a 0/0 NaN is dropped unless it is the
// first permutation.
//
// # Bounds are not enforced
//
// New accepts any pair of bounds, including min > max, and arithmetic runs on
// the raw values. Callers that need the min <= max invariant should construct
// with NewChecked or call Validate at trust boundaries (after parsing, after
// division).
//
// # Division by zero
//
// Div and friends follow IEEE 754: dividing by an interval that contains zero
// yields infinite or NaN bounds. DivChecked, DivScalarChecked and
// ScalarDivChecked report ErrDivisorContainsZero instead.
//
// # Compound assignment
//
// The *Assign methods mutate the receiver and return its new value so calls
// can be chained. The type carries no locking; callers sharing an Interval
// across goroutines must serialize writes.
package interval
