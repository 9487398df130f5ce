// Package calc evaluates small interval programs.
//
// A program is a sequence of statements, one per line:
//
//	x = [3, 3.1]      # bind a literal
//	y = 7             # a scalar binds as the degenerate interval [7, 7]
//	a = x + y         # binary operation: + - * /
//	p = x
//	p += a            # compound assignment mutates p in place
//	g = a * 5         # interval op scalar
//	h = 5 / a         # scalar op interval
//	print x y a p g h
//
// Operands are identifiers, numeric literals or bracketed interval literals.
// A numeric literal stays a scalar when it appears in a binary or compound
// operation, so "a * 5" evaluates through the scalar path rather than
// promoting 5 to an interval.
//
// Identifiers are normalized to Unicode NFC before lookup, so names typed in
// composed and decomposed form refer to the same variable.
//
// # Strict mode
//
// By default evaluation follows IEEE 754 exactly like the interval package:
// a divisor containing zero produces infinite or NaN bounds. With
// Options.Strict set, division uses the checked variants and every result must
// pass Interval.Validate; the first violation stops the run with a *StepError.
package calc
