// Package harness runs interval programs from YAML scenario files and checks
// the results.
//
// # Scenario Format
//
//	name: reference_arithmetic
//	description: "Basic interval arithmetic"
//	strict: false
//	defs: defs/reference.cue        # optional, relative to the scenario file
//	definitions:
//	  x: [3, 3.1]                   # [min, max]
//	  y: 7                          # scalar, bound as [7, 7]
//	  z: "[1, 2]"                   # text form accepted by interval.Parse
//	program: |
//	  a = x + y
//	  d = x / y
//	expect:
//	  a: {min: 10, max: 10.1}
//	  d: {min: 0.428571, max: 0.442857, tolerance: 1e-6}
//	  q: {well_formed: false}
//	error: ""                       # substring of the expected run error
//
// Every expect entry is compared against the final environment. Bounds match
// within tolerance (default 1e-9); NaN matches NaN and infinities match
// exactly.
//
// # Golden Traces
//
// RunWithGolden renders the evaluated steps with six significant digits and
// compares them against testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
