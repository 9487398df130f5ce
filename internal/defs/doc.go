// Package defs loads named interval definitions written in CUE.
//
// A definitions file looks like:
//
//	interval: {
//		x: {min: 3, max: 3.1}
//		y: {min: 7, max: 7}
//	}
//	settings: {
//		precision: 6
//		strict:    true
//	}
//
// The file is unified with an embedded schema, which closes the top level
// (unknown fields are errors) and requires max >= min for every interval.
// This is the one place where bound order is enforced: intervals built in Go
// or in calc programs are not checked unless strict mode asks for it.
package defs
