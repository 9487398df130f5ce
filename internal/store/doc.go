// Package store provides SQLite-backed history of evaluated interval
// programs.
//
// Each evaluation is a session (the program source, its strict flag and the
// names bound before it ran) with one row per evaluated step. Session ids are
// UUIDv7, so ordering by id is ordering by creation; steps are ordered by seq.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Interval results are stored as their String form, which parses back to the
// same float64 bounds, including infinities and NaN.
package store
