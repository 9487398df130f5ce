package calc

import "sync/atomic"

// Clock stamps evaluated statements with strictly increasing seq numbers.
// Seq values continue across Run calls on the same Evaluator so one session
// can evaluate several programs without reusing a number.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
