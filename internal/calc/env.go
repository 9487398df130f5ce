package calc

import (
	"github.com/emirpasic/gods/v2/maps/treemap"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/interval/internal/interval"
)

// Env holds named intervals, ordered by name.
// Env is not safe for concurrent use.
type Env struct {
	vars *treemap.Map[string, interval.Interval]
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{vars: treemap.New[string, interval.Interval]()}
}

// Set binds name to itv, replacing any previous value.
func (e *Env) Set(name string, itv interval.Interval) {
	e.vars.Put(NormalizeName(name), itv)
}

// Get returns the interval bound to name.
func (e *Env) Get(name string) (interval.Interval, bool) {
	return e.vars.Get(NormalizeName(name))
}

// Len returns the number of bound names.
func (e *Env) Len() int {
	return e.vars.Size()
}

// Names returns all bound names in sorted order.
func (e *Env) Names() []string {
	return e.vars.Keys()
}

// Each calls fn for every binding in name order.
func (e *Env) Each(fn func(name string, itv interval.Interval)) {
	it := e.vars.Iterator()
	for it.Next() {
		fn(it.Key(), it.Value())
	}
}

// NormalizeName returns the NFC form of an identifier.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}
