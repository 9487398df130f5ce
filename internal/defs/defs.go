package defs

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/interval/internal/calc"
	"github.com/roach88/interval/internal/interval"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPrecision is the number of significant digits used when a file does
// not set settings.precision.
const DefaultPrecision = 6

// Settings holds evaluation settings read from a definitions file.
type Settings struct {
	Precision int  `json:"precision"`
	Strict    bool `json:"strict"`

	// StrictSet reports whether the file set strict explicitly, so a
	// command-line flag can tell "false" from "absent".
	StrictSet bool `json:"-"`
}

// Definitions is a compiled definitions file.
type Definitions struct {
	Intervals map[string]interval.Interval `json:"intervals"`
	Settings  Settings                     `json:"settings"`
}

// Names returns the interval names in sorted order.
func (d *Definitions) Names() []string {
	names := make([]string, 0, len(d.Intervals))
	for name := range d.Intervals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply binds every interval into env.
func (d *Definitions) Apply(env *calc.Env) {
	for name, itv := range d.Intervals {
		env.Set(name, itv)
	}
}

// LoadFile reads and compiles a definitions file.
func LoadFile(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	return Compile(data, path)
}

// Compile compiles CUE source into Definitions. filename is used in error
// positions only.
func Compile(src []byte, filename string) (*Definitions, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v = schema.LookupPath(cue.ParsePath("#Defs")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	defs := &Definitions{
		Intervals: make(map[string]interval.Interval),
		Settings:  Settings{Precision: DefaultPrecision},
	}

	if err := parseIntervals(v, defs); err != nil {
		return nil, err
	}
	if err := parseSettings(v, defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func parseIntervals(v cue.Value, defs *Definitions) error {
	intervalsVal := v.LookupPath(cue.ParsePath("interval"))
	if !intervalsVal.Exists() {
		return nil
	}

	iter, err := intervalsVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		name := calc.NormalizeName(iter.Selector().Unquoted())
		field := "interval." + name

		lo, err := iter.Value().LookupPath(cue.ParsePath("min")).Float64()
		if err != nil {
			return formatCUEError(err)
		}
		hi, err := iter.Value().LookupPath(cue.ParsePath("max")).Float64()
		if err != nil {
			return formatCUEError(err)
		}

		if _, dup := defs.Intervals[name]; dup {
			return &CompileError{
				Field:   field,
				Message: "defined more than once after normalization",
				Pos:     iter.Value().Pos(),
			}
		}
		defs.Intervals[name] = interval.New(lo, hi)
	}
	return nil
}

func parseSettings(v cue.Value, defs *Definitions) error {
	precisionVal := v.LookupPath(cue.ParsePath("settings.precision"))
	if precisionVal.Exists() {
		p, err := precisionVal.Int64()
		if err != nil {
			return formatCUEError(err)
		}
		defs.Settings.Precision = int(p)
	}

	strictVal := v.LookupPath(cue.ParsePath("settings.strict"))
	if strictVal.Exists() {
		strict, err := strictVal.Bool()
		if err != nil {
			return formatCUEError(err)
		}
		defs.Settings.Strict = strict
		defs.Settings.StrictSet = true
	}
	return nil
}

// CompileError reports a definitions file that failed to compile or
// validate.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts the path and position of the first CUE error.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "cue"
	if path := first.Path(); len(path) > 0 {
		field = strings.Join(path, ".")
	}

	var pos token.Pos
	if positions := errors.Positions(first); len(positions) > 0 {
		pos = positions[0]
	}
	return &CompileError{
		Field:   field,
		Message: first.Error(),
		Pos:     pos,
	}
}
