package calc

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/interval/internal/interval"
)

// Options configures an Evaluator.
type Options struct {
	// Strict rejects division by intervals containing zero and any result
	// that fails Interval.Validate.
	Strict bool

	// Logger receives debug output per statement. Defaults to slog.Default().
	Logger *slog.Logger

	// Clock stamps steps. Defaults to a fresh clock.
	Clock *Clock

	// MaxSteps caps the steps one Run may produce. Zero means no limit. A
	// statement whose steps would exceed it is not evaluated.
	MaxSteps int
}

// Step records one evaluated statement. A print statement yields one step per
// printed name.
type Step struct {
	Seq       int64             `json:"seq"`
	Line      int               `json:"line"`
	Statement string            `json:"statement"`
	Kind      StatementKind     `json:"-"`
	Target    string            `json:"target"`
	Op        string            `json:"op,omitempty"`
	Result    interval.Interval `json:"result"`
}

// Evaluator runs programs against an Env.
type Evaluator struct {
	strict   bool
	maxSteps int
	logger   *slog.Logger
	clock    *Clock
}

// New creates an Evaluator.
func New(opts Options) *Evaluator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewClock()
	}
	return &Evaluator{strict: opts.Strict, maxSteps: opts.MaxSteps, logger: logger, clock: clock}
}

// Clock returns the evaluator's seq clock.
func (e *Evaluator) Clock() *Clock {
	return e.clock
}

// Run evaluates prog against env in order. Steps evaluated before a failure
// are returned alongside the error. Cancellation is checked between
// statements.
func (e *Evaluator) Run(ctx context.Context, prog *Program, env *Env) ([]Step, error) {
	var steps []Step
	for _, stmt := range prog.Statements {
		if err := ctx.Err(); err != nil {
			return steps, err
		}

		if n := len(steps) + stmt.stepCount(); e.maxSteps > 0 && n > e.maxSteps {
			err := &StepsExceededError{Steps: n, Limit: e.maxSteps}
			e.logger.Debug("step limit reached", "line", stmt.Line, "limit", e.maxSteps)
			return steps, &StepError{Line: stmt.Line, Statement: stmt.Text, Err: err}
		}

		out, err := e.exec(stmt, env)
		if err != nil {
			e.logger.Debug("statement failed", "line", stmt.Line, "statement", stmt.Text, "err", err)
			return steps, &StepError{Line: stmt.Line, Statement: stmt.Text, Err: err}
		}
		steps = append(steps, out...)
	}
	return steps, nil
}

// RunSource parses and runs src.
func (e *Evaluator) RunSource(ctx context.Context, src io.Reader, env *Env) ([]Step, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, prog, env)
}

func (e *Evaluator) exec(stmt Statement, env *Env) ([]Step, error) {
	if stmt.Kind == KindPrint {
		steps := make([]Step, 0, len(stmt.Names))
		for _, name := range stmt.Names {
			itv, ok := env.Get(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
			}
			steps = append(steps, e.step(stmt, name, itv))
		}
		return steps, nil
	}

	var (
		result interval.Interval
		err    error
	)
	switch stmt.Kind {
	case KindBind:
		result, err = resolve(stmt.Left, env)
	case KindBinary:
		result, err = e.binary(stmt.Op, stmt.Left, stmt.Right, env)
	case KindCompound:
		result, err = e.compound(stmt.Target, stmt.Op, stmt.Right, env)
	default:
		err = fmt.Errorf("unknown statement kind %v", stmt.Kind)
	}
	if err != nil {
		return nil, err
	}

	if e.strict {
		if err := result.Validate(); err != nil {
			return nil, err
		}
	}

	env.Set(stmt.Target, result)
	return []Step{e.step(stmt, stmt.Target, result)}, nil
}

func (e *Evaluator) step(stmt Statement, target string, result interval.Interval) Step {
	s := Step{
		Seq:       e.clock.Next(),
		Line:      stmt.Line,
		Statement: stmt.Text,
		Kind:      stmt.Kind,
		Target:    target,
		Op:        stmt.Op.String(),
		Result:    result,
	}
	e.logger.Debug("statement evaluated",
		"seq", s.Seq,
		"line", s.Line,
		"kind", s.Kind.String(),
		"target", s.Target,
		"result", s.Result.String(),
	)
	return s
}

// resolve turns an operand into an interval; scalars become degenerate.
func resolve(o Operand, env *Env) (interval.Interval, error) {
	switch o.Kind {
	case OperandName:
		itv, ok := env.Get(o.Name)
		if !ok {
			return interval.Interval{}, fmt.Errorf("%w: %s", ErrUndefined, o.Name)
		}
		return itv, nil
	case OperandScalar:
		return interval.Point(o.Scalar), nil
	default:
		return o.Interval, nil
	}
}

func (e *Evaluator) binary(op Op, left, right Operand, env *Env) (interval.Interval, error) {
	switch {
	case left.Kind == OperandScalar && right.Kind == OperandScalar:
		return e.scalarScalar(op, left.Scalar, right.Scalar)
	case left.Kind == OperandScalar:
		b, err := resolve(right, env)
		if err != nil {
			return interval.Interval{}, err
		}
		return e.scalarInterval(op, left.Scalar, b)
	case right.Kind == OperandScalar:
		a, err := resolve(left, env)
		if err != nil {
			return interval.Interval{}, err
		}
		return e.intervalScalar(op, a, right.Scalar)
	}

	a, err := resolve(left, env)
	if err != nil {
		return interval.Interval{}, err
	}
	b, err := resolve(right, env)
	if err != nil {
		return interval.Interval{}, err
	}
	return e.intervalInterval(op, a, b)
}

func (e *Evaluator) compound(target string, op Op, right Operand, env *Env) (interval.Interval, error) {
	p, ok := env.Get(target)
	if !ok {
		return interval.Interval{}, fmt.Errorf("%w: %s", ErrUndefined, target)
	}

	if right.Kind == OperandScalar {
		s := right.Scalar
		switch op {
		case OpAdd:
			return p.AddScalarAssign(s), nil
		case OpSub:
			return p.SubScalarAssign(s), nil
		case OpMul:
			return p.MulScalarAssign(s), nil
		case OpDiv:
			if e.strict && s == 0 {
				return interval.Interval{}, interval.ErrDivisorContainsZero
			}
			return p.DivScalarAssign(s), nil
		}
		return interval.Interval{}, fmt.Errorf("unknown operator %q", op)
	}

	b, err := resolve(right, env)
	if err != nil {
		return interval.Interval{}, err
	}
	switch op {
	case OpAdd:
		return p.AddAssign(b), nil
	case OpSub:
		return p.SubAssign(b), nil
	case OpMul:
		return p.MulAssign(b), nil
	case OpDiv:
		if e.strict && b.StraddlesZero() {
			return interval.Interval{}, interval.ErrDivisorContainsZero
		}
		return p.DivAssign(b), nil
	}
	return interval.Interval{}, fmt.Errorf("unknown operator %q", op)
}

func (e *Evaluator) intervalInterval(op Op, a, b interval.Interval) (interval.Interval, error) {
	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		if e.strict {
			return a.DivChecked(b)
		}
		return a.Div(b), nil
	}
	return interval.Interval{}, fmt.Errorf("unknown operator %q", op)
}

func (e *Evaluator) intervalScalar(op Op, a interval.Interval, s float64) (interval.Interval, error) {
	switch op {
	case OpAdd:
		return a.AddScalar(s), nil
	case OpSub:
		return a.SubScalar(s), nil
	case OpMul:
		return a.MulScalar(s), nil
	case OpDiv:
		if e.strict {
			return a.DivScalarChecked(s)
		}
		return a.DivScalar(s), nil
	}
	return interval.Interval{}, fmt.Errorf("unknown operator %q", op)
}

func (e *Evaluator) scalarInterval(op Op, s float64, b interval.Interval) (interval.Interval, error) {
	switch op {
	case OpAdd:
		return interval.ScalarAdd(s, b), nil
	case OpSub:
		return interval.ScalarSub(s, b), nil
	case OpMul:
		return interval.ScalarMul(s, b), nil
	case OpDiv:
		if e.strict {
			return interval.ScalarDivChecked(s, b)
		}
		return interval.ScalarDiv(s, b), nil
	}
	return interval.Interval{}, fmt.Errorf("unknown operator %q", op)
}

func (e *Evaluator) scalarScalar(op Op, a, b float64) (interval.Interval, error) {
	switch op {
	case OpAdd:
		return interval.Point(a + b), nil
	case OpSub:
		return interval.Point(a - b), nil
	case OpMul:
		return interval.Point(a * b), nil
	case OpDiv:
		if e.strict && b == 0 {
			return interval.Interval{}, interval.ErrDivisorContainsZero
		}
		return interval.Point(a / b), nil
	}
	return interval.Interval{}, fmt.Errorf("unknown operator %q", op)
}
