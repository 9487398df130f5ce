package calc

import (
	"errors"
	"fmt"
)

// ErrUndefined is returned when a statement reads a name that is not bound.
var ErrUndefined = errors.New("undefined name")

// SyntaxError reports a line that could not be parsed.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// StepError reports a statement that failed during evaluation.
type StepError struct {
	Line      int
	Statement string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Statement, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// StepsExceededError is returned when a run would produce more steps than
// Options.MaxSteps allows. The statement that would cross the limit is not
// evaluated, so the environment and clock are left as the last step saw them.
type StepsExceededError struct {
	Steps int // steps the run would have produced
	Limit int
}

func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("exceeded max steps: %d steps > %d limit", e.Steps, e.Limit)
}
