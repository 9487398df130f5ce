package harness

import "github.com/roach88/interval/internal/interval"

// TraceEvent is one line of a scenario trace: either a definition bound
// before the program ran or an evaluated step.
type TraceEvent struct {
	Type      string            `json:"type"` // "definition" or "step"
	Seq       int64             `json:"seq,omitempty"`
	Line      int               `json:"line,omitempty"`
	Statement string            `json:"statement,omitempty"`
	Target    string            `json:"target"`
	Result    interval.Interval `json:"result"`
}

// Trace event types.
const (
	EventDefinition = "definition"
	EventStep       = "step"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	Pass bool `json:"pass"`

	// Trace holds definitions then steps, in evaluation order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// RunError is the evaluation error message, if the program failed.
	RunError string `json:"run_error,omitempty"`

	// Final holds every variable after the run.
	Final map[string]interval.Interval `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  make(map[string]interval.Interval),
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
