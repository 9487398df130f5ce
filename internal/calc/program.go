package calc

import (
	"fmt"
	"strconv"

	"github.com/roach88/interval/internal/interval"
)

// Op is a binary arithmetic operator.
type Op byte

const (
	OpNone Op = 0
	OpAdd  Op = '+'
	OpSub  Op = '-'
	OpMul  Op = '*'
	OpDiv  Op = '/'
)

func (o Op) String() string {
	if o == OpNone {
		return ""
	}
	return string(rune(o))
}

// StatementKind distinguishes the statement forms.
type StatementKind int

const (
	// KindBind is "name = operand".
	KindBind StatementKind = iota
	// KindBinary is "name = operand op operand".
	KindBinary
	// KindCompound is "name op= operand".
	KindCompound
	// KindPrint is "print name...".
	KindPrint
)

func (k StatementKind) String() string {
	switch k {
	case KindBind:
		return "bind"
	case KindBinary:
		return "binary"
	case KindCompound:
		return "compound"
	case KindPrint:
		return "print"
	default:
		return fmt.Sprintf("StatementKind(%d)", int(k))
	}
}

// OperandKind distinguishes operand forms.
type OperandKind int

const (
	OperandName OperandKind = iota
	OperandScalar
	OperandInterval
)

// Operand is one side of a statement's right-hand side.
type Operand struct {
	Kind     OperandKind
	Name     string
	Scalar   float64
	Interval interval.Interval
}

// Name returns an operand that refers to a variable.
func Name(name string) Operand {
	return Operand{Kind: OperandName, Name: NormalizeName(name)}
}

// Scalar returns a scalar operand.
func Scalar(v float64) Operand {
	return Operand{Kind: OperandScalar, Scalar: v}
}

// Literal returns an interval literal operand.
func Literal(itv interval.Interval) Operand {
	return Operand{Kind: OperandInterval, Interval: itv}
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandName:
		return o.Name
	case OperandScalar:
		return strconv.FormatFloat(o.Scalar, 'g', -1, 64)
	default:
		return o.Interval.String()
	}
}

// Statement is a single parsed line.
type Statement struct {
	// Line is the 1-based source line.
	Line int

	// Text is the source text with comments stripped.
	Text string

	Kind   StatementKind
	Target string
	Op     Op
	Left   Operand
	Right  Operand

	// Names lists the variables of a print statement.
	Names []string
}

// stepCount is the number of steps the statement yields when it succeeds.
func (s Statement) stepCount() int {
	if s.Kind == KindPrint {
		return len(s.Names)
	}
	return 1
}

// Program is a parsed sequence of statements.
type Program struct {
	Statements []Statement
}
