package calc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/interval/internal/interval"
)

const printKeyword = "print"

// Parse reads a program. Blank lines and text after '#' are ignored.
// The first malformed line is reported as a *SyntaxError.
func Parse(r io.Reader) (*Program, error) {
	prog := &Program{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		stmt, err := parseStatement(text)
		if err != nil {
			return nil, &SyntaxError{Line: line, Text: text, Msg: err.Error()}
		}
		stmt.Line = line
		stmt.Text = text
		prog.Statements = append(prog.Statements, stmt)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	return prog, nil
}

// ParseString is Parse over a string.
func ParseString(src string) (*Program, error) {
	return Parse(strings.NewReader(src))
}

// lexer walks a single statement.
type lexer struct {
	src string
	pos int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) done() bool {
	l.skipSpace()
	return l.pos >= len(l.src)
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func parseStatement(text string) (Statement, error) {
	l := &lexer{src: text}

	name, ok := l.ident()
	if !ok {
		return Statement{}, fmt.Errorf("expected identifier")
	}

	if name == printKeyword {
		return parsePrint(l)
	}

	l.skipSpace()
	switch c := l.peek(); c {
	case '=':
		l.pos++
	case '+', '-', '*', '/':
		l.pos++
		if l.peek() != '=' {
			return Statement{}, fmt.Errorf("expected '=' after %q", c)
		}
		l.pos++
		rhs, err := l.operand()
		if err != nil {
			return Statement{}, err
		}
		if !l.done() {
			return Statement{}, fmt.Errorf("unexpected %q", l.src[l.pos:])
		}
		return Statement{Kind: KindCompound, Target: name, Op: Op(c), Right: rhs}, nil
	default:
		return Statement{}, fmt.Errorf("expected '=' or compound operator after %q", name)
	}

	left, err := l.operand()
	if err != nil {
		return Statement{}, err
	}
	if l.done() {
		return Statement{Kind: KindBind, Target: name, Left: left}, nil
	}

	op := Op(l.peek())
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		l.pos++
	default:
		return Statement{}, fmt.Errorf("expected operator, found %q", l.src[l.pos:])
	}

	right, err := l.operand()
	if err != nil {
		return Statement{}, err
	}
	if !l.done() {
		return Statement{}, fmt.Errorf("unexpected %q", l.src[l.pos:])
	}
	return Statement{Kind: KindBinary, Target: name, Op: op, Left: left, Right: right}, nil
}

func parsePrint(l *lexer) (Statement, error) {
	stmt := Statement{Kind: KindPrint}
	for !l.done() {
		name, ok := l.ident()
		if !ok {
			return Statement{}, fmt.Errorf("print expects identifiers, found %q", l.src[l.pos:])
		}
		stmt.Names = append(stmt.Names, name)
	}
	if len(stmt.Names) == 0 {
		return Statement{}, fmt.Errorf("print expects at least one identifier")
	}
	return stmt, nil
}

// ident reads an identifier and returns it in NFC form.
func (l *lexer) ident() (string, bool) {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if r == '_' || unicode.IsLetter(r) {
			l.pos += size
			continue
		}
		if l.pos > start && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)) {
			l.pos += size
			continue
		}
		break
	}
	if l.pos == start {
		return "", false
	}
	return NormalizeName(l.src[start:l.pos]), true
}

func (l *lexer) operand() (Operand, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return Operand{}, fmt.Errorf("missing operand")
	}

	if l.peek() == '[' {
		end := strings.IndexByte(l.src[l.pos:], ']')
		if end < 0 {
			return Operand{}, fmt.Errorf("unterminated interval literal")
		}
		itv, err := interval.Parse(l.src[l.pos : l.pos+end+1])
		if err != nil {
			return Operand{}, err
		}
		l.pos += end + 1
		return Literal(itv), nil
	}

	if name, ok := l.ident(); ok {
		if name == printKeyword {
			return Operand{}, fmt.Errorf("%q is reserved", printKeyword)
		}
		return Operand{Kind: OperandName, Name: name}, nil
	}

	return l.number()
}

// number reads a float literal with an optional leading sign.
func (l *lexer) number() (Operand, error) {
	start := l.pos
	if c := l.peek(); c == '+' || c == '-' {
		l.pos++
	}
scan:
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c >= '0' && c <= '9', c == '.':
			l.pos++
		case c == 'e' || c == 'E':
			l.pos++
			if n := l.peek(); n == '+' || n == '-' {
				l.pos++
			}
		default:
			break scan
		}
	}
	text := l.src[start:l.pos]
	if text == "" {
		return Operand{}, fmt.Errorf("expected operand, found %q", l.src[l.pos:])
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Operand{}, fmt.Errorf("invalid number %q", text)
	}
	return Scalar(v), nil
}
