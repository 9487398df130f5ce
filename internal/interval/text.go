package interval

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// String renders the interval as "[min, max]" using the shortest decimal form
// that parses back to the same float64 values.
func (itv Interval) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strconv.FormatFloat(itv.min, 'g', -1, 64))
	b.WriteString(", ")
	b.WriteString(strconv.FormatFloat(itv.max, 'g', -1, 64))
	b.WriteByte(']')
	return b.String()
}

// Format implements fmt.Formatter. Floating-point verbs apply to each bound,
// so fmt.Sprintf("%.6g", itv) prints both bounds to six significant digits.
// %v and %s print String().
func (itv Interval) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		io.WriteString(f, itv.String())
	case 'e', 'E', 'f', 'F', 'g', 'G':
		bound := fmt.FormatString(f, verb)
		fmt.Fprintf(f, "["+bound+", "+bound+"]", itv.min, itv.max)
	default:
		fmt.Fprintf(f, "%%!%c(interval.Interval=%s)", verb, itv.String())
	}
}

// Parse reads an interval from text. Two forms are accepted: two
// whitespace-separated numbers ("3 3.1") and the bracketed form produced by
// String ("[3, 3.1]"). The bounds are not checked for order.
func Parse(s string) (Interval, error) {
	text := strings.TrimSpace(s)

	var fields []string
	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			return Interval{}, &ParseError{Input: s, Err: fmt.Errorf("missing closing bracket")}
		}
		fields = strings.Split(text[1:len(text)-1], ",")
	} else {
		fields = strings.Fields(text)
	}
	if len(fields) != 2 {
		return Interval{}, &ParseError{Input: s, Err: fmt.Errorf("expected 2 bounds, found %d", len(fields))}
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Interval{}, &ParseError{Input: s, Err: err}
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Interval{}, &ParseError{Input: s, Err: err}
	}

	return New(lo, hi), nil
}

// Scan implements fmt.Scanner. It reads two whitespace-separated numbers,
// min then max, so fmt.Fscan(r, &itv) consumes input the same way a pair of
// float64 reads would: io.EOF when input ends before the first bound, and
// io.ErrUnexpectedEOF when it ends between the two.
func (itv *Interval) Scan(state fmt.ScanState, verb rune) error {
	var bounds [2]float64
	for i := range bounds {
		tok, err := state.Token(true, func(r rune) bool { return !unicode.IsSpace(r) })
		if err != nil {
			return err
		}
		if len(tok) == 0 {
			if i == 0 {
				return io.EOF
			}
			return &ParseError{Input: "", Err: io.ErrUnexpectedEOF}
		}
		text := string(tok)
		bounds[i], err = strconv.ParseFloat(text, 64)
		if err != nil {
			return &ParseError{Input: text, Err: err}
		}
	}

	*itv = New(bounds[0], bounds[1])
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (itv Interval) MarshalText() ([]byte, error) {
	return []byte(itv.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (itv *Interval) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*itv = parsed
	return nil
}
