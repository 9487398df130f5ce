package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/interval/internal/interval"
)

// DemoLine is one printed value in the demonstration.
type DemoLine struct {
	Name  string            `json:"name"`
	Value interval.Interval `json:"value"`
}

// DemoSection groups demonstration lines under a heading.
type DemoSection struct {
	Title string     `json:"title"`
	Lines []DemoLine `json:"lines"`
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through constructors and every operator",
		Long: `Print a fixed walkthrough of interval arithmetic: constructors,
interval op interval, compound assignment and mixed scalar arithmetic,
starting from x = [3, 3.1] and y = 7.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			sections := Demo()
			if formatter.IsJSON() {
				return formatter.Success(sections)
			}
			writeDemo(formatter.Writer, sections, rootOpts.precision())
			return nil
		},
	}

	return cmd
}

// Demo computes the demonstration values.
func Demo() []DemoSection {
	x := interval.New(3.0, 3.1)
	y := interval.Point(7)
	p := x

	constructors := DemoSection{Title: "constructors", Lines: []DemoLine{
		{"x", x}, {"y", y}, {"p", p},
	}}

	a := x.Add(y)
	b := x.Sub(y)
	c := x.Mul(y)
	d := x.Div(y)
	basic := DemoSection{Title: "basic interval arithmetic", Lines: []DemoLine{
		{"a", a}, {"b", b}, {"c", c}, {"d", d},
	}}

	assign := DemoSection{Title: "assignment arithmetic"}
	for _, op := range []func(interval.Interval) interval.Interval{
		p.AddAssign, p.SubAssign, p.MulAssign, p.DivAssign,
	} {
		assign.Lines = append(assign.Lines, DemoLine{"p", op(a)})
	}

	const f = 5.0
	mixed := DemoSection{Title: "mixed scalar arithmetic", Lines: []DemoLine{
		{"g", a.AddScalar(f)}, {"h", interval.ScalarAdd(f, a)},
		{"g", a.SubScalar(f)}, {"h", interval.ScalarSub(f, a)},
		{"g", a.MulScalar(f)}, {"h", interval.ScalarMul(f, a)},
		{"g", a.DivScalar(f)}, {"h", interval.ScalarDiv(f, a)},
	}}

	return []DemoSection{constructors, basic, assign, mixed}
}

func writeDemo(w io.Writer, sections []DemoSection, precision int) {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", s.Title)
		for _, l := range s.Lines {
			fmt.Fprintf(w, "%s=\t%.*g\n", l.Name, precision, l.Value)
		}
	}
}
