package interval

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertBounds(t *testing.T, want, got Interval) {
	t.Helper()
	assert.InDelta(t, want.Min(), got.Min(), tolerance, "min of %v", got)
	assert.InDelta(t, want.Max(), got.Max(), tolerance, "max of %v", got)
}

func TestIntervalArithmetic(t *testing.T) {
	x := New(3, 3.1)
	y := Point(7)

	assertBounds(t, New(10, 10.1), x.Add(y))
	assertBounds(t, New(-4, -3.9), x.Sub(y))
	assertBounds(t, New(21, 21.7), x.Mul(y))
	assertBounds(t, New(3.0/7, 3.1/7), x.Div(y))

	assert.Equal(t, "[0.428571, 0.442857]", formatG6(x.Div(y)))
}

func TestScalarArithmetic(t *testing.T) {
	a := New(10, 10.1)
	f := 5.0

	assertBounds(t, New(15, 15.1), a.AddScalar(f))
	assertBounds(t, New(15, 15.1), ScalarAdd(f, a))
	assertBounds(t, New(5, 5.1), a.SubScalar(f))
	assertBounds(t, New(-5.1, -5), ScalarSub(f, a))
	assertBounds(t, New(50, 50.5), a.MulScalar(f))
	assertBounds(t, New(50, 50.5), ScalarMul(f, a))
	assertBounds(t, New(2, 2.02), a.DivScalar(f))
	assertBounds(t, New(5/10.1, 0.5), ScalarDiv(f, a))

	assert.Equal(t, "[0.49505, 0.5]", formatG6(ScalarDiv(f, a)))
}

func TestSub_IsNotCancellation(t *testing.T) {
	a := New(1, 3)
	assert.Equal(t, New(-2, 2), a.Sub(a))

	p := Point(4)
	assert.Equal(t, Point(0), p.Sub(p))
}

func TestMul_MixedSigns(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want Interval
	}{
		{"both positive", New(1, 2), New(3, 4), New(3, 8)},
		{"both negative", New(-2, -1), New(-4, -3), New(3, 8)},
		{"negative times positive", New(-2, -1), New(3, 4), New(-8, -3)},
		{"straddling times positive", New(-1, 2), New(3, 4), New(-4, 8)},
		{"both straddling", New(-1, 2), New(-3, 4), New(-6, 8)},
		{"zero", Point(0), New(-3, 4), Point(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Mul(tt.b))
			assert.Equal(t, tt.want, tt.b.Mul(tt.a))
		})
	}
}

func TestMulScalar_NegativeSwapsBounds(t *testing.T) {
	assert.Equal(t, New(-4, -2), New(1, 2).MulScalar(-2))
	assert.Equal(t, New(-4, -2), ScalarMul(-2, New(1, 2)))
	assert.Equal(t, New(-1, -0.5), New(1, 2).DivScalar(-2))
	assert.Equal(t, New(-2, -1), ScalarDiv(-2, New(1, 2)))
}

func TestDiv_DivisorContainingZero(t *testing.T) {
	// Bounds of a straddling divisor are finite, so the permutations stay
	// finite even though the true quotient set is unbounded.
	assert.Equal(t, New(-2, 2), New(1, 2).Div(New(-1, 1)))

	assert.Equal(t, New(1, math.Inf(1)), New(1, 2).Div(New(0, 1)))

	got := Point(0).Div(Point(0))
	assert.True(t, math.IsNaN(got.Min()))
	assert.True(t, math.IsNaN(got.Max()))
	assert.ErrorIs(t, got.Validate(), ErrNaN)

	got = New(0, 1).Div(New(-1, 0))
	assert.Equal(t, -1.0, got.Min())
	assert.True(t, math.IsInf(got.Max(), 1))

	got = ScalarDiv(0, New(-1, 0))
	assert.Equal(t, 0.0, got.Min())
	assert.True(t, math.Signbit(got.Min()))
	assert.True(t, math.Signbit(got.Max()))
	assert.Equal(t, "[-0, -0]", got.String())

	// A leading NaN is never replaced.
	got = New(0, 1).DivScalar(0)
	assert.True(t, math.IsNaN(got.Min()))
	assert.True(t, math.IsNaN(got.Max()))
}

func TestDivChecked(t *testing.T) {
	q, err := New(10, 10.1).DivChecked(Point(7))
	require.NoError(t, err)
	assertBounds(t, New(10.0/7, 10.1/7), q)

	_, err = New(1, 2).DivChecked(New(-1, 1))
	assert.ErrorIs(t, err, ErrDivisorContainsZero)

	_, err = New(1, 2).DivChecked(New(0, 3))
	assert.ErrorIs(t, err, ErrDivisorContainsZero)

	_, err = New(1, 2).DivScalarChecked(0)
	assert.ErrorIs(t, err, ErrDivisorContainsZero)

	q, err = New(1, 2).DivScalarChecked(4)
	require.NoError(t, err)
	assert.Equal(t, New(0.25, 0.5), q)

	_, err = ScalarDivChecked(1, New(-2, 0))
	assert.ErrorIs(t, err, ErrDivisorContainsZero)

	q, err = ScalarDivChecked(1, New(2, 4))
	require.NoError(t, err)
	assert.Equal(t, New(0.25, 0.5), q)
}

func TestDivisionSoundness(t *testing.T) {
	a := New(10, 10.1)
	b := Point(7)

	q := a.Div(b)
	assertBounds(t, New(1.42857142857, 1.44285714286), q)

	back := q.Mul(b)
	assert.LessOrEqual(t, back.Min(), a.Min()+tolerance)
	assert.GreaterOrEqual(t, back.Max(), a.Max()-tolerance)
}

func TestCompoundAssign(t *testing.T) {
	x := New(3, 3.1)
	y := Point(7)
	a := x.Add(y)

	p := x
	ret := p.AddAssign(a)
	assert.Equal(t, x.Add(a), p)
	assert.Equal(t, p, ret)

	want := p.Sub(a)
	ret = p.SubAssign(a)
	assert.Equal(t, want, p)
	assert.Equal(t, p, ret)

	want = p.Mul(a)
	ret = p.MulAssign(a)
	assert.Equal(t, want, p)
	assert.Equal(t, p, ret)

	want = p.Div(a)
	ret = p.DivAssign(a)
	assert.Equal(t, want, p)
	assert.Equal(t, p, ret)
}

func TestCompoundScalarAssign(t *testing.T) {
	p := New(10, 10.1)

	want := p.AddScalar(5)
	assert.Equal(t, want, p.AddScalarAssign(5))
	assert.Equal(t, want, p)

	want = p.SubScalar(2)
	assert.Equal(t, want, p.SubScalarAssign(2))
	assert.Equal(t, want, p)

	want = p.MulScalar(-3)
	assert.Equal(t, want, p.MulScalarAssign(-3))
	assert.Equal(t, want, p)

	want = p.DivScalar(4)
	assert.Equal(t, want, p.DivScalarAssign(4))
	assert.Equal(t, want, p)
}

func TestCompoundAssign_Chaining(t *testing.T) {
	p := Point(1)
	got := p.AddAssign(Point(1))
	got.MulScalarAssign(10)

	assert.Equal(t, Point(2), p)
	assert.Equal(t, Point(20), got)
}

// randomIntervals returns well-formed intervals from a fixed seed.
func randomIntervals(n int) []Interval {
	r := rand.New(rand.NewPCG(1, 2))
	out := make([]Interval, n)
	for i := range out {
		lo := r.Float64()*200 - 100
		out[i] = New(lo, lo+r.Float64()*50)
	}
	return out
}

func TestArithmeticProperties(t *testing.T) {
	intervals := randomIntervals(64)

	for i, a := range intervals {
		b := intervals[(i+7)%len(intervals)]
		s := b.Min()

		sum := a.Add(b)
		assert.Equal(t, a.Min()+b.Min(), sum.Min())
		assert.Equal(t, a.Max()+b.Max(), sum.Max())

		diff := a.Sub(b)
		assert.Equal(t, a.Min()-b.Max(), diff.Min())
		assert.Equal(t, a.Max()-b.Min(), diff.Max())

		assert.Equal(t, a.Mul(b), b.Mul(a))

		assert.Equal(t, a.Add(Point(s)), a.AddScalar(s))
		assert.Equal(t, a.Sub(Point(s)), a.SubScalar(s))
		assert.Equal(t, a.Mul(Point(s)), a.MulScalar(s))
		assert.Equal(t, a.Div(Point(s)), a.DivScalar(s))
		assert.Equal(t, Point(s).Add(a), ScalarAdd(s, a))
		assert.Equal(t, Point(s).Sub(a), ScalarSub(s, a))
		assert.Equal(t, Point(s).Mul(a), ScalarMul(s, a))
		assert.Equal(t, Point(s).Div(a), ScalarDiv(s, a))

		p := a
		p.MulAssign(b)
		assert.Equal(t, a.Mul(b), p)

		for _, v := range []float64{a.Min(), a.Midpoint(), a.Max()} {
			for _, w := range []float64{b.Min(), b.Midpoint(), b.Max()} {
				assert.True(t, a.Mul(b).Contains(v*w))
				assert.True(t, a.Sub(b).Contains(v-w))
			}
		}
	}
}
