package quantities_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/zephyrtronium/quantities"
)

// near compares floats with both relative and absolute slack so that
// rounding residue around zero compares equal.
var near = cmpopts.EquateApprox(1e-12, 1e-12)

// valueOpts compares Values approximately by shape and elements.
var valueOpts = cmp.Options{
	cmp.Comparer(func(a, b quantities.FloatPlus) bool {
		return a.IsVector() == b.IsVector() && cmp.Equal(a.Elems(), b.Elems(), near)
	}),
	cmp.Comparer(quantities.Dimension.Equal),
	cmpopts.EquateEmpty(),
}

func scalar(x float64, dim quantities.Dimension) quantities.Quantity {
	return quantities.Constant(quantities.Scalar(x), dim)
}

func cplx(re, im float64, dim quantities.Dimension) quantities.Complex {
	return quantities.Complex{Re: quantities.Scalar(re), Im: quantities.Scalar(im), Dim: dim}
}

func TestValueArith(t *testing.T) {
	m := quantities.Dim(quantities.Length, quantities.One)
	cases := []struct {
		name string
		op   func(l, r quantities.Value) (quantities.Value, error)
		l, r quantities.Value
		want quantities.Value
	}{
		{"rational", quantities.Add, quantities.NewRational(1, 2), quantities.NewRational(1, 3), quantities.NewRational(5, 6)},
		{"rational-overflow", quantities.Add, quantities.Int(math.MaxInt32), quantities.One, scalar(math.MaxInt32+1, quantities.Dimless)},
		{"rational-div-zero", quantities.Div, quantities.One, quantities.Zero, scalar(math.Inf(1), quantities.Dimless)},
		{"promote-quantity", quantities.Mul, quantities.Int(2), scalar(3, m), scalar(6, m)},
		{"promote-complex", quantities.Sub, quantities.Int(2), cplx(1, 1, quantities.Dimless), cplx(1, -1, quantities.Dimless)},
		{"complex-units", quantities.Div, cplx(2, 4, m), scalar(2, m), cplx(1, 2, quantities.Dimless)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.op(c.l, c.r)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, got, valueOpts); diff != "" {
				t.Errorf("wrong result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueArithErrors(t *testing.T) {
	m := quantities.Dim(quantities.Length, quantities.One)
	_, err := quantities.Add(quantities.One, scalar(1, m))
	var de *quantities.DimensionError
	if !errors.As(err, &de) {
		t.Errorf("1 + 1[m] gave %#v, want *DimensionError", err)
	}
	_, err = quantities.Add(cplx(1, 1, m), quantities.One)
	if !errors.As(err, &de) {
		t.Errorf("(1+i)[m] + 1 gave %#v, want *DimensionError", err)
	}
	_, err = quantities.Mul(quantities.Constant(quantities.Vector(1, 2), quantities.Dimless), quantities.Constant(quantities.Vector(1, 2, 3), quantities.Dimless))
	var le *quantities.LengthError
	if !errors.As(err, &le) {
		t.Errorf("vector mismatch gave %#v, want *LengthError", err)
	}
}

func TestValueUnary(t *testing.T) {
	cases := []struct {
		name string
		op   func(quantities.Value) (quantities.Value, error)
		x    quantities.Value
		want quantities.Value
	}{
		{"neg", infallible(quantities.Neg), quantities.NewRational(1, 2), quantities.NewRational(-1, 2)},
		{"neg-min", infallible(quantities.Neg), quantities.Int(math.MinInt32), scalar(1<<31, quantities.Dimless)},
		{"abs-rational", infallible(quantities.Abs), quantities.Int(-3), quantities.Int(3)},
		{"abs-complex", infallible(quantities.Abs), cplx(3, -4, quantities.Dimless), scalar(5, quantities.Dimless)},
		{"arg-neg", infallible(quantities.Arg), quantities.Int(-3), scalar(math.Pi, quantities.Dimless)},
		{"arg-pos", infallible(quantities.Arg), quantities.Int(3), quantities.Zero},
		{"arg-quantity", infallible(quantities.Arg), scalar(-1, quantities.Dimless), scalar(math.Pi, quantities.Dimless)},
		{"sqrt", quantities.Sqrt, quantities.Int(4), scalar(2, quantities.Dimless)},
		{"sqrt-neg", quantities.Sqrt, quantities.Int(-4), cplx(0, 2, quantities.Dimless)},
		{"exp", quantities.Exp, quantities.Zero, scalar(1, quantities.Dimless)},
		{"ln", quantities.Log, quantities.One, scalar(0, quantities.Dimless)},
		{"ln-neg", quantities.Log, quantities.Int(-1), cplx(0, math.Pi, quantities.Dimless)},
		{"ln-vector-neg", quantities.Log, quantities.Constant(quantities.Vector(1, -1), quantities.Dimless), quantities.Complex{Re: quantities.Vector(0, 0), Im: quantities.Vector(0, math.Pi), Dim: quantities.Dimless}},
		{"sin", quantities.Sin, quantities.Zero, scalar(0, quantities.Dimless)},
		{"cos", quantities.Cos, quantities.Zero, scalar(1, quantities.Dimless)},
		{"tan", quantities.Tan, quantities.One, scalar(math.Tan(1), quantities.Dimless)},
		{"exp-complex", quantities.Exp, cplx(0, math.Pi, quantities.Dimless), cplx(-1, 0, quantities.Dimless)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.op(c.x)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, got, valueOpts); diff != "" {
				t.Errorf("wrong result (-want +got):\n%s", diff)
			}
		})
	}
}

func infallible(f func(quantities.Value) quantities.Value) func(quantities.Value) (quantities.Value, error) {
	return func(v quantities.Value) (quantities.Value, error) { return f(v), nil }
}

func TestUnitless(t *testing.T) {
	m := quantities.Dim(quantities.Length, quantities.One)
	cases := []struct {
		v    quantities.Value
		want bool
	}{
		{quantities.One, true},
		{scalar(1, quantities.Dimless), true},
		{scalar(1, m), false},
		{cplx(1, 1, quantities.Dimless), true},
		{cplx(1, 1, m), false},
	}
	for _, c := range cases {
		if got := quantities.Unitless(c.v); got != c.want {
			t.Errorf("Unitless(%v) = %t", c.v, got)
		}
	}
}

func TestToQuantity(t *testing.T) {
	q, ok := quantities.ToQuantity(quantities.NewRational(1, 4))
	if !ok {
		t.Fatal("rational didn't convert")
	}
	if diff := cmp.Diff(scalar(0.25, quantities.Dimless), q, valueOpts); diff != "" {
		t.Errorf("wrong conversion (-want +got):\n%s", diff)
	}
	if _, ok := quantities.ToQuantity(cplx(1, 0, quantities.Dimless)); ok {
		t.Error("complex converted to quantity")
	}
	z := quantities.ToComplex(quantities.Constant(quantities.Vector(1, 2), quantities.Dimless))
	want := quantities.Complex{Re: quantities.Vector(1, 2), Im: quantities.Vector(0, 0), Dim: quantities.Dimless}
	if diff := cmp.Diff(want, z, valueOpts); diff != "" {
		t.Errorf("wrong conversion (-want +got):\n%s", diff)
	}
}
