package quantities_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/quantities"
)

func TestPow(t *testing.T) {
	m := quantities.Dim(quantities.Length, quantities.One)
	half := quantities.NewRational(1, 2)
	cases := []struct {
		name      string
		base, exp quantities.Value
		want      quantities.Value
	}{
		// Rational base.
		{"rr-int", quantities.Int(2), quantities.Int(10), quantities.Int(1024)},
		{"rr-neg", quantities.Int(2), quantities.Int(-2), quantities.NewRational(1, 4)},
		{"rr-frac", quantities.NewRational(2, 3), quantities.Int(2), quantities.NewRational(4, 9)},
		{"rr-root", quantities.Int(4), half, scalar(2, quantities.Dimless)},
		{"rr-overflow", quantities.Int(2), quantities.Int(31), scalar(1<<31, quantities.Dimless)},
		{"rr-even-root-neg", quantities.Int(-4), half, cplx(0, 2, quantities.Dimless)},
		{"rr-odd-root-neg", quantities.Int(-8), quantities.NewRational(1, 3), scalar(-2, quantities.Dimless)},
		{"rq", quantities.Int(2), scalar(0.5, quantities.Dimless), scalar(math.Sqrt2, quantities.Dimless)},
		{"rc", quantities.Int(-1), cplx(0.5, 0, quantities.Dimless), cplx(0, 1, quantities.Dimless)},
		// Quantity base.
		{"qr-units", scalar(4, m.Pow(quantities.Int(2))), half, scalar(2, m)},
		{"qr-cube", scalar(2, m), quantities.Int(3), scalar(8, m.Pow(quantities.Int(3)))},
		{"qr-neg-even", scalar(-8, quantities.Dimless), half, cplx(0, math.Sqrt(8), quantities.Dimless)},
		{"qq", scalar(9, quantities.Dimless), scalar(0.5, quantities.Dimless), scalar(3, quantities.Dimless)},
		{"qq-neg", scalar(-1, quantities.Dimless), scalar(0.5, quantities.Dimless), cplx(0, 1, quantities.Dimless)},
		{"qc", scalar(math.E, quantities.Dimless), cplx(0, math.Pi, quantities.Dimless), cplx(-1, 0, quantities.Dimless)},
		// Complex base.
		{"cr", cplx(0, 1, quantities.Dimless), quantities.Int(2), cplx(-1, 0, quantities.Dimless)},
		{"cr-units", cplx(0, 2, m), quantities.Int(2), cplx(-4, 0, m.Pow(quantities.Int(2)))},
		{"cq", cplx(0, 1, quantities.Dimless), scalar(2, quantities.Dimless), cplx(-1, 0, quantities.Dimless)},
		{"cc", cplx(0, 1, quantities.Dimless), cplx(0, 1, quantities.Dimless), cplx(math.Exp(-math.Pi/2), 0, quantities.Dimless)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := quantities.Pow(c.base, c.exp)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, got, valueOpts); diff != "" {
				t.Errorf("%v^%v (-want +got):\n%s", c.base, c.exp, diff)
			}
		})
	}
}

func TestPowZeroNegative(t *testing.T) {
	_, err := quantities.Pow(quantities.Zero, quantities.Int(-1))
	var de *quantities.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("want *DomainError, got %#v", err)
	}
	if !errors.Is(err, quantities.ErrDivisionByZero) {
		t.Errorf("%v doesn't unwrap to ErrDivisionByZero", err)
	}
}

func TestPowDimensionErrors(t *testing.T) {
	m := quantities.Dim(quantities.Length, quantities.One)
	cases := []struct {
		name      string
		base, exp quantities.Value
		operand   string
	}{
		{"qq-base", scalar(2, m), scalar(2, quantities.Dimless), "base"},
		{"qq-exp", scalar(2, quantities.Dimless), scalar(2, m), "exponent"},
		{"rq-exp", quantities.Int(2), scalar(2, m), "exponent"},
		{"cc-base", cplx(1, 1, m), cplx(1, 1, quantities.Dimless), "base"},
		{"qc-exp", scalar(2, quantities.Dimless), cplx(1, 1, m), "exponent"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := quantities.Pow(c.base, c.exp)
			var pe *quantities.PowDimensionError
			if !errors.As(err, &pe) {
				t.Fatalf("want *PowDimensionError, got %#v", err)
			}
			if pe.Operand != c.operand {
				t.Errorf("want operand %q, got %q", c.operand, pe.Operand)
			}
		})
	}
}

func TestPowDerivatives(t *testing.T) {
	x := quantities.Variable("x", quantities.Scalar(3), quantities.Dimless)
	cases := []struct {
		name  string
		base  quantities.Value
		exp   quantities.Value
		value float64
		dx    float64
	}{
		{"square", x, quantities.Int(2), 9, 6},
		{"root", x, quantities.NewRational(1, 2), math.Sqrt(3), 0.5 / math.Sqrt(3)},
		{"recip", x, quantities.Int(-1), 1.0 / 3, -1.0 / 9},
		{"exp-base", scalar(2, quantities.Dimless), x, 8, 8 * math.Ln2},
		{"self", x, x, 27, 27 * (math.Log(3) + 1)},
		{"square-at-zero", quantities.Variable("x", quantities.Scalar(0), quantities.Dimless), quantities.Int(2), 0, 0},
		{"identity-at-zero", quantities.Variable("x", quantities.Scalar(0), quantities.Dimless), quantities.One, 0, 1},
		{"odd-root-neg", quantities.Variable("x", quantities.Scalar(-8), quantities.Dimless), quantities.NewRational(1, 3), -2, 1.0 / 12},
		{"cube-root-sq-neg", quantities.Variable("x", quantities.Scalar(-8), quantities.Dimless), quantities.NewRational(2, 3), 4, -1.0 / 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := quantities.Pow(c.base, c.exp)
			if err != nil {
				t.Fatal(err)
			}
			q, ok := v.(quantities.Quantity)
			if !ok {
				t.Fatalf("want Quantity, got %T", v)
			}
			got := []float64{q.Value.Elems()[0], q.Deriv("x").Elems()[0]}
			if diff := cmp.Diff([]float64{c.value, c.dx}, got, approx); diff != "" {
				t.Errorf("wrong value, d/dx (-want +got):\n%s", diff)
			}
		})
	}
}
