package quantities_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/quantities"
)

func TestNewRational(t *testing.T) {
	cases := []struct {
		name     string
		num      int32
		den      uint32
		want     quantities.Rational
		str      string
		isint    bool
		floatval float64
	}{
		{"zero", 0, 7, quantities.Zero, "0", true, 0},
		{"one", 3, 3, quantities.One, "1", true, 1},
		{"half", 2, 4, quantities.Rational{Num: 1, Den: 2}, "1/2", false, 0.5},
		{"neg", -6, 4, quantities.Rational{Num: -3, Den: 2}, "-3/2", false, -1.5},
		{"big", math.MaxInt32, 1, quantities.Int(math.MaxInt32), "2147483647", true, math.MaxInt32},
		{"min", math.MinInt32, 2, quantities.Int(math.MinInt32 / 2), "-1073741824", true, math.MinInt32 / 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := quantities.NewRational(c.num, c.den)
			if r != c.want {
				t.Errorf("want %#v, got %#v", c.want, r)
			}
			if s := r.String(); s != c.str {
				t.Errorf("want string %q, got %q", c.str, s)
			}
			if r.IsInt() != c.isint {
				t.Errorf("IsInt gave %t", r.IsInt())
			}
			if f := r.Float64(); f != c.floatval {
				t.Errorf("want float %g, got %g", c.floatval, f)
			}
		})
	}
}

func TestNewRationalZeroDen(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	quantities.NewRational(1, 0)
}

func TestRationalZeroValue(t *testing.T) {
	var r quantities.Rational
	if !r.IsZero() || !r.IsInt() || !r.Equal(quantities.Zero) {
		t.Errorf("zero value %#v isn't zero", r)
	}
	z, ok := r.Add(quantities.One)
	if !ok || z != quantities.One {
		t.Errorf("0+1 gave %v, %t", z, ok)
	}
}

func TestRationalArith(t *testing.T) {
	half := quantities.NewRational(1, 2)
	third := quantities.NewRational(1, 3)
	big := quantities.Int(math.MaxInt32)
	cases := []struct {
		name string
		op   func(a, b quantities.Rational) (quantities.Rational, bool)
		a, b quantities.Rational
		want quantities.Rational
		ok   bool
	}{
		{"add", quantities.Rational.Add, half, third, quantities.NewRational(5, 6), true},
		{"sub", quantities.Rational.Sub, half, third, quantities.NewRational(1, 6), true},
		{"mul", quantities.Rational.Mul, half, third, quantities.NewRational(1, 6), true},
		{"div", quantities.Rational.Div, half, third, quantities.NewRational(3, 2), true},
		{"add-reduce", quantities.Rational.Add, half, half, quantities.One, true},
		{"add-overflow", quantities.Rational.Add, big, quantities.One, quantities.Rational{}, false},
		{"sub-overflow", quantities.Rational.Sub, quantities.Int(math.MinInt32), quantities.One, quantities.Rational{}, false},
		{"mul-overflow", quantities.Rational.Mul, big, quantities.Int(2), quantities.Rational{}, false},
		{"mul-cancel", quantities.Rational.Mul, big, quantities.NewRational(1, math.MaxInt32), quantities.One, true},
		{"div-zero", quantities.Rational.Div, quantities.One, quantities.Zero, quantities.Rational{}, false},
		{"div-overflow", quantities.Rational.Div, big, half, quantities.Rational{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.op(c.a, c.b)
			if ok != c.ok {
				t.Fatalf("%v, %v: want ok %t, got %t with %v", c.a, c.b, c.ok, ok, got)
			}
			if ok && got != c.want {
				t.Errorf("%v, %v: want %v, got %v", c.a, c.b, c.want, got)
			}
		})
	}
}

func TestRationalNegInv(t *testing.T) {
	if r, ok := quantities.NewRational(-2, 3).Neg(); !ok || r != quantities.NewRational(2, 3) {
		t.Errorf("-(-2/3) gave %v, %t", r, ok)
	}
	if r, ok := quantities.Int(math.MinInt32).Neg(); ok {
		t.Errorf("-MinInt32 gave %v", r)
	}
	if r, ok := quantities.NewRational(-2, 3).Inv(); !ok || r != quantities.NewRational(-3, 2) {
		t.Errorf("1/(-2/3) gave %v, %t", r, ok)
	}
	if r, ok := quantities.Zero.Inv(); ok {
		t.Errorf("1/0 gave %v", r)
	}
	if r, ok := quantities.Int(math.MinInt32).Inv(); !ok || r != quantities.NewRational(-1, 1<<31) {
		t.Errorf("1/MinInt32 gave %v, %t", r, ok)
	}
}

func TestRationalPowInt(t *testing.T) {
	cases := []struct {
		name string
		r    quantities.Rational
		n    int32
		want quantities.Rational
		ok   bool
	}{
		{"zero-exp", quantities.Int(7), 0, quantities.One, true},
		{"square", quantities.Int(3), 2, quantities.Int(9), true},
		{"cube-neg", quantities.Int(-2), 3, quantities.Int(-8), true},
		{"frac", quantities.NewRational(2, 3), 3, quantities.NewRational(8, 27), true},
		{"neg-exp", quantities.Int(2), -3, quantities.NewRational(1, 8), true},
		{"neg-exp-frac", quantities.NewRational(-2, 3), -2, quantities.NewRational(9, 4), true},
		{"two31", quantities.Int(2), 31, quantities.Rational{}, false},
		{"two30", quantities.Int(2), 30, quantities.Int(1 << 30), true},
		{"neg-two31", quantities.Int(-2), 31, quantities.Int(math.MinInt32), true},
		{"one-huge", quantities.One, math.MaxInt32, quantities.One, true},
		{"negone-min", quantities.Int(-1), math.MinInt32, quantities.One, true},
		{"negone-odd", quantities.Int(-1), math.MaxInt32, quantities.Int(-1), true},
		{"zero-neg", quantities.Zero, -1, quantities.Rational{}, false},
		{"ten-overflow", quantities.Int(10), 10, quantities.Rational{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := c.r.PowInt(c.n)
			if ok != c.ok {
				t.Fatalf("%v^%d: want ok %t, got %t with %v", c.r, c.n, c.ok, ok, got)
			}
			if ok && got != c.want {
				t.Errorf("%v^%d: want %v, got %v", c.r, c.n, c.want, got)
			}
		})
	}
}
