package quantities_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/quantities"
)

func TestFloatPlusShapes(t *testing.T) {
	s := quantities.Scalar(2)
	v := quantities.Vector(1, 2, 3)
	if s.IsVector() || s.Len() != 1 {
		t.Errorf("scalar has vector shape: %v", s)
	}
	if !v.IsVector() || v.Len() != 3 {
		t.Errorf("vector has wrong shape: %v", v)
	}
	if x, ok := s.Float64(); !ok || x != 2 {
		t.Errorf("scalar Float64 gave %g, %t", x, ok)
	}
	if _, ok := v.Float64(); ok {
		t.Error("vector Float64 reported a scalar")
	}
	if s := v.String(); s != "{1, 2, 3}" {
		t.Errorf("wrong vector string %q", s)
	}
}

func TestFloatPlusVectorCopies(t *testing.T) {
	xs := []float64{1, 2}
	v := quantities.Vector(xs...)
	xs[0] = 100
	if diff := cmp.Diff([]float64{1, 2}, v.Elems()); diff != "" {
		t.Errorf("vector aliases its argument (-want +got):\n%s", diff)
	}
	e := v.Elems()
	e[1] = 100
	if diff := cmp.Diff([]float64{1, 2}, v.Elems()); diff != "" {
		t.Errorf("Elems aliases the vector (-want +got):\n%s", diff)
	}
}

func TestFloatPlusArith(t *testing.T) {
	cases := []struct {
		name string
		op   func(a, b quantities.FloatPlus) (quantities.FloatPlus, error)
		a, b quantities.FloatPlus
		want []float64
		vec  bool
	}{
		{"scalar", quantities.FloatPlus.Add, quantities.Scalar(1), quantities.Scalar(2), []float64{3}, false},
		{"broadcast-left", quantities.FloatPlus.Mul, quantities.Scalar(2), quantities.Vector(1, 2, 3), []float64{2, 4, 6}, true},
		{"broadcast-right", quantities.FloatPlus.Sub, quantities.Vector(1, 2, 3), quantities.Scalar(1), []float64{0, 1, 2}, true},
		{"vector", quantities.FloatPlus.Div, quantities.Vector(1, 4), quantities.Vector(2, 8), []float64{0.5, 0.5}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.op(c.a, c.b)
			if err != nil {
				t.Fatal(err)
			}
			if got.IsVector() != c.vec {
				t.Errorf("wrong shape: %v", got)
			}
			if diff := cmp.Diff(c.want, got.Elems()); diff != "" {
				t.Errorf("wrong result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFloatPlusLengthMismatch(t *testing.T) {
	a := quantities.Vector(1, 2)
	b := quantities.Vector(1, 2, 3)
	if m, n, ok := a.StrictlyCompatible(b); ok || m != 2 || n != 3 {
		t.Errorf("StrictlyCompatible gave %d, %d, %t", m, n, ok)
	}
	_, err := a.Add(b)
	var le *quantities.LengthError
	if !errors.As(err, &le) {
		t.Fatalf("want *LengthError, got %#v", err)
	}
	if le.M != 2 || le.N != 3 {
		t.Errorf("wrong lengths in %v", le)
	}
	if msg := le.Error(); msg != "vector lengths not equal (2 != 3)" {
		t.Errorf("wrong message %q", msg)
	}
}

func TestFloatPlusMap(t *testing.T) {
	v := quantities.Vector(-1, 2).Map(func(x float64) float64 { return x * 10 })
	if diff := cmp.Diff([]float64{-10, 20}, v.Elems()); diff != "" {
		t.Errorf("wrong map (-want +got):\n%s", diff)
	}
	if !v.Any(func(x float64) bool { return x < 0 }) {
		t.Error("Any missed a negative element")
	}
	if v.Neg().Any(func(x float64) bool { return x == -10 }) {
		t.Error("Neg kept an element")
	}
	if diff := cmp.Diff([]float64{0.5}, quantities.Scalar(2).Recip().Elems()); diff != "" {
		t.Errorf("wrong reciprocal (-want +got):\n%s", diff)
	}
}
