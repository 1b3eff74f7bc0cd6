package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/quantities"
)

func TestBind(t *testing.T) {
	env := quantities.NewEnvironment(quantities.StandardConsts(), quantities.StandardUnits(), nil)
	env, err := bind(env, [][2]string{{"y", "x^2"}}, [][2]string{{"x", "3"}})
	if err != nil {
		t.Fatal(err)
	}
	v, err := quantities.EvalString(env, "y")
	if err != nil {
		t.Fatal(err)
	}
	q, ok := v.(quantities.Quantity)
	if !ok {
		t.Fatalf("y is %T %v", v, v)
	}
	got := []float64{q.Value.Elems()[0], q.Deriv("x").Elems()[0]}
	if diff := cmp.Diff([]float64{9, 6}, got); diff != "" {
		t.Errorf("wrong y, dy/dx (-want +got):\n%s", diff)
	}
}

func TestBindErrors(t *testing.T) {
	env := quantities.NewEnvironment(quantities.StandardConsts(), quantities.StandardUnits(), nil)
	cases := []struct {
		name       string
		given, wrt [][2]string
	}{
		{"undefined", [][2]string{{"y", "z"}}, nil},
		{"complex", nil, [][2]string{{"x", "sqrt(-1)"}}},
		{"wrt-uses-given", [][2]string{{"a", "1"}}, [][2]string{{"x", "a"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := bind(env, c.given, c.wrt); err == nil {
				t.Error("no error")
			}
		})
	}
}
