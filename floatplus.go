package quantities

import (
	"strconv"
	"strings"
)

// FloatPlus is a real scalar or a vector of reals. Binary operations broadcast
// scalars over vectors; two vectors must have the same length. Vectors are
// never resized. The zero value is the scalar 0.
type FloatPlus struct {
	x  float64
	xs []float64 // non-nil iff vector
}

// Scalar creates a scalar FloatPlus.
func Scalar(x float64) FloatPlus {
	return FloatPlus{x: x}
}

// Vector creates a vector FloatPlus holding a copy of xs.
func Vector(xs ...float64) FloatPlus {
	v := make([]float64, len(xs))
	copy(v, xs)
	return FloatPlus{xs: v}
}

// IsVector reports whether f is a vector.
func (f FloatPlus) IsVector() bool {
	return f.xs != nil
}

// Len returns the number of elements in a vector, or 1 for a scalar.
func (f FloatPlus) Len() int {
	if f.xs == nil {
		return 1
	}
	return len(f.xs)
}

// Float64 returns the value of a scalar. The second result is false for
// vectors.
func (f FloatPlus) Float64() (float64, bool) {
	return f.x, f.xs == nil
}

// Elems returns a copy of the elements of f. A scalar has one element.
func (f FloatPlus) Elems() []float64 {
	if f.xs == nil {
		return []float64{f.x}
	}
	return append([]float64(nil), f.xs...)
}

// Any reports whether pred holds for any element of f.
func (f FloatPlus) Any(pred func(float64) bool) bool {
	if f.xs == nil {
		return pred(f.x)
	}
	for _, x := range f.xs {
		if pred(x) {
			return true
		}
	}
	return false
}

// Map applies op to every element of f.
func (f FloatPlus) Map(op func(float64) float64) FloatPlus {
	if f.xs == nil {
		return FloatPlus{x: op(f.x)}
	}
	v := make([]float64, len(f.xs))
	for i, x := range f.xs {
		v[i] = op(x)
	}
	return FloatPlus{xs: v}
}

// Neg returns -f.
func (f FloatPlus) Neg() FloatPlus {
	return f.Map(func(x float64) float64 { return -x })
}

// Recip returns 1/f.
func (f FloatPlus) Recip() FloatPlus {
	return f.Map(func(x float64) float64 { return 1 / x })
}

// Square returns f*f.
func (f FloatPlus) Square() FloatPlus {
	return f.Map(func(x float64) float64 { return x * x })
}

// elem returns element i of a vector, or the value of a scalar for any i.
func (f FloatPlus) elem(i int) float64 {
	if f.xs == nil {
		return f.x
	}
	return f.xs[i]
}

// zeros returns a FloatPlus of zeros with the same shape as f.
func (f FloatPlus) zeros() FloatPlus {
	return f.Map(func(float64) float64 { return 0 })
}

// StrictlyCompatible checks whether f and g can be combined elementwise. If
// both are vectors of different lengths, the result is the two lengths and
// false.
func (f FloatPlus) StrictlyCompatible(g FloatPlus) (m, n int, ok bool) {
	if f.xs != nil && g.xs != nil && len(f.xs) != len(g.xs) {
		return len(f.xs), len(g.xs), false
	}
	return 0, 0, true
}

// Apply combines f and g elementwise with op, checking shapes.
func (f FloatPlus) Apply(g FloatPlus, op func(a, b float64) float64) (FloatPlus, error) {
	if m, n, ok := f.StrictlyCompatible(g); !ok {
		return FloatPlus{}, &LengthError{M: m, N: n}
	}
	return f.apply(g, op), nil
}

// Add returns f+g.
func (f FloatPlus) Add(g FloatPlus) (FloatPlus, error) {
	return f.Apply(g, fadd)
}

// Sub returns f-g.
func (f FloatPlus) Sub(g FloatPlus) (FloatPlus, error) {
	return f.Apply(g, fsub)
}

// Mul returns f*g.
func (f FloatPlus) Mul(g FloatPlus) (FloatPlus, error) {
	return f.Apply(g, fmul)
}

// Div returns f/g.
func (f FloatPlus) Div(g FloatPlus) (FloatPlus, error) {
	return f.Apply(g, fdiv)
}

func fadd(a, b float64) float64 { return a + b }
func fsub(a, b float64) float64 { return a - b }
func fmul(a, b float64) float64 { return a * b }
func fdiv(a, b float64) float64 { return a / b }

// apply is the unchecked form of Apply. Callers must have established shape
// compatibility already; mismatched vectors panic.
func (f FloatPlus) apply(g FloatPlus, op func(a, b float64) float64) FloatPlus {
	switch {
	case f.xs == nil && g.xs == nil:
		return FloatPlus{x: op(f.x, g.x)}
	case g.xs == nil:
		v := make([]float64, len(f.xs))
		for i, a := range f.xs {
			v[i] = op(a, g.x)
		}
		return FloatPlus{xs: v}
	case f.xs == nil:
		v := make([]float64, len(g.xs))
		for i, b := range g.xs {
			v[i] = op(f.x, b)
		}
		return FloatPlus{xs: v}
	default:
		if len(f.xs) != len(g.xs) {
			panic("quantities: unchecked operation on vectors of lengths " + strconv.Itoa(len(f.xs)) + " and " + strconv.Itoa(len(g.xs)))
		}
		v := make([]float64, len(f.xs))
		for i, a := range f.xs {
			v[i] = op(a, g.xs[i])
		}
		return FloatPlus{xs: v}
	}
}

func (f FloatPlus) add(g FloatPlus) FloatPlus { return f.apply(g, fadd) }
func (f FloatPlus) sub(g FloatPlus) FloatPlus { return f.apply(g, fsub) }
func (f FloatPlus) mul(g FloatPlus) FloatPlus { return f.apply(g, fmul) }
func (f FloatPlus) div(g FloatPlus) FloatPlus { return f.apply(g, fdiv) }

// Equal reports whether f and g have the same shape and elements.
func (f FloatPlus) Equal(g FloatPlus) bool {
	if (f.xs == nil) != (g.xs == nil) {
		return false
	}
	if f.xs == nil {
		return f.x == g.x
	}
	if len(f.xs) != len(g.xs) {
		return false
	}
	for i := range f.xs {
		if f.xs[i] != g.xs[i] {
			return false
		}
	}
	return true
}

func (f FloatPlus) String() string {
	if f.xs == nil {
		return strconv.FormatFloat(f.x, 'g', -1, 64)
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, x := range f.xs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteByte('}')
	return b.String()
}
