package quantities

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/num/dual"
)

// Quantity is a real scalar or vector with units and first derivatives with
// respect to named variables. A variable missing from Derivs has derivative
// zero. Quantities are treated as immutable: operations build new values and
// new derivative maps.
type Quantity struct {
	Value  FloatPlus
	Derivs map[string]FloatPlus
	Dim    Dimension
}

// NewQuantity creates a quantity, checking that every derivative is either a
// scalar or a vector of the same length as the value.
func NewQuantity(value FloatPlus, derivs map[string]FloatPlus, dim Dimension) (Quantity, error) {
	d := make(map[string]FloatPlus, len(derivs))
	for k, v := range derivs {
		if v.IsVector() && (!value.IsVector() || v.Len() != value.Len()) {
			return Quantity{}, &LengthError{M: value.Len(), N: v.Len()}
		}
		d[k] = v
	}
	return Quantity{Value: value, Derivs: d, Dim: dim}, nil
}

// Variable creates a quantity that is the free variable name, so that its
// derivative with respect to name is 1.
func Variable(name string, value FloatPlus, dim Dimension) Quantity {
	return Quantity{
		Value:  value,
		Derivs: map[string]FloatPlus{name: Scalar(1)},
		Dim:    dim,
	}
}

// Constant creates a quantity with no derivatives.
func Constant(value FloatPlus, dim Dimension) Quantity {
	return Quantity{Value: value, Dim: dim}
}

func quantityFromRational(r Rational) Quantity {
	return Quantity{Value: Scalar(r.Float64()), Dim: Dimless}
}

// Deriv returns the derivative of q with respect to a variable.
func (q Quantity) Deriv(name string) FloatPlus {
	if d, ok := q.Derivs[name]; ok {
		return d
	}
	return Scalar(0)
}

// Vars returns the sorted names of the variables q tracks.
func (q Quantity) Vars() []string {
	names := make([]string, 0, len(q.Derivs))
	for k := range q.Derivs {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// Neg returns -q.
func (q Quantity) Neg() Quantity {
	d := make(map[string]FloatPlus, len(q.Derivs))
	for k, v := range q.Derivs {
		d[k] = v.Neg()
	}
	return Quantity{Value: q.Value.Neg(), Derivs: d, Dim: q.Dim}
}

// Add returns q+r. Both must have the same dimension.
func (q Quantity) Add(r Quantity) (Quantity, error) {
	if !q.Dim.Equal(r.Dim) {
		return Quantity{}, &DimensionError{Left: q.Dim, Right: r.Dim}
	}
	return q.binary(r, q.Dim, FloatPlus.add, func(_, dl, _, dr FloatPlus) FloatPlus {
		return dl.add(dr)
	})
}

// Sub returns q-r. Both must have the same dimension.
func (q Quantity) Sub(r Quantity) (Quantity, error) {
	if !q.Dim.Equal(r.Dim) {
		return Quantity{}, &DimensionError{Left: q.Dim, Right: r.Dim}
	}
	return q.binary(r, q.Dim, FloatPlus.sub, func(_, dl, _, dr FloatPlus) FloatPlus {
		return dl.sub(dr)
	})
}

// Mul returns q*r.
func (q Quantity) Mul(r Quantity) (Quantity, error) {
	return q.binary(r, q.Dim.Mul(r.Dim), FloatPlus.mul, func(l, dl, r, dr FloatPlus) FloatPlus {
		return dualSlope2(l, dl, r, dr, dual.Mul)
	})
}

// Div returns q/r.
func (q Quantity) Div(r Quantity) (Quantity, error) {
	return q.binary(r, q.Dim.Mul(r.Dim.Recip()), FloatPlus.div, func(l, dl, r, dr FloatPlus) FloatPlus {
		return dualSlope2(l, dl, r, dr, func(x, y dual.Number) dual.Number {
			return dual.Mul(x, dual.Inv(y))
		})
	})
}

// binary combines q and r with op after checking shapes. The derivative for
// each variable tracked by either side is dop(l, dl, r, dr), with zero for a
// side that does not track it.
func (q Quantity) binary(r Quantity, dim Dimension, op func(l, r FloatPlus) FloatPlus, dop func(l, dl, r, dr FloatPlus) FloatPlus) (Quantity, error) {
	if m, n, ok := q.Value.StrictlyCompatible(r.Value); !ok {
		return Quantity{}, &LengthError{M: m, N: n}
	}
	if err := q.fits(r.Value); err != nil {
		return Quantity{}, err
	}
	if err := r.fits(q.Value); err != nil {
		return Quantity{}, err
	}
	d := make(map[string]FloatPlus, len(q.Derivs)+len(r.Derivs))
	for k, dl := range q.Derivs {
		dr := r.Deriv(k)
		if m, n, ok := dl.StrictlyCompatible(dr); !ok {
			return Quantity{}, &LengthError{M: m, N: n}
		}
		d[k] = dop(q.Value, dl, r.Value, dr)
	}
	for k, dr := range r.Derivs {
		if _, ok := q.Derivs[k]; ok {
			continue
		}
		d[k] = dop(q.Value, Scalar(0), r.Value, dr)
	}
	return Quantity{Value: op(q.Value, r.Value), Derivs: d, Dim: dim}, nil
}

// fits checks that every derivative of q can be combined elementwise with
// both q's value and other.
func (q Quantity) fits(other FloatPlus) error {
	for _, d := range q.Derivs {
		for _, g := range [...]FloatPlus{q.Value, other} {
			if m, n, ok := d.StrictlyCompatible(g); !ok {
				return &LengthError{M: m, N: n}
			}
		}
	}
	return nil
}

// chain applies a dimensionless function fn to q. Derivatives are carried
// through df, the same function on dual numbers.
func (q Quantity) chain(name string, fn func(float64) float64, df func(dual.Number) dual.Number) (Quantity, error) {
	if !q.Dim.IsDimless() {
		return Quantity{}, &DimlessError{Func: name, Dim: q.Dim}
	}
	if err := q.fits(q.Value); err != nil {
		return Quantity{}, err
	}
	d := make(map[string]FloatPlus, len(q.Derivs))
	for k, v := range q.Derivs {
		d[k] = dualSlope(q.Value, v, df)
	}
	return Quantity{Value: q.Value.Map(fn), Derivs: d, Dim: Dimless}, nil
}

// dualSlope evaluates f on x + dx ϵ elementwise and keeps the ϵ part.
func dualSlope(x, dx FloatPlus, f func(dual.Number) dual.Number) FloatPlus {
	return dualSlope2(x, dx, Scalar(0), Scalar(0), func(a, _ dual.Number) dual.Number {
		return f(a)
	})
}

// dualSlope2 evaluates f on l + dl ϵ and r + dr ϵ elementwise and keeps the
// ϵ part. The four operands must be compatible.
func dualSlope2(l, dl, r, dr FloatPlus, f func(x, y dual.Number) dual.Number) FloatPlus {
	n := -1
	for _, v := range [...]FloatPlus{l, dl, r, dr} {
		if v.IsVector() {
			n = v.Len()
		}
	}
	at := func(i int) float64 {
		x := dual.Number{Real: l.elem(i), Emag: dl.elem(i)}
		y := dual.Number{Real: r.elem(i), Emag: dr.elem(i)}
		return f(x, y).Emag
	}
	if n < 0 {
		return Scalar(at(0))
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = at(i)
	}
	return FloatPlus{xs: v}
}

// Exp returns e^q. q must be dimensionless.
func (q Quantity) Exp() (Quantity, error) {
	return q.chain("exp", math.Exp, dual.Exp)
}

// Log returns the natural logarithm of q. q must be dimensionless. Callers
// wanting complex results for negative elements use Log on a Value instead.
func (q Quantity) Log() (Quantity, error) {
	return q.chain("ln", math.Log, dual.Log)
}

// Sin returns the sine of q. q must be dimensionless.
func (q Quantity) Sin() (Quantity, error) {
	return q.chain("sin", math.Sin, dual.Sin)
}

// Cos returns the cosine of q. q must be dimensionless.
func (q Quantity) Cos() (Quantity, error) {
	return q.chain("cos", math.Cos, dual.Cos)
}

// Tan returns the tangent of q. q must be dimensionless.
func (q Quantity) Tan() (Quantity, error) {
	return q.chain("tan", math.Tan, dual.Tan)
}

// Abs returns |q|, keeping its dimension.
func (q Quantity) Abs() Quantity {
	d := make(map[string]FloatPlus, len(q.Derivs))
	if len(q.Derivs) != 0 {
		sign := q.Value.Map(sgn)
		for k, v := range q.Derivs {
			d[k] = sign.mul(v)
		}
	}
	return Quantity{Value: q.Value.Map(math.Abs), Derivs: d, Dim: q.Dim}
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func (q Quantity) String() string {
	var b strings.Builder
	b.WriteString(q.Value.String())
	if !q.Dim.IsDimless() {
		b.WriteString(" [" + q.Dim.String() + "]")
	}
	for _, k := range q.Vars() {
		b.WriteString(" (d/d" + k + " " + q.Derivs[k].String() + ")")
	}
	return b.String()
}

func (Quantity) value() {}
