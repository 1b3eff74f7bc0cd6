package quantities

import (
	"fmt"
	"math"
)

// Value is the result of evaluating an expression. Its dynamic type is one of
// Rational, Quantity, or Complex, in increasing order of generality.
type Value interface {
	fmt.Stringer
	value()
}

var (
	_ Value = Rational{}
	_ Value = Quantity{}
	_ Value = Complex{}
)

// Unitless reports whether v has no units.
func Unitless(v Value) bool {
	switch v := v.(type) {
	case Rational:
		return true
	case Quantity:
		return v.Dim.IsDimless()
	case Complex:
		return v.Dim.IsDimless()
	default:
		panic(badvalue(v))
	}
}

// ToQuantity promotes v to a Quantity. The second result is false if v is
// Complex.
func ToQuantity(v Value) (Quantity, bool) {
	switch v := v.(type) {
	case Rational:
		return quantityFromRational(v), true
	case Quantity:
		return v, true
	case Complex:
		return Quantity{}, false
	default:
		panic(badvalue(v))
	}
}

// ToComplex promotes v to a Complex.
func ToComplex(v Value) Complex {
	switch v := v.(type) {
	case Rational:
		return complexFromRational(v)
	case Quantity:
		return complexFromQuantity(v)
	case Complex:
		return v
	default:
		panic(badvalue(v))
	}
}

func badvalue(v Value) string {
	return fmt.Sprintf("quantities: invalid value type %T", v)
}

// binary applies the most exact applicable form of an operation: rational if
// both operands are rational and the result fits, real if neither is
// complex, and complex otherwise.
func binary(l, r Value, rop func(Rational, Rational) (Rational, bool), qop func(Quantity, Quantity) (Quantity, error), cop func(Complex, Complex) (Complex, error)) (Value, error) {
	if a, ok := l.(Rational); ok {
		if b, ok := r.(Rational); ok {
			if z, ok := rop(a, b); ok {
				return z, nil
			}
		}
	}
	if a, ok := ToQuantity(l); ok {
		if b, ok := ToQuantity(r); ok {
			z, err := qop(a, b)
			if err != nil {
				return nil, err
			}
			return z, nil
		}
	}
	z, err := cop(ToComplex(l), ToComplex(r))
	if err != nil {
		return nil, err
	}
	return z, nil
}

// Add returns l+r.
func Add(l, r Value) (Value, error) {
	return binary(l, r, Rational.Add, Quantity.Add, Complex.Add)
}

// Sub returns l-r.
func Sub(l, r Value) (Value, error) {
	return binary(l, r, Rational.Sub, Quantity.Sub, Complex.Sub)
}

// Mul returns l*r.
func Mul(l, r Value) (Value, error) {
	return binary(l, r, Rational.Mul, Quantity.Mul, Complex.Mul)
}

// Div returns l/r. Division of rationals by zero is carried out in floating
// point, producing an infinity or NaN.
func Div(l, r Value) (Value, error) {
	return binary(l, r, Rational.Div, Quantity.Div, Complex.Div)
}

// Neg returns -v.
func Neg(v Value) Value {
	switch v := v.(type) {
	case Rational:
		if z, ok := v.Neg(); ok {
			return z
		}
		return quantityFromRational(v).Neg()
	case Quantity:
		return v.Neg()
	case Complex:
		return v.Neg()
	default:
		panic(badvalue(v))
	}
}

// realfn applies a function that has a real form for non-complex arguments.
func realfn(v Value, qf func(Quantity) (Quantity, error), cf func(Complex) (Complex, error)) (Value, error) {
	if q, ok := ToQuantity(v); ok {
		z, err := qf(q)
		if err != nil {
			return nil, err
		}
		return z, nil
	}
	z, err := cf(ToComplex(v))
	if err != nil {
		return nil, err
	}
	return z, nil
}

// Exp returns e^v. v must be dimensionless.
func Exp(v Value) (Value, error) {
	return realfn(v, Quantity.Exp, Complex.Exp)
}

// Log returns the natural logarithm of v. v must be dimensionless. The
// logarithm of a real argument with any negative element is complex.
func Log(v Value) (Value, error) {
	if q, ok := ToQuantity(v); ok && q.Value.Any(func(x float64) bool { return x < 0 }) {
		z, err := ToComplex(q).Log()
		if err != nil {
			return nil, err
		}
		return z, nil
	}
	return realfn(v, Quantity.Log, Complex.Log)
}

// Sin returns the sine of v. v must be dimensionless.
func Sin(v Value) (Value, error) {
	return realfn(v, Quantity.Sin, Complex.Sin)
}

// Cos returns the cosine of v. v must be dimensionless.
func Cos(v Value) (Value, error) {
	return realfn(v, Quantity.Cos, Complex.Cos)
}

// Tan returns the tangent of v. v must be dimensionless.
func Tan(v Value) (Value, error) {
	return realfn(v, Quantity.Tan, Complex.Tan)
}

// Sqrt returns v^(1/2). The units of v are halved.
func Sqrt(v Value) (Value, error) {
	return Pow(v, NewRational(1, 2))
}

// Abs returns the magnitude of v with the units of v. The magnitude of a
// rational is exact.
func Abs(v Value) Value {
	switch v := v.(type) {
	case Rational:
		if v.Num >= 0 {
			return v
		}
		return Neg(v)
	case Quantity:
		return v.Abs()
	case Complex:
		return v.Abs()
	default:
		panic(badvalue(v))
	}
}

// Arg returns the argument of v as a dimensionless angle.
func Arg(v Value) Value {
	switch v := v.(type) {
	case Rational:
		if v.Num < 0 {
			return Quantity{Value: Scalar(math.Pi), Dim: Dimless}
		}
		return Zero
	case Quantity:
		return ToComplex(v).Arg()
	case Complex:
		return v.Arg()
	default:
		panic(badvalue(v))
	}
}
