package quantities

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Pow returns base^exp. The kind of the result depends on both operands:
//
//	base \ exp  Rational              Quantity            Complex
//	Rational    exact if exp integer  real (unitless)     complex (unitless)
//	Quantity    real, units scaled    real (unitless)     complex (unitless)
//	Complex     polar, units scaled   complex (unitless)  complex (unitless)
//
// A real base with any negative element becomes complex when the exponent is
// a rational with even denominator or a Quantity. Rational powers scale the
// base's units; all other powers require both operands to be unitless. Zero
// raised to a negative integer is a DomainError.
func Pow(base, exp Value) (Value, error) {
	switch e := exp.(type) {
	case Rational:
		e = e.norm()
		switch b := base.(type) {
		case Rational:
			if !e.IsInt() {
				return powQR(quantityFromRational(b), e)
			}
			if b.IsZero() && e.Num < 0 {
				return nil, &DomainError{X: b, Func: "^"}
			}
			if z, ok := b.PowInt(e.Num); ok {
				return z, nil
			}
			// Overflow. Carry on in floating point.
			return powQR(quantityFromRational(b), e)
		case Quantity:
			return powQR(b, e)
		case Complex:
			return b.powRational(e), nil
		default:
			panic(badvalue(base))
		}
	case Quantity:
		if b, ok := ToQuantity(base); ok {
			return powQQ(b, e)
		}
		z, err := ToComplex(base).pow(complexFromQuantity(e))
		if err != nil {
			return nil, err
		}
		return z, nil
	case Complex:
		z, err := ToComplex(base).pow(e)
		if err != nil {
			return nil, err
		}
		return z, nil
	default:
		panic(badvalue(exp))
	}
}

func negative(x float64) bool {
	return x < 0
}

// signedPow computes x^p for real x, keeping the sign of x when the numerator
// of p is odd. It is only meaningful when x ≥ 0 or the denominator of p is
// odd.
func signedPow(x float64, p Rational) float64 {
	r := math.Pow(math.Abs(x), p.Float64())
	if p.Num%2 != 0 && math.Signbit(x) {
		r = -r
	}
	return r
}

// powQR raises a quantity to a rational power.
func powQR(b Quantity, p Rational) (Value, error) {
	if p.Den%2 == 0 && b.Value.Any(negative) {
		return complexFromQuantity(b).powRational(p), nil
	}
	if err := b.fits(b.Value); err != nil {
		return nil, err
	}
	value := b.Value.Map(func(x float64) float64 { return signedPow(x, p) })
	d := make(map[string]FloatPlus, len(b.Derivs))
	for k, v := range b.Derivs {
		d[k] = dualSlope(b.Value, v, func(x dual.Number) dual.Number { return signedPowDual(x, p) })
	}
	return Quantity{Value: value, Derivs: d, Dim: b.Dim.Pow(p)}, nil
}

// signedPowDual is signedPow on dual numbers. Negative bases are reflected
// onto the positive axis, where dual.PowReal is defined.
func signedPowDual(x dual.Number, p Rational) dual.Number {
	if x.Real == 0 {
		// dual.PowReal moves a zero base off zero before taking the slope.
		e := p.Float64()
		return dual.Number{Real: math.Pow(0, e), Emag: x.Emag * e * math.Pow(0, e-1)}
	}
	neg := math.Signbit(x.Real)
	if neg {
		x = dual.Number{Real: -x.Real, Emag: -x.Emag}
	}
	r := dual.PowReal(x, p.Float64())
	if neg && p.Num%2 != 0 {
		r = dual.Number{Real: -r.Real, Emag: -r.Emag}
	}
	return r
}

// powQQ raises a quantity to a quantity power. Both must be unitless.
func powQQ(b, e Quantity) (Value, error) {
	if m, n, ok := b.Value.StrictlyCompatible(e.Value); !ok {
		return nil, &LengthError{M: m, N: n}
	}
	if !e.Dim.IsDimless() {
		return nil, &PowDimensionError{Operand: "exponent", Dim: e.Dim}
	}
	if !b.Dim.IsDimless() {
		return nil, &PowDimensionError{Operand: "base", Dim: b.Dim}
	}
	if b.Value.Any(negative) {
		z, err := complexFromQuantity(b).pow(complexFromQuantity(e))
		if err != nil {
			return nil, err
		}
		return z, nil
	}
	q, err := b.binary(e, Dimless, func(l, r FloatPlus) FloatPlus {
		return l.apply(r, math.Pow)
	}, func(l, dl, r, dr FloatPlus) FloatPlus {
		return dualSlope2(l, dl, r, dr, dual.Pow)
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}
