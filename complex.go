package quantities

import (
	"math"
	"strconv"
	"strings"
)

// Complex is a complex scalar or vector with units. Complex values carry no
// derivatives. Re and Im always have the same shape.
type Complex struct {
	Re, Im FloatPlus
	Dim    Dimension
}

func complexFromRational(r Rational) Complex {
	return Complex{Re: Scalar(r.Float64()), Im: Scalar(0), Dim: Dimless}
}

func complexFromQuantity(q Quantity) Complex {
	return Complex{Re: q.Value, Im: q.Value.zeros(), Dim: q.Dim}
}

// Neg returns -c.
func (c Complex) Neg() Complex {
	return Complex{Re: c.Re.Neg(), Im: c.Im.Neg(), Dim: c.Dim}
}

// Add returns c+d. Both must have the same dimension.
func (c Complex) Add(d Complex) (Complex, error) {
	if !c.Dim.Equal(d.Dim) {
		return Complex{}, &DimensionError{Left: c.Dim, Right: d.Dim}
	}
	if m, n, ok := c.Re.StrictlyCompatible(d.Re); !ok {
		return Complex{}, &LengthError{M: m, N: n}
	}
	return Complex{Re: c.Re.add(d.Re), Im: c.Im.add(d.Im), Dim: c.Dim}, nil
}

// Sub returns c-d. Both must have the same dimension.
func (c Complex) Sub(d Complex) (Complex, error) {
	if !c.Dim.Equal(d.Dim) {
		return Complex{}, &DimensionError{Left: c.Dim, Right: d.Dim}
	}
	if m, n, ok := c.Re.StrictlyCompatible(d.Re); !ok {
		return Complex{}, &LengthError{M: m, N: n}
	}
	return Complex{Re: c.Re.sub(d.Re), Im: c.Im.sub(d.Im), Dim: c.Dim}, nil
}

// Mul returns c*d.
func (c Complex) Mul(d Complex) (Complex, error) {
	if m, n, ok := c.Re.StrictlyCompatible(d.Re); !ok {
		return Complex{}, &LengthError{M: m, N: n}
	}
	return c.mul(d), nil
}

func (c Complex) mul(d Complex) Complex {
	return Complex{
		Re:  c.Re.mul(d.Re).sub(c.Im.mul(d.Im)),
		Im:  c.Im.mul(d.Re).add(c.Re.mul(d.Im)),
		Dim: c.Dim.Mul(d.Dim),
	}
}

// Div returns c/d.
func (c Complex) Div(d Complex) (Complex, error) {
	if m, n, ok := c.Re.StrictlyCompatible(d.Re); !ok {
		return Complex{}, &LengthError{M: m, N: n}
	}
	return c.div(d), nil
}

func (c Complex) div(d Complex) Complex {
	den := d.Re.Square().add(d.Im.Square())
	return Complex{
		Re:  c.Re.mul(d.Re).add(c.Im.mul(d.Im)).div(den),
		Im:  c.Im.mul(d.Re).sub(c.Re.mul(d.Im)).div(den),
		Dim: c.Dim.Mul(d.Dim.Recip()),
	}
}

// Abs returns the magnitude of c with the units of c.
func (c Complex) Abs() Quantity {
	return Quantity{Value: c.Re.apply(c.Im, math.Hypot), Dim: c.Dim}
}

// Arg returns the argument of c, a dimensionless angle in (-π, π].
func (c Complex) Arg() Quantity {
	return Quantity{Value: c.Im.apply(c.Re, math.Atan2), Dim: Dimless}
}

func (c Complex) dimless(name string) error {
	if !c.Dim.IsDimless() {
		return &DimlessError{Func: name, Dim: c.Dim}
	}
	return nil
}

// Exp returns e^c. c must be dimensionless.
func (c Complex) Exp() (Complex, error) {
	if err := c.dimless("exp"); err != nil {
		return Complex{}, err
	}
	return c.exp(), nil
}

func (c Complex) exp() Complex {
	mag := c.Re.Map(math.Exp)
	return Complex{
		Re:  mag.mul(c.Im.Map(math.Cos)),
		Im:  mag.mul(c.Im.Map(math.Sin)),
		Dim: Dimless,
	}
}

// Log returns the principal natural logarithm of c. c must be dimensionless.
func (c Complex) Log() (Complex, error) {
	if err := c.dimless("ln"); err != nil {
		return Complex{}, err
	}
	return c.log(), nil
}

func (c Complex) log() Complex {
	return Complex{
		Re:  c.Abs().Value.Map(math.Log),
		Im:  c.Arg().Value,
		Dim: Dimless,
	}
}

// Cos returns the cosine of c. c must be dimensionless.
func (c Complex) Cos() (Complex, error) {
	if err := c.dimless("cos"); err != nil {
		return Complex{}, err
	}
	return c.cos(), nil
}

func (c Complex) cos() Complex {
	// cos(a+bi) = cos a cosh b - i sin a sinh b
	return Complex{
		Re:  c.Re.Map(math.Cos).mul(c.Im.Map(math.Cosh)),
		Im:  c.Re.Map(math.Sin).mul(c.Im.Map(math.Sinh)).Neg(),
		Dim: Dimless,
	}
}

// Sin returns the sine of c. c must be dimensionless.
func (c Complex) Sin() (Complex, error) {
	if err := c.dimless("sin"); err != nil {
		return Complex{}, err
	}
	return c.sin(), nil
}

func (c Complex) sin() Complex {
	// sin(a+bi) = sin a cosh b + i cos a sinh b
	return Complex{
		Re:  c.Re.Map(math.Sin).mul(c.Im.Map(math.Cosh)),
		Im:  c.Re.Map(math.Cos).mul(c.Im.Map(math.Sinh)),
		Dim: Dimless,
	}
}

// Tan returns the tangent of c as sin c / cos c. c must be dimensionless.
func (c Complex) Tan() (Complex, error) {
	if err := c.dimless("tan"); err != nil {
		return Complex{}, err
	}
	return c.sin().div(c.cos()), nil
}

// powRational raises c to a rational power in polar form.
func (c Complex) powRational(p Rational) Complex {
	e := p.Float64()
	mag := c.Abs().Value.Map(func(x float64) float64 { return math.Pow(x, e) })
	arg := c.Arg().Value.Map(func(x float64) float64 { return x * e })
	return Complex{
		Re:  mag.mul(arg.Map(math.Cos)),
		Im:  mag.mul(arg.Map(math.Sin)),
		Dim: c.Dim.Pow(p),
	}
}

// pow computes c^w = exp(w ln c). Both must be dimensionless.
func (c Complex) pow(w Complex) (Complex, error) {
	if m, n, ok := c.Re.StrictlyCompatible(w.Re); !ok {
		return Complex{}, &LengthError{M: m, N: n}
	}
	if !w.Dim.IsDimless() {
		return Complex{}, &PowDimensionError{Operand: "exponent", Dim: w.Dim}
	}
	if !c.Dim.IsDimless() {
		return Complex{}, &PowDimensionError{Operand: "base", Dim: c.Dim}
	}
	return w.mul(c.log()).exp(), nil
}

func (c Complex) String() string {
	var b strings.Builder
	if c.Re.IsVector() {
		re, im := c.Re.Elems(), c.Im.Elems()
		b.WriteByte('{')
		for i := range re {
			if i > 0 {
				b.WriteString(", ")
			}
			writeComplex(&b, re[i], im[i])
		}
		b.WriteByte('}')
	} else {
		re, _ := c.Re.Float64()
		im, _ := c.Im.Float64()
		writeComplex(&b, re, im)
	}
	if !c.Dim.IsDimless() {
		b.WriteString(" [" + c.Dim.String() + "]")
	}
	return b.String()
}

func writeComplex(b *strings.Builder, re, im float64) {
	b.WriteString(strconv.FormatFloat(re, 'g', -1, 64))
	if im >= 0 || math.IsNaN(im) {
		b.WriteByte('+')
	}
	b.WriteString(strconv.FormatFloat(im, 'g', -1, 64))
	b.WriteByte('i')
}

func (Complex) value() {}
