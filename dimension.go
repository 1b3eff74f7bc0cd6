package quantities

import "strings"

// Dimension is a vector of rational exponents over the seven SI base
// quantities, indexed by the Time through Luminous constants.
type Dimension [7]Rational

// Indices of SI base quantities in a Dimension.
const (
	Time = iota
	Length
	Mass
	Current
	Temperature
	Amount
	Luminous
)

// siSymbols are the base unit symbols in Dimension order.
var siSymbols = [7]string{"s", "m", "kg", "A", "K", "mol", "cd"}

// Dimless is the dimension of pure numbers.
var Dimless = Dimension{Zero, Zero, Zero, Zero, Zero, Zero, Zero}

// Dim creates a dimension with a single nonzero exponent.
func Dim(base int, exp Rational) Dimension {
	d := Dimless
	d[base] = exp.norm()
	return d
}

// Mul returns the dimension of a product of quantities with dimensions d and
// e.
func (d Dimension) Mul(e Dimension) Dimension {
	var r Dimension
	for i := range d {
		r[i] = d[i].add(e[i])
	}
	return r
}

// Recip returns the dimension of the reciprocal of a quantity.
func (d Dimension) Recip() Dimension {
	var r Dimension
	for i := range d {
		r[i] = d[i].neg()
	}
	return r
}

// Pow returns the dimension of a quantity raised to the power p.
func (d Dimension) Pow(p Rational) Dimension {
	var r Dimension
	for i := range d {
		r[i] = d[i].mul(p)
	}
	return r
}

// Equal reports whether every exponent of d equals that of e.
func (d Dimension) Equal(e Dimension) bool {
	for i := range d {
		if !d[i].Equal(e[i]) {
			return false
		}
	}
	return true
}

// IsDimless reports whether d is the dimension of pure numbers.
func (d Dimension) IsDimless() bool {
	return d.Equal(Dimless)
}

// String formats d as base unit symbols with exponents, e.g. "m kg s^-2".
// Dimensionless is the empty string.
func (d Dimension) String() string {
	var b strings.Builder
	// Positive exponents first.
	for pass := 0; pass < 2; pass++ {
		for _, i := range [...]int{Length, Mass, Time, Current, Temperature, Amount, Luminous} {
			e := d[i].norm()
			if e.Num == 0 || (pass == 0) != (e.Num > 0) {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(siSymbols[i])
			if e.Den != 1 || e.Num != 1 {
				b.WriteByte('^')
				if e.Den != 1 {
					b.WriteString("(" + e.String() + ")")
				} else {
					b.WriteString(e.String())
				}
			}
		}
	}
	return b.String()
}
