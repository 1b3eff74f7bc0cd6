package quantities

import (
	"math"
	"math/big"
	"strconv"
)

// Rational is an exact fraction of fixed-width integers. Rationals made by
// this package are in lowest terms with the sign carried by the numerator.
// Literals need not be reduced; every operation reduces its operands first.
// The zero value is zero.
//
// The exported arithmetic methods are checked: they report false instead of
// wrapping when a result does not fit.
type Rational struct {
	Num int32
	Den uint32
}

// Frequently used rationals.
var (
	Zero = Rational{0, 1}
	One  = Rational{1, 1}
)

// NewRational creates num/den in lowest terms. Panics if den is zero.
func NewRational(num int32, den uint32) Rational {
	if den == 0 {
		panic("quantities: zero denominator")
	}
	r, _ := reduce(int64(num), int64(den))
	return r
}

// Int creates an integer rational.
func Int(n int32) Rational {
	return Rational{n, 1}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// reduce brings n/d to lowest terms with a positive denominator. The second
// result is false if the reduced fraction does not fit.
func reduce(n, d int64) (Rational, bool) {
	if d == 0 {
		return Rational{}, false
	}
	if d < 0 {
		n, d = -n, -d
	}
	if n == 0 {
		return Zero, true
	}
	an := n
	if an < 0 {
		an = -an
	}
	c := int64(gcd(uint64(an), uint64(d)))
	n /= c
	d /= c
	if n < math.MinInt32 || n > math.MaxInt32 || d > math.MaxUint32 {
		return Rational{}, false
	}
	return Rational{int32(n), uint32(d)}, true
}

// norm returns r in lowest terms. Literal Rationals may be unreduced or have
// a zero denominator; the latter are treated as integers.
func (r Rational) norm() Rational {
	if r.Den <= 1 {
		return Rational{r.Num, 1}
	}
	// Reducing never grows either part, so this always fits.
	z, _ := reduce(int64(r.Num), int64(r.Den))
	return z
}

// IsZero reports whether r is zero.
func (r Rational) IsZero() bool {
	return r.Num == 0
}

// IsInt reports whether r is an integer.
func (r Rational) IsInt() bool {
	return r.norm().Den == 1
}

// Float64 returns the nearest float64 to r.
func (r Rational) Float64() float64 {
	r = r.norm()
	return float64(r.Num) / float64(r.Den)
}

// Neg returns -r. It fails only for a numerator of math.MinInt32.
func (r Rational) Neg() (Rational, bool) {
	r = r.norm()
	if r.Num == math.MinInt32 {
		return Rational{}, false
	}
	return Rational{-r.Num, r.Den}, true
}

// Inv returns 1/r. It fails for zero and for results that do not fit.
func (r Rational) Inv() (Rational, bool) {
	r = r.norm()
	if r.Num == 0 {
		return Rational{}, false
	}
	return reduce(int64(r.Den), int64(r.Num))
}

// Add returns r+s.
func (r Rational) Add(s Rational) (Rational, bool) {
	r, s = r.norm(), s.norm()
	if wide(r, s) {
		return fromBig(new(big.Rat).Add(r.big(), s.big()))
	}
	return reduce(int64(r.Num)*int64(s.Den)+int64(s.Num)*int64(r.Den), int64(r.Den)*int64(s.Den))
}

// Sub returns r-s.
func (r Rational) Sub(s Rational) (Rational, bool) {
	r, s = r.norm(), s.norm()
	if wide(r, s) {
		return fromBig(new(big.Rat).Sub(r.big(), s.big()))
	}
	return reduce(int64(r.Num)*int64(s.Den)-int64(s.Num)*int64(r.Den), int64(r.Den)*int64(s.Den))
}

// Mul returns r*s.
func (r Rational) Mul(s Rational) (Rational, bool) {
	r, s = r.norm(), s.norm()
	if wide(r, s) {
		return fromBig(new(big.Rat).Mul(r.big(), s.big()))
	}
	return reduce(int64(r.Num)*int64(s.Num), int64(r.Den)*int64(s.Den))
}

// wide reports whether the product of the denominators of r and s might not
// fit in an int64.
func wide(r, s Rational) bool {
	return r.Den > math.MaxInt32 || s.Den > math.MaxInt32
}

func (r Rational) big() *big.Rat {
	return big.NewRat(int64(r.Num), int64(r.Den))
}

// fromBig converts an exact result back, reporting false if it does not fit.
func fromBig(z *big.Rat) (Rational, bool) {
	n, d := z.Num(), z.Denom()
	if !n.IsInt64() || !d.IsInt64() {
		return Rational{}, false
	}
	return reduce(n.Int64(), d.Int64())
}

// Div returns r/s. It fails if s is zero.
func (r Rational) Div(s Rational) (Rational, bool) {
	r, s = r.norm(), s.norm()
	if s.Num == 0 {
		return Rational{}, false
	}
	return reduce(int64(r.Num)*int64(s.Den), int64(r.Den)*int64(s.Num))
}

// PowInt returns r^n for an integer n. It fails when the result does not fit
// and when r is zero and n is negative; callers distinguish the latter by
// checking r.IsZero.
func (r Rational) PowInt(n int32) (Rational, bool) {
	b := r.norm()
	e := int64(n)
	if e < 0 {
		var ok bool
		if b, ok = b.Inv(); !ok {
			return Rational{}, false
		}
		e = -e
	}
	z := One
	for e != 0 {
		var ok bool
		if e&1 != 0 {
			if z, ok = z.Mul(b); !ok {
				return Rational{}, false
			}
		}
		e >>= 1
		if e == 0 {
			break
		}
		if b, ok = b.Mul(b); !ok {
			return Rational{}, false
		}
	}
	return z, true
}

// Equal reports whether r and s are the same number.
func (r Rational) Equal(s Rational) bool {
	return r.norm() == s.norm()
}

// add, neg, and mul are the unchecked forms used by the dimension algebra,
// whose exponents stay far from the limits of int32. They panic on overflow
// rather than wrap.
func (r Rational) add(s Rational) Rational {
	z, ok := r.Add(s)
	if !ok {
		panic("quantities: rational overflow in " + r.String() + " + " + s.String())
	}
	return z
}

func (r Rational) neg() Rational {
	z, ok := r.Neg()
	if !ok {
		panic("quantities: rational overflow in -" + r.String())
	}
	return z
}

func (r Rational) mul(s Rational) Rational {
	z, ok := r.Mul(s)
	if !ok {
		panic("quantities: rational overflow in " + r.String() + " * " + s.String())
	}
	return z
}

func (r Rational) String() string {
	r = r.norm()
	if r.Den == 1 {
		return strconv.FormatInt(int64(r.Num), 10)
	}
	return strconv.FormatInt(int64(r.Num), 10) + "/" + strconv.FormatUint(uint64(r.Den), 10)
}

func (Rational) value() {}
