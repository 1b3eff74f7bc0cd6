package quantities

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// StandardUnits returns a new map of SI base units, common derived units, and
// some common non-SI units accepted for use with SI.
func StandardUnits() map[string]Unit {
	var (
		s   = Dim(Time, One)
		m   = Dim(Length, One)
		kg  = Dim(Mass, One)
		A   = Dim(Current, One)
		K   = Dim(Temperature, One)
		mol = Dim(Amount, One)
		cd  = Dim(Luminous, One)

		m2 = Dim(Length, Int(2))
		m3 = Dim(Length, Int(3))
		hz = Dim(Time, Int(-1))
		// newton: kg m s^-2
		n = kg.Mul(m).Mul(Dim(Time, Int(-2)))
		// joule: N m
		j = n.Mul(m)
		// watt: J/s
		w = j.Mul(hz)
		// coulomb: A s
		c = A.Mul(s)
		// volt: W/A
		v = w.Mul(A.Recip())
		// ohm: V/A
		ohm = v.Mul(A.Recip())
	)
	return map[string]Unit{
		"s":   {1, s},
		"m":   {1, m},
		"kg":  {1, kg},
		"A":   {1, A},
		"K":   {1, K},
		"mol": {1, mol},
		"cd":  {1, cd},

		"ms":  {1e-3, s},
		"us":  {1e-6, s},
		"ns":  {1e-9, s},
		"min": {60, s},
		"h":   {3600, s},
		"d":   {86400, s},

		"km": {1e3, m},
		"cm": {1e-2, m},
		"mm": {1e-3, m},
		"um": {1e-6, m},
		"nm": {1e-9, m},
		"au": {149597870700, m},

		"g":  {1e-3, kg},
		"mg": {1e-6, kg},
		"t":  {1e3, kg},

		"mA":   {1e-3, A},
		"mmol": {1e-3, mol},

		"m2": {1, m2},
		"ha": {1e4, m2},
		"L":  {1e-3, m3},
		"mL": {1e-6, m3},

		"Hz":  {1, hz},
		"kHz": {1e3, hz},
		"MHz": {1e6, hz},
		"N":   {1, n},
		"kN":  {1e3, n},
		"Pa":  {1, n.Mul(m2.Recip())},
		"kPa": {1e3, n.Mul(m2.Recip())},
		"bar": {1e5, n.Mul(m2.Recip())},
		"J":   {1, j},
		"kJ":  {1e3, j},
		"eV":  {1.602176634e-19, j},
		"cal": {4.184, j},
		"W":   {1, w},
		"kW":  {1e3, w},
		"kWh": {3.6e6, j},
		"C":   {1, c},
		"V":   {1, v},
		"mV":  {1e-3, v},
		"ohm": {1, ohm},
		"Ω":   {1, ohm},

		"rad": {1, Dimless},
		"deg": {math.Pi / 180, Dimless},
		"°":   {math.Pi / 180, Dimless},
	}
}

// StandardConsts returns a new map of the mathematical constants pi and e.
func StandardConsts() map[string]Value {
	pi, _ := bigfloat.Pi(new(big.Float).SetPrec(64)).Float64()
	one := new(big.Float).SetPrec(64).SetInt64(1)
	e, _ := bigfloat.Exp(new(big.Float).SetPrec(64), one).Float64()
	return map[string]Value{
		"pi": Constant(Scalar(pi), Dimless),
		"π":  Constant(Scalar(pi), Dimless),
		"e":  Constant(Scalar(e), Dimless),
	}
}
