package quantities

import (
	"errors"
	"strconv"
)

// ErrDivisionByZero is the error underlying a DomainError from raising zero
// to a negative power.
var ErrDivisionByZero = errors.New("division by zero")

// LengthError is an error combining vectors of different lengths.
type LengthError struct {
	// M and N are the lengths of the left and right operands.
	M, N int
}

func (err *LengthError) Error() string {
	return "vector lengths not equal (" + strconv.Itoa(err.M) + " != " + strconv.Itoa(err.N) + ")"
}

// DimensionError is an error adding or subtracting quantities with different
// dimensions.
type DimensionError struct {
	Left, Right Dimension
}

func (err *DimensionError) Error() string {
	return "incompatible units: " + dimstr(err.Left) + " and " + dimstr(err.Right)
}

// DimlessError is an error applying a function that requires a dimensionless
// argument to a quantity with units.
type DimlessError struct {
	// Func is the name of the function.
	Func string
	// Dim is the dimension of the argument.
	Dim Dimension
}

func (err *DimlessError) Error() string {
	return err.Func + " function cannot accept value with units " + dimstr(err.Dim)
}

// PowDimensionError is an error raising to a non-rational power where the
// base or the exponent has units.
type PowDimensionError struct {
	// Operand is either "base" or "exponent".
	Operand string
	// Dim is the dimension of the offending operand.
	Dim Dimension
}

func (err *PowDimensionError) Error() string {
	return err.Operand + " must be unitless, not " + dimstr(err.Dim)
}

// DomainError is an error calling a function on an argument outside its
// domain. DomainError unwraps to ErrDivisionByZero.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r + ": " + ErrDivisionByZero.Error()
}

func (err *DomainError) Unwrap() error {
	return ErrDivisionByZero
}

func dimstr(d Dimension) string {
	if d.IsDimless() {
		return "(none)"
	}
	return "[" + d.String() + "]"
}
