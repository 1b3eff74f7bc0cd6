package quantities

import "math"

// Func is a built-in function of values. Built-in functions are consulted
// after user-defined functions, and errors they return are reported at the
// call site without nesting.
type Func interface {
	// Call evaluates the function. len(args) is always Arity().
	Call(args []Value) (Value, error)
	// Arity returns the number of arguments the function takes.
	Arity() int
}

var globalfuncs = map[string]Func{
	"exp":  Monadic(Exp),
	"ln":   Monadic(Log),
	"log":  Monadic(log10),
	"sin":  Monadic(Sin),
	"cos":  Monadic(Cos),
	"tan":  Monadic(Tan),
	"sqrt": Monadic(Sqrt),
	"abs": Monadic(func(v Value) (Value, error) {
		return Abs(v), nil
	}),
	"arg": Monadic(func(v Value) (Value, error) {
		return Arg(v), nil
	}),
	"pow": Dyadic(Pow),
}

func log10(v Value) (Value, error) {
	n, err := Log(v)
	if err != nil {
		return nil, err
	}
	return Div(n, Constant(Scalar(math.Ln10), Dimless))
}

// DisableDefaultFuncs returns options that remove all default built-in
// functions from an environment.
func DisableDefaultFuncs() []EnvOption {
	opts := make([]EnvOption, 0, len(globalfuncs))
	for k := range globalfuncs {
		opts = append(opts, WithFunc(k, nil))
	}
	return opts
}

type monadic struct {
	f func(Value) (Value, error)
}

func (m monadic) Call(args []Value) (Value, error) {
	return m.f(args[0])
}

func (monadic) Arity() int {
	return 1
}

// Monadic wraps a function of one value into a Func.
func Monadic(f func(Value) (Value, error)) Func {
	return monadic{f}
}

type dyadic struct {
	f func(a, b Value) (Value, error)
}

func (d dyadic) Call(args []Value) (Value, error) {
	return d.f(args[0], args[1])
}

func (dyadic) Arity() int {
	return 2
}

// Dyadic wraps a function of two values into a Func.
func Dyadic(f func(a, b Value) (Value, error)) Func {
	return dyadic{f}
}

type niladic struct {
	f func() Value
}

func (n niladic) Call([]Value) (Value, error) {
	return n.f(), nil
}

func (niladic) Arity() int {
	return 0
}

// Niladic wraps a function of zero values, generally one which computes a
// constant, into a Func.
func Niladic(f func() Value) Func {
	return niladic{f}
}
