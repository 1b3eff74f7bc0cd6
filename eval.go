package quantities

import (
	"log/slog"
	"math"
	"math/big"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Unit is a named unit: a scale factor relative to SI base units and its
// dimension. E.g. km is Unit{1000, Dim(Length, One)}.
type Unit struct {
	Factor float64
	Dim    Dimension
}

// Environment holds the constants, units, and functions available to
// expressions. An Environment is never modified after it is created, so it is
// safe to evaluate any number of expressions with it concurrently.
type Environment struct {
	consts map[string]Value
	units  map[string]Unit
	evals  map[string]*Evaluator
	funcs  map[string]Func

	logger   *slog.Logger
	maxDepth int
	prec     uint
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	constopt struct {
		name string
		val  Value
	}
	unitopt struct {
		name string
		unit Unit
	}
	defopt struct {
		name string
		ev   *Evaluator
	}
	funcopt struct {
		name string
		fn   Func
	}
	loggeropt struct{ l *slog.Logger }
	depthopt  int
	precopt   uint
)

func (constopt) envOption()  {}
func (unitopt) envOption()   {}
func (defopt) envOption()    {}
func (funcopt) envOption()   {}
func (loggeropt) envOption() {}
func (depthopt) envOption()  {}
func (precopt) envOption()   {}

// SetConst sets the value of a named constant.
func SetConst(name string, val Value) EnvOption {
	return constopt{name, val}
}

// SetUnit sets a named unit.
func SetUnit(name string, u Unit) EnvOption {
	return unitopt{name, u}
}

// Define sets a user-defined function. A nil ev removes the definition.
func Define(name string, ev *Evaluator) EnvOption {
	return defopt{name, ev}
}

// WithFunc sets a built-in function. User-defined functions of the same name
// take precedence. A nil fn removes the function, including the defaults.
func WithFunc(name string, fn Func) EnvOption {
	return funcopt{name, fn}
}

// WithLogger sets the logger for debug records of function calls. The
// default is slog.Default().
func WithLogger(l *slog.Logger) EnvOption {
	return loggeropt{l}
}

// WithMaxDepth sets the maximum depth of nested user-defined function calls.
// Calls beyond it fail with a DepthError. The default is DefaultMaxDepth.
func WithMaxDepth(depth int) EnvOption {
	return depthopt(depth)
}

// Prec sets the precision in bits with which unit conversion factors are
// combined. The default is 64.
func Prec(prec uint) EnvOption {
	return precopt(prec)
}

// DefaultMaxDepth is the default maximum depth of nested function calls.
const DefaultMaxDepth = 1000

// NewEnvironment creates an environment from maps of constants, units, and
// user-defined functions, followed by options. The maps are copied. The
// default built-in functions are exp, ln, log (base 10), sin, cos, tan, sqrt,
// abs, arg, and pow.
func NewEnvironment(consts map[string]Value, units map[string]Unit, evals map[string]*Evaluator, opts ...EnvOption) *Environment {
	env := Environment{
		consts:   make(map[string]Value, len(consts)),
		units:    make(map[string]Unit, len(units)),
		evals:    make(map[string]*Evaluator, len(evals)),
		funcs:    make(map[string]Func, len(globalfuncs)),
		logger:   slog.Default(),
		maxDepth: DefaultMaxDepth,
		prec:     64,
	}
	for k, v := range consts {
		env.consts[k] = v
	}
	for k, v := range units {
		env.units[k] = v
	}
	for k, v := range evals {
		env.evals[k] = v
	}
	for k, v := range globalfuncs {
		env.funcs[k] = v
	}
	env.apply(opts)
	return &env
}

// Clone creates a copy of an environment and applies options to it.
func (env *Environment) Clone(opts ...EnvOption) *Environment {
	n := Environment{
		consts:   make(map[string]Value, len(env.consts)),
		units:    make(map[string]Unit, len(env.units)),
		evals:    make(map[string]*Evaluator, len(env.evals)),
		funcs:    make(map[string]Func, len(env.funcs)),
		logger:   env.logger,
		maxDepth: env.maxDepth,
		prec:     env.prec,
	}
	for k, v := range env.consts {
		n.consts[k] = v
	}
	for k, v := range env.units {
		n.units[k] = v
	}
	for k, v := range env.evals {
		n.evals[k] = v
	}
	for k, v := range env.funcs {
		n.funcs[k] = v
	}
	n.apply(opts)
	return &n
}

func (env *Environment) apply(opts []EnvOption) {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case constopt:
			env.consts[opt.name] = opt.val
		case unitopt:
			env.units[opt.name] = opt.unit
		case defopt:
			if opt.ev == nil {
				delete(env.evals, opt.name)
				continue
			}
			env.evals[opt.name] = opt.ev
		case funcopt:
			if opt.fn == nil {
				delete(env.funcs, opt.name)
				continue
			}
			env.funcs[opt.name] = opt.fn
		case loggeropt:
			if opt.l != nil {
				env.logger = opt.l
			}
		case depthopt:
			env.maxDepth = int(opt)
		case precopt:
			env.prec = uint(opt)
		default:
			panic("quantities: unknown option type")
		}
	}
}

// Const returns the value of a named constant.
func (env *Environment) Const(name string) (Value, bool) {
	v, ok := env.consts[name]
	return v, ok
}

// Unit returns a named unit.
func (env *Environment) Unit(name string) (Unit, bool) {
	u, ok := env.units[name]
	return u, ok
}

// Evaluator returns a user-defined function.
func (env *Environment) Evaluator(name string) (*Evaluator, bool) {
	ev, ok := env.evals[name]
	return ev, ok
}

// Eval evaluates the expression rooted at n. params are bindings of names to
// values which take precedence over the environment's constants. If the
// evaluation fails, the error is a *NodeError.
func (n *Node) Eval(env *Environment, params map[string]Value) (Value, error) {
	v, err := n.eval(env, params, 0)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// eval evaluates the node at a function call depth.
func (n *Node) eval(env *Environment, params map[string]Value, depth int) (Value, *NodeError) {
	switch n.Kind {
	case NodeValue:
		return n.Val, nil
	case NodeName:
		if v, ok := params[n.Name]; ok {
			return v, nil
		}
		if v, ok := env.consts[n.Name]; ok {
			return v, nil
		}
		return nil, &NodeError{Span: n.Span, Err: &NameError{Kind: "variable", Name: n.Name}}
	case NodeCall:
		return n.call(env, params, depth)
	case NodeNeg:
		v, err := n.Left.eval(env, params, depth)
		if err != nil {
			return nil, err
		}
		return Neg(v), nil
	case NodeNop:
		return n.Left.eval(env, params, depth)
	case NodeUnits:
		v, err := n.Left.eval(env, params, depth)
		if err != nil {
			return nil, err
		}
		u, err := env.convert(n.Units)
		if err != nil {
			return nil, err
		}
		r, verr := Mul(v, u)
		if verr != nil {
			return nil, &NodeError{Span: n.Span, Err: verr}
		}
		return r, nil
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		l, err := n.Left.eval(env, params, depth)
		if err != nil {
			return nil, err
		}
		r, err := n.Right.eval(env, params, depth)
		if err != nil {
			return nil, err
		}
		var v Value
		var verr error
		switch n.Kind {
		case NodeAdd:
			v, verr = Add(l, r)
		case NodeSub:
			v, verr = Sub(l, r)
		case NodeMul:
			v, verr = Mul(l, r)
		case NodeDiv:
			v, verr = Div(l, r)
		case NodePow:
			v, verr = Pow(l, r)
		}
		if verr != nil {
			return nil, &NodeError{Span: n.Span, Err: verr}
		}
		return v, nil
	default:
		panic("quantities: invalid AST node " + n.Kind.String())
	}
}

// call evaluates a function call node. User-defined functions shadow
// built-in ones.
func (n *Node) call(env *Environment, params map[string]Value, depth int) (Value, *NodeError) {
	ev := env.evals[n.Name]
	fn := env.funcs[n.Name]
	var want int
	switch {
	case ev != nil:
		want = len(ev.Params)
	case fn != nil:
		want = fn.Arity()
	default:
		return nil, &NodeError{Span: n.Span, Err: &NameError{Kind: "function", Name: n.Name}}
	}
	if want != len(n.Args) {
		return nil, &NodeError{Span: n.Span, Err: &ParamCountError{Func: n.Name, Want: want, Got: len(n.Args)}}
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.eval(env, params, depth)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if ev == nil {
		v, err := fn.Call(args)
		if err != nil {
			return nil, &NodeError{Span: n.Span, Err: err}
		}
		return v, nil
	}
	if depth >= env.maxDepth {
		env.logger.Debug("call depth exceeded", slog.String("func", n.Name), slog.Int("max", env.maxDepth))
		return nil, &NodeError{Span: n.Span, Err: &DepthError{Max: env.maxDepth}}
	}
	env.logger.Debug("call", slog.String("func", n.Name), slog.Int("depth", depth+1), slog.Int("args", len(args)))
	v, err := ev.eval(env, args, depth+1)
	if err != nil {
		return nil, &NodeError{Span: n.Span, Err: &NestedError{Func: n.Name, Err: err}}
	}
	return v, nil
}

// convert computes the conversion factor of a unit suffix. Factors are
// multiplied in extended precision and rounded to float64 once.
func (env *Environment) convert(terms []UnitTerm) (Quantity, *NodeError) {
	acc := new(big.Float).SetPrec(env.prec).SetInt64(1)
	exact := true
	prod := 1.0
	dim := Dimless
	for _, t := range terms {
		u, ok := env.units[t.Unit]
		if !ok {
			return Quantity{}, &NodeError{Span: t.Span, Err: &NameError{Kind: "unit", Name: t.Unit}}
		}
		p := t.Power.norm()
		prod *= math.Pow(u.Factor, p.Float64())
		dim = dim.Mul(u.Dim.Pow(p))
		if exact && u.Factor > 0 && !math.IsInf(u.Factor, 0) {
			acc.Mul(acc, env.bigpow(u.Factor, p))
		} else {
			exact = false
		}
	}
	if exact {
		prod, _ = acc.Float64()
	}
	return Constant(Scalar(prod), dim), nil
}

// bigpow computes x^p for positive finite x at the environment's precision.
func (env *Environment) bigpow(x float64, p Rational) *big.Float {
	b := new(big.Float).SetPrec(env.prec).SetFloat64(x)
	if p.Equal(One) {
		return b
	}
	e := new(big.Float).SetPrec(env.prec).SetInt64(int64(p.Num))
	e.Quo(e, new(big.Float).SetPrec(env.prec).SetInt64(int64(p.Den)))
	r := new(big.Float).SetPrec(env.prec)
	bigfloat.Pow(r, b, e)
	return r
}

// Evaluator is a user-defined function: an expression with named parameters.
type Evaluator struct {
	// Body is the parsed function body.
	Body *Node
	// Src is the source text of the body. Spans in Body index into Src.
	Src string
	// Params are the parameter names, in order.
	Params []string
}

// NewEvaluator parses src as the body of a function with the given parameter
// names.
func NewEvaluator(src string, params ...string) (*Evaluator, error) {
	n, err := Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return &Evaluator{Body: n, Src: src, Params: params}, nil
}

// Eval calls the function with positional arguments. If the evaluation fails,
// the error is an *EvaluationError.
func (ev *Evaluator) Eval(env *Environment, args []Value) (Value, error) {
	v, err := ev.eval(env, args, 0)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (ev *Evaluator) eval(env *Environment, args []Value, depth int) (Value, *EvaluationError) {
	if len(args) != len(ev.Params) {
		err := NodeError{
			Span: Span{0, len(ev.Src)},
			Err:  &ParamCountError{Want: len(ev.Params), Got: len(args)},
		}
		return nil, &EvaluationError{NodeError: err, Src: ev.Src}
	}
	params := make(map[string]Value, len(args))
	for i, name := range ev.Params {
		params[name] = args[i]
	}
	v, err := ev.Body.eval(env, params, depth)
	if err != nil {
		return nil, &EvaluationError{NodeError: *err, Src: ev.Src}
	}
	return v, nil
}

// EvalString is a shortcut to parse and evaluate a string expression with no
// parameters.
func EvalString(env *Environment, src string) (Value, error) {
	n, err := Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return n.Eval(env, nil)
}
