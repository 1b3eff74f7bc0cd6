package quantities

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// NodeError is an error evaluating a node. Err is the cause, which may be an
// algebra error like *DimensionError or an evaluation error like *NameError.
// NodeError implements InputError.
type NodeError struct {
	// Span is the source span of the node that failed.
	Span Span
	// Err is the cause of the failure.
	Err error
}

func (err *NodeError) Error() string {
	return errpos(err.Span.Start, err.Err.Error())
}

func (err *NodeError) Unwrap() error {
	return err.Err
}

func (err *NodeError) Pos() int {
	return err.Span.Start
}

// EvaluationError is an error evaluating the body of a user-defined function.
// It implements InputError with positions relative to Src.
type EvaluationError struct {
	NodeError
	// Src is the source of the function body.
	Src string
}

// NameError is an error from a lookup for a variable, function, or unit that
// is missing from the environment.
type NameError struct {
	// Kind is "variable", "function", or "unit".
	Kind string
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined " + err.Kind + ": " + strconv.Quote(err.Name)
}

// ParamCountError is an error calling a function with the wrong number of
// arguments.
type ParamCountError struct {
	// Func is the function name that was called, if known.
	Func string
	// Want is the number of parameters the function has.
	Want int
	// Got is the number of arguments in the call.
	Got int
}

func (err *ParamCountError) Error() string {
	f := err.Func
	if f == "" {
		f = "function"
	}
	return "cannot call " + f + " with " + strconv.Itoa(err.Got) + " arguments (want " + strconv.Itoa(err.Want) + ")"
}

// NestedError is an error inside a call to a user-defined function.
type NestedError struct {
	// Func is the name of the called function.
	Func string
	// Err is the error within the function body.
	Err *EvaluationError
}

func (err *NestedError) Error() string {
	return "in " + err.Func + ": " + err.Err.Error()
}

func (err *NestedError) Unwrap() error {
	return err.Err
}

// DepthError is an error from nesting function calls too deeply, usually by
// a function that calls itself.
type DepthError struct {
	// Max is the maximum call depth.
	Max int
}

func (err *DepthError) Error() string {
	return "function calls nested deeper than " + strconv.Itoa(err.Max)
}

var (
	_ InputError = (*NodeError)(nil)
	_ InputError = (*EvaluationError)(nil)
)

// Diagnose formats an error from evaluating src with a marker under the
// offending span. Each call to a user-defined function adds a level showing
// the function body. Errors without position information are formatted as
// themselves.
func Diagnose(err error, src string) string {
	var b strings.Builder
	indent := ""
	for {
		var ne *NodeError
		switch e := err.(type) {
		case *NodeError:
			ne = e
		case *EvaluationError:
			ne, src = &e.NodeError, e.Src
		case InputError:
			b.WriteString(indent + src + "\n" + indent + marker(src, Span{e.Pos(), e.Pos() + 1}) + " " + e.Error())
			return b.String()
		default:
			b.WriteString(indent + err.Error())
			return b.String()
		}
		b.WriteString(indent + src + "\n" + indent + marker(src, ne.Span) + " ")
		nest, ok := ne.Err.(*NestedError)
		if !ok {
			b.WriteString(ne.Err.Error())
			return b.String()
		}
		b.WriteString("in call to " + nest.Func + "\n")
		err = nest.Err
		indent += "  "
	}
}

// marker draws carets under a span of src.
func marker(src string, s Span) string {
	clamp := func(k int) int {
		if k < 0 {
			return 0
		}
		if k > len(src) {
			return len(src)
		}
		return k
	}
	start, end := clamp(s.Start), clamp(s.End)
	if end < start {
		end = start
	}
	n := utf8.RuneCountInString(src[start:end])
	if n == 0 {
		n = 1
	}
	return strings.Repeat(" ", utf8.RuneCountInString(src[:start])) + strings.Repeat("^", n)
}
