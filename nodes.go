package quantities

import (
	"math"
	"strconv"
	"strings"
)

// Span is a pair of byte offsets into the source of an expression. Spans are
// used only to report errors.
type Span struct {
	Start, End int
}

// Node is a node in the syntax tree of an expression. Which fields are used
// depends on Kind. Nodes are never modified during evaluation, so a tree may
// be evaluated concurrently.
type Node struct {
	Kind NodeKind
	Span Span

	// Name is the variable name of NodeName or the function of NodeCall.
	Name string
	// Val is the literal of NodeValue.
	Val Value
	// Left is the operand of unary nodes and the left operand of binary nodes.
	Left *Node
	// Right is the right operand of binary nodes.
	Right *Node
	// Args are the arguments of NodeCall.
	Args []*Node
	// Units are the unit terms of NodeUnits.
	Units []UnitTerm
}

// UnitTerm is one unit in a unit suffix, like s^-2 in 1[kg m/s^2].
type UnitTerm struct {
	Unit  string
	Power Rational
	Span  Span
}

// NodeKind is the kind of a syntax tree node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeValue // Val
	NodeName  // lookup(Name)
	NodeCall  // Name(Args...)

	NodeNeg   // -Left
	NodeNop   // +Left
	NodeUnits // Left times the product of Units
	NodeAdd   // Left + Right
	NodeSub   // Left - Right
	NodeMul   // Left * Right
	NodeDiv   // Left / Right
	NodePow   // Left ^ Right
)

var kindnames = [...]string{
	NodeNone:  "None",
	NodeValue: "Value",
	NodeName:  "Name",
	NodeCall:  "Call",
	NodeNeg:   "Neg",
	NodeNop:   "Nop",
	NodeUnits: "Units",
	NodeAdd:   "Add",
	NodeSub:   "Sub",
	NodeMul:   "Mul",
	NodeDiv:   "Div",
	NodePow:   "Pow",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// NewValue creates a literal node.
func NewValue(v Value, span Span) *Node {
	return &Node{Kind: NodeValue, Span: span, Val: v}
}

// NewName creates a variable lookup node.
func NewName(name string, span Span) *Node {
	return &Node{Kind: NodeName, Span: span, Name: name}
}

// NewCall creates a function call node.
func NewCall(name string, args []*Node, span Span) *Node {
	return &Node{Kind: NodeCall, Span: span, Name: name, Args: args}
}

// NewUnary creates a NodeNeg or NodeNop node.
func NewUnary(kind NodeKind, operand *Node, span Span) *Node {
	switch kind {
	case NodeNeg, NodeNop:
	default:
		panic("quantities: " + kind.String() + " is not a unary node kind")
	}
	return &Node{Kind: kind, Span: span, Left: operand}
}

// NewUnits creates a node that applies a unit suffix to operand.
func NewUnits(operand *Node, units []UnitTerm, span Span) *Node {
	return &Node{Kind: NodeUnits, Span: span, Left: operand, Units: units}
}

// NewBinary creates a binary operator node.
func NewBinary(kind NodeKind, left, right *Node, span Span) *Node {
	switch kind {
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
	default:
		panic("quantities: " + kind.String() + " is not a binary node kind")
	}
	return &Node{Kind: kind, Span: span, Left: left, Right: right}
}

// Vars returns the sorted names of variables the expression looks up.
func (n *Node) Vars() []string {
	seen := make(map[string]bool)
	n.vars(seen)
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

func (n *Node) vars(seen map[string]bool) {
	if n == nil {
		return
	}
	if n.Kind == NodeName {
		seen[n.Name] = true
	}
	n.Left.vars(seen)
	n.Right.vars(seen)
	for _, a := range n.Args {
		a.vars(seen)
	}
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// String formats the tree with round brackets grouping each term. Trees from
// Parse format to text that parses to an equivalent tree. Real literals keep a
// decimal point so they read back as reals, but values with no literal syntax,
// like complex numbers or quantities carrying units or derivatives, print only
// for display.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.Kind {
	case NodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.Left != nil {
			n.Left.fmt(b)
		}
		b.WriteByte('#')
		if n.Right != nil {
			n.Right.fmt(b)
		}
		b.WriteByte('$')
	case NodeValue:
		b.WriteString(literal(n.Val))
	case NodeName:
		b.WriteString(n.Name)
	case NodeCall:
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case NodeNeg:
		b.WriteByte('-')
		n.Left.fmt(b)
	case NodeNop:
		b.WriteByte('+')
		n.Left.fmt(b)
	case NodeUnits:
		n.Left.fmt(b)
		b.WriteString("[")
		for i, u := range n.Units {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(u.Unit)
			if !u.Power.Equal(One) {
				b.WriteString("^" + u.Power.String())
			}
		}
		b.WriteByte(']')
	case NodeAdd, NodeSub, NodeMul, NodeDiv, NodePow:
		n.Left.fmt(b)
		b.WriteString(binopstrs[n.Kind])
		n.Right.fmt(b)
	default:
		panic("quantities: invalid node kind " + n.Kind.String() + " after writing " + b.String())
	}
}

// literal formats a value node. Plain real scalars always show a decimal point
// or exponent so that they do not read back as exact integers.
func literal(v Value) string {
	q, ok := v.(Quantity)
	if !ok || len(q.Derivs) != 0 || !q.Dim.IsDimless() {
		return v.String()
	}
	x, ok := q.Value.Float64()
	if !ok {
		return v.String()
	}
	if math.IsInf(x, 1) {
		return "inf"
	}
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

var binopstrs = map[NodeKind]string{
	NodeAdd: " + ",
	NodeSub: " - ",
	NodeMul: " × ",
	NodeDiv: " ÷ ",
	NodePow: " ^ ",
}
