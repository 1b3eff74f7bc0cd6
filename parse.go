package quantities

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = num | name | Call | Vector | Units | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } ] ')'     (no space before '(')
// Vector = '{' [ '-' ] num { ',' [ '-' ] num } '}'
// Units = Expr '[' UnitTerm { [ '*' ] UnitTerm } [ '/' UnitTerm { [ '*' ] UnitTerm } ] ']'
// UnitTerm = name [ '^' [ '-' ] int [ '/' int ] ]
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr | Expr Expr
// Div = Expr '/' Expr | Expr ':' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr
//
// The slash binds more loosely than the other multiplicative operators, so
// a/b c is a/(b c) and a*b/c*d is (a*b)/(c*d).

// Parse parses an expression so it can be evaluated in an environment. The
// given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Node, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	switch tok.kind {
	case tokenEOF:
	case tokenSep:
		switch {
		case p.ceof && tok.text == ",":
		case p.seof && tok.text == ";":
		default:
			return nil, badend(tok, -1)
		}
	default:
		return nil, badend(tok, -1)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
	return n, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Node, error) {
	return Parse(strings.NewReader(src), opts...)
}

// ParseDefinition parses a function definition like f(x, y) = x y. Positions
// in errors from the body, and spans in the resulting evaluator, are relative
// to the body text after the equals sign with surrounding space removed.
func ParseDefinition(src string) (string, *Evaluator, error) {
	eq := strings.IndexByte(src, '=')
	if eq < 0 {
		return "", nil, &DefinitionError{Col: len(src), Msg: "missing = in function definition"}
	}
	scan := lex(strings.NewReader(src[:eq]))
	name, err := scan.next("")
	if err != nil {
		return "", nil, err
	}
	if name.kind != tokenIdent {
		return "", nil, &DefinitionError{Col: name.pos, Msg: "expected function name"}
	}
	open, err := scan.next("")
	if err != nil {
		return "", nil, err
	}
	if open.kind != tokenOpen || open.text != "(" {
		return "", nil, &DefinitionError{Col: open.pos, Msg: "expected ( after function name"}
	}
	var params []string
	for {
		tok, err := scan.next("")
		if err != nil {
			return "", nil, err
		}
		if tok.kind == tokenClose && tok.text == ")" && len(params) == 0 {
			break
		}
		if tok.kind != tokenIdent {
			return "", nil, &DefinitionError{Col: tok.pos, Msg: "expected parameter name"}
		}
		for _, p := range params {
			if p == tok.text {
				return "", nil, &DefinitionError{Col: tok.pos, Msg: "duplicate parameter " + strconv.Quote(tok.text)}
			}
		}
		params = append(params, tok.text)
		end, err := scan.next("")
		if err != nil {
			return "", nil, err
		}
		if end.kind == tokenClose && end.text == ")" {
			break
		}
		if end.kind != tokenSep || end.text != "," {
			return "", nil, &DefinitionError{Col: end.pos, Msg: "expected , or ) in parameter list"}
		}
	}
	tail, err := scan.next("")
	if err != nil {
		return "", nil, err
	}
	if tail.kind != tokenEOF {
		return "", nil, &DefinitionError{Col: tail.pos, Msg: "unexpected " + strconv.Quote(tail.text) + " before ="}
	}
	ev, err := NewEvaluator(strings.TrimSpace(src[eq+1:]), params...)
	if err != nil {
		return "", nil, err
	}
	return name.text, ev, nil
}

// parseterm parses operands joined by operators binding tighter than until.
// On success the token that stopped it, EOF included, is left pushed. An empty
// term gives a nil node and nil error; the caller decides whether that is
// allowed.
func parseterm(scan *lexer, p *parsectx, until operator) (*Node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenInt, tokenReal, tokenIdent:
			// (parsed) x -> (parsed) * (x)
			// (parsed) x^(expr) -> (parsed) * (x^(expr))
			// a^(parsed) x -> (a^(parsed)) * (x)
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = NewBinary(NodeMul, n, rhs, tok.span())
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == NodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyat(scan)
			}
			n = NewBinary(prec.op, n, rhs, tok.span())
		case tokenOpen:
			if tok.text == "[" {
				// A unit suffix on a term that parselhs didn't see, like the
				// result of an implicit multiplication.
				n, err = parseunits(scan, n, tok)
				if err != nil {
					return nil, err
				}
				continue
			}
			// 2 (expr) -> (2) * (expr)
			// 2 {1, 2} -> (2) * ({1, 2})
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = NewBinary(NodeMul, n, rhs, tok.span())
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("quantities: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the leading operand of a term: here operators are prefix,
// every token has to be able to open a subexpression, and stop whitespace does
// not apply. A unit suffix right after the operand attaches to it.
func parselhs(scan *lexer, p *parsectx, until operator) (*Node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	var n *Node
	switch tok.kind {
	case tokenInt, tokenReal:
		v, err := numlit(tok)
		if err != nil {
			return nil, err
		}
		n = NewValue(v, tok.span())
	case tokenIdent:
		next, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		if next.kind == tokenOpen && next.text == "(" && next.pos == tok.end {
			n, err = parsecall(scan, p, tok, next)
			if err != nil {
				return nil, err
			}
		} else {
			scan.push(next)
			n = NewName(tok.text, tok.span())
		}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == NodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyat(scan)
		}
		// The operand handles its own unit suffix.
		return NewUnary(prec.op, rhs, tok.span()), nil
	case tokenOpen:
		switch tok.text {
		case "(":
			rhs, err := parseterm(scan, p, exprprec)
			if err != nil {
				return nil, err
			}
			end := scan.must()
			if end.kind != tokenClose || end.text != ")" {
				return nil, badend(end, rightbracket(tok.text))
			}
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = rhs
		case "{":
			n, err = parsevector(scan, tok)
			if err != nil {
				return nil, err
			}
		default:
			return nil, &UnitError{Col: tok.pos, Msg: "unit suffix with no quantity"}
		}
	case tokenClose:
		// Let the caller decide whether an empty expression is an error.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		switch tok.text {
		case ",":
			if p.ceof {
				scan.push(tok)
				return nil, nil
			}
		case ";":
			if p.seof {
				scan.push(tok)
				return nil, nil
			}
		default:
			panic("quantities: invalid separator " + strconv.Quote(tok.text))
		}
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("quantities: unknown token: " + tok.String())
	}
	// Check for a unit suffix.
	next, err := scan.next(p.wseof)
	if err != nil {
		return nil, err
	}
	if next.kind != tokenOpen || next.text != "[" {
		scan.push(next)
		return n, nil
	}
	return parseunits(scan, n, next)
}

// parsecall parses the argument list of a call. name is the function name
// token and open is the open bracket immediately following it.
func parsecall(scan *lexer, p *parsectx, name, open lexToken) (*Node, error) {
	var args []*Node
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: open.pos, Left: open.text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if end.text != ")" {
				return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
			}
			if rhs == nil {
				// f() is allowed, but f(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return NewCall(name.text, nil, Span{name.pos, end.end}), nil
			}
			args = append(args, rhs)
			return NewCall(name.text, args, Span{name.pos, end.end}), nil
		case tokenSep:
			if end.text != "," {
				return nil, &SeparatorError{Col: end.pos, Sep: end.text}
			}
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, rhs)
		case tokenEOF:
			return nil, &BracketError{Col: open.pos, Left: open.text, Right: ""}
		default:
			panic("quantities: parseterm ended on non-end token " + end.String())
		}
	}
}

// parsevector parses the elements of a vector literal after its open bracket.
func parsevector(scan *lexer, open lexToken) (*Node, error) {
	var xs []float64
	for {
		tok, err := scan.next("")
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenClose && tok.text == "}" && len(xs) == 0 {
			return nil, &VectorError{Col: tok.pos, Msg: "empty vector"}
		}
		neg := false
		if tok.kind == tokenOp && (tok.text == "-" || tok.text == "+") {
			neg = tok.text == "-"
			tok, err = scan.next("")
			if err != nil {
				return nil, err
			}
		}
		switch tok.kind {
		case tokenInt, tokenReal:
		case tokenEOF:
			return nil, &BracketError{Col: open.pos, Left: open.text, Right: ""}
		default:
			return nil, &VectorError{Col: tok.pos, Msg: "vector elements must be numbers"}
		}
		x, err := numfloat(tok)
		if err != nil {
			return nil, err
		}
		if neg {
			x = -x
		}
		xs = append(xs, x)
		end, err := scan.next("")
		if err != nil {
			return nil, err
		}
		switch end.kind {
		case tokenSep:
			// next element
		case tokenClose:
			if end.text != "}" {
				return nil, &BracketError{Col: end.pos, Left: open.text, Right: end.text}
			}
			return NewValue(Constant(Vector(xs...), Dimless), Span{open.pos, end.end}), nil
		case tokenEOF:
			return nil, &BracketError{Col: open.pos, Left: open.text, Right: ""}
		default:
			return nil, &VectorError{Col: end.pos, Msg: "expected , or } in vector"}
		}
	}
}

// parseunits parses a unit suffix after its open bracket and applies it to n.
func parseunits(scan *lexer, n *Node, open lexToken) (*Node, error) {
	var terms []UnitTerm
	div := false
	// numer is the number of terms before the separator.
	numer := 0
	for {
		tok, err := scan.next("")
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenIdent:
			t := UnitTerm{Unit: tok.text, Power: One, Span: tok.span()}
			next, err := scan.next("")
			if err != nil {
				return nil, err
			}
			var sep *lexToken
			if next.kind == tokenOp && next.text == "^" {
				t.Power, sep, err = parseunitpow(scan)
				if err != nil {
					return nil, err
				}
			} else {
				scan.push(next)
			}
			if div {
				var ok bool
				t.Power, ok = t.Power.Neg()
				if !ok {
					return nil, &UnitError{Col: tok.pos, Msg: "unit exponent out of range"}
				}
			}
			terms = append(terms, t)
			if sep != nil {
				if div {
					return nil, &UnitError{Col: sep.pos, Msg: "second / in unit"}
				}
				div, numer = true, len(terms)
			}
		case tokenOp:
			switch tok.text {
			case "*", "×":
				if len(terms) == 0 {
					return nil, &UnitError{Col: tok.pos, Msg: "unit product with no unit"}
				}
			case "/":
				if div {
					return nil, &UnitError{Col: tok.pos, Msg: "second / in unit"}
				}
				if len(terms) == 0 {
					return nil, &UnitError{Col: tok.pos, Msg: "unit quotient with no numerator"}
				}
				div, numer = true, len(terms)
			default:
				return nil, &UnitError{Col: tok.pos, Msg: "invalid operator " + strconv.Quote(tok.text) + " in unit"}
			}
		case tokenClose:
			if tok.text != "]" {
				return nil, &BracketError{Col: tok.pos, Left: open.text, Right: tok.text}
			}
			if len(terms) == 0 {
				return nil, &UnitError{Col: tok.pos, Msg: "empty unit"}
			}
			if div && numer == len(terms) {
				return nil, &UnitError{Col: tok.pos, Msg: "unit quotient with no denominator"}
			}
			return NewUnits(n, terms, Span{open.pos, tok.end}), nil
		case tokenEOF:
			return nil, &BracketError{Col: open.pos, Left: open.text, Right: ""}
		default:
			return nil, &UnitError{Col: tok.pos, Msg: "unexpected " + strconv.Quote(tok.text) + " in unit"}
		}
	}
}

// parseunitpow parses the exponent of a unit term after the ^. A slash
// following the numerator is part of the exponent only if a number follows
// it; otherwise it is the unit separator, which is returned so the caller can
// record it, and the token after it is pushed.
func parseunitpow(scan *lexer) (Rational, *lexToken, error) {
	tok, err := scan.next("")
	if err != nil {
		return Rational{}, nil, err
	}
	neg := false
	if tok.kind == tokenOp && tok.text == "-" {
		neg = true
		tok, err = scan.next("")
		if err != nil {
			return Rational{}, nil, err
		}
	}
	num, err := unitint(tok)
	if err != nil {
		return Rational{}, nil, err
	}
	if neg {
		num = -num
	}
	den := int64(1)
	var sep *lexToken
	slash, err := scan.next("")
	if err != nil {
		return Rational{}, nil, err
	}
	if slash.kind == tokenOp && slash.text == "/" {
		d, err := scan.next("")
		if err != nil {
			return Rational{}, nil, err
		}
		if d.kind == tokenInt {
			den, err = unitint(d)
			if err != nil {
				return Rational{}, nil, err
			}
			if den == 0 {
				return Rational{}, nil, &UnitError{Col: d.pos, Msg: "zero denominator in unit exponent"}
			}
		} else {
			scan.push(d)
			sep = &slash
		}
	} else {
		scan.push(slash)
	}
	r, ok := reduce(num, den)
	if !ok {
		return Rational{}, nil, &UnitError{Col: tok.pos, Msg: "unit exponent out of range"}
	}
	return r, sep, nil
}

// unitint converts an integer token in a unit exponent.
func unitint(tok lexToken) (int64, error) {
	if tok.kind != tokenInt {
		return 0, &UnitError{Col: tok.pos, Msg: "expected integer in unit exponent"}
	}
	n, err := strconv.ParseInt(tok.text, 10, 32)
	if err != nil {
		return 0, &UnitError{Col: tok.pos, Msg: "unit exponent must be an integer or fraction"}
	}
	return n, nil
}

// numlit converts a number token to a value. Integers are exact when they
// fit in a Rational; other numbers are float quantities.
func numlit(tok lexToken) (Value, error) {
	if tok.kind == tokenInt {
		n, err := strconv.ParseInt(tok.text, 10, 32)
		if err == nil {
			return Int(int32(n)), nil
		}
	}
	x, err := numfloat(tok)
	if err != nil {
		return nil, err
	}
	return Constant(Scalar(x), Dimless), nil
}

// numfloat converts a number token to a float64.
func numfloat(tok lexToken) (float64, error) {
	if isinf(tok.text) {
		return math.Inf(1), nil
	}
	x, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		// Out of range values are still infinite or zero.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return x, nil
		}
		return 0, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	return x, nil
}

func isinf(text string) bool {
	switch text {
	case "inf", "Inf", "∞":
		return true
	}
	return false
}

// emptyat creates an error for an empty subexpression ending at the pushed
// token. The token remains pushed.
func emptyat(scan *lexer) error {
	tok := scan.must()
	scan.push(tok)
	return &EmptyExpressionError{Col: tok.pos, End: tok.text}
}

// rightbracket returns the index of left in OpenBrackets, which is also the
// index of its partner in CloseBrackets. It panics on anything else.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("quantities: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket returns the open bracket at index right, or "" for -1.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return OpenBrackets[right : right+1]
}

// badend describes a subexpression that stopped on tok when it should have
// stopped on the close bracket at index match. match is -1 at top level.
func badend(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("quantities: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec orders operators; higher binds tighter.
	prec int8
	// right is set for right-associative operators.
	right bool
	// op is the kind of node the operator builds.
	op NodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop looks up an infix operator. Unknown text gives op NodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, NodeAdd}
	case "-":
		return operator{1, false, NodeSub}
	case "/":
		return operator{3, false, NodeDiv}
	case "*", "×":
		return operator{5, false, NodeMul}
	case ":", "÷":
		return operator{5, false, NodeDiv}
	case "^":
		return operator{15, true, NodePow}
	default:
		return operator{}
	}
}

// unop looks up a prefix operator. Unknown text gives op NodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, NodeNop}
	case "-":
		return operator{10, true, NodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is implicit multiplication, at the level of *.
	termprec = operator{5, true, NodeMul}
	// exprprec is looser than every operator, so parsing at it consumes a
	// whole subexpression.
	exprprec = operator{-128, true, NodeNone}
)
