package quantities

import "strconv"

// OperatorError is an operator in a position where it has no meaning, like *
// at the start of a term. It implements InputError.
type OperatorError struct {
	// Col is the byte offset of the operator.
	Col int
	// Operator is the operator text.
	Operator string
	// Unary is set when the operator appeared where a term was expected.
	Unary bool
}

func (err *OperatorError) Error() string {
	if err.Unary {
		return errpos(err.Col, strconv.Quote(err.Operator)+" cannot start a term")
	}
	return errpos(err.Col, strconv.Quote(err.Operator)+" is not a binary operator")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an unbalanced or mismatched bracket. Left or Right is empty
// when the bracket has no partner at all. It implements InputError.
type BracketError struct {
	// Col is the byte offset of the offending bracket.
	Col int
	// Left and Right are the open and close brackets.
	Left, Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return errpos(err.Col, "unmatched "+err.Right)
	case err.Right == "":
		return errpos(err.Col, err.Left+" is never closed")
	default:
		return errpos(err.Col, err.Left+" closed by "+err.Right)
	}
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is a comma or semicolon outside of an argument list or
// vector. It implements InputError.
type SeparatorError struct {
	Col int
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// UnitError is a malformed unit suffix. It implements InputError.
type UnitError struct {
	// Col is the position of the offending token.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *UnitError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *UnitError) Pos() int {
	return err.Col
}

// VectorError is a malformed vector literal. It implements InputError.
type VectorError struct {
	// Col is the position of the offending token.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *VectorError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *VectorError) Pos() int {
	return err.Col
}

// DefinitionError is a malformed function definition head, the part before
// the =. It implements InputError.
type DefinitionError struct {
	// Col is the position of the offending token.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *DefinitionError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *DefinitionError) Pos() int {
	return err.Col
}

// EmptyExpressionError is a missing term: an empty input, empty brackets, or
// an operator with nothing after it. It implements InputError.
type EmptyExpressionError struct {
	// Col is the byte offset of the token where a term was expected.
	Col int
	// End is that token, or empty at the end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, "expected a term before "+strconv.Quote(err.End))
	case err.Col == 0:
		return errpos(err.Col, "empty expression")
	default:
		return errpos(err.Col, "expected a term at end of input")
	}
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos prefixes a message with a byte offset.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error located in the source of an expression. Parse
// errors and evaluation errors both implement it, so Diagnose can point at
// the offending text.
type InputError interface {
	error
	// Pos is the byte offset where the offending token or node starts.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*UnitError)(nil)
	_ InputError = (*VectorError)(nil)
	_ InputError = (*DefinitionError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
