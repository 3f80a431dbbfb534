package parser

import "strconv"

// OperatorError is an error indicating an operator token that is not
// understood. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Eval is whether the operator was rejected during evaluation rather than
	// parsing, i.e. it has a binding power but no arithmetic meaning.
	Eval bool
}

func (err *OperatorError) Error() string {
	if err.Eval {
		return errpos(err.Col, "cannot evaluate operator "+strconv.Quote(err.Operator))
	}
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening bracket, if there was one.
	Left string
	// Right is the token found where the closing bracket was expected, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "expected ) to close "+err.Left+" but found "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token in a place where it cannot begin
// or continue an expression, e.g. the operator in "*2" or the second atom in
// "1 2". It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the unexpected token.
	Token string
	// Want describes what the parser expected instead.
	Want string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token)+", want "+err.Want)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// AssignError is an error indicating an assignment whose left-hand side is
// not a single letter. It implements InputError.
type AssignError struct {
	// Col is the position of the = operator.
	Col int
	// Target is the canonical form of the left-hand side.
	Target string
}

func (err *AssignError) Error() string {
	return errpos(err.Col, "not a variable name: "+err.Target)
}

func (err *AssignError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*AssignError)(nil)
	_ InputError = (*NameError)(nil)
)
