package parser

import (
	"io"
	"strings"
)

// Expr = atom | Expr op Expr | '(' Expr ')'
// atom = '0'..'9' | 'a'..'z' | 'A'..'Z'
// op   = '=' | '+' | '-' | '*' | '/' | '^' | '√' | '.'

// Expr is a parsed expression that can be evaluated with a context. An Expr is
// immutable and safe to share.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := newparsectx(opts)
	n, err := parseexpr(scan, &p, 0)
	if err != nil {
		return nil, err
	}
	// parseexpr stops on EOF or a close bracket. Only the latter is left over
	// at the top level.
	if tok := scan.next(); tok.kind != tokenEOF {
		return nil, &BracketError{Col: tok.pos, Right: tok.text()}
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseexpr parses an expression at a minimum binding power. It returns on EOF
// or a close bracket without consuming either, or on an operator that binds
// less tightly than minbp, which is also left for the caller.
func parseexpr(scan *lexer, p *parsectx, minbp float64) (*node, error) {
	lhs, err := parseprimary(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok := scan.peek()
		switch {
		case tok.kind == tokenEOF:
			return lhs, nil
		case tok.kind == tokenOp && tok.r == ')':
			return lhs, nil
		case tok.kind == tokenOp:
			// ok
		default:
			return nil, &TokenError{Col: tok.pos, Token: tok.text(), Want: "operator"}
		}
		b, ok := p.binop(tok.r)
		if !ok {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text()}
		}
		if b.left < minbp {
			return lhs, nil
		}
		// Only consume the operator once it is known to belong to this call.
		scan.next()
		rhs, err := parseexpr(scan, p, b.right)
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: nodeOp, r: tok.r, pos: tok.pos, left: lhs, right: rhs}
	}
}

// parseprimary parses an atom or a parenthesized subexpression.
func parseprimary(scan *lexer, p *parsectx) (*node, error) {
	tok := scan.next()
	switch {
	case tok.kind == tokenAtom:
		return &node{kind: nodeAtom, r: tok.r, pos: tok.pos}, nil
	case tok.kind == tokenOp && tok.r == '(':
		n, err := parseexpr(scan, p, 0)
		if err != nil {
			return nil, err
		}
		if err := expectclose(scan, tok); err != nil {
			return nil, err
		}
		return n, nil
	case tok.kind == tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	case tok.kind == tokenOp && tok.r == ')':
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text()}
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text(), Want: "atom or ("}
	}
}

// expectclose consumes the close bracket matching open.
func expectclose(scan *lexer, open lexToken) error {
	end := scan.next()
	if end.kind == tokenOp && end.r == ')' {
		return nil
	}
	return &BracketError{Col: end.pos, Left: open.text(), Right: end.text()}
}

// ParseTree parses the canonical form produced by Expr.String, i.e. an atom or
// (op lhs rhs). The operator need not be in the binding power table.
func ParseTree(src io.RuneScanner) (*Expr, error) {
	scan, err := lex(src)
	if err != nil {
		return nil, err
	}
	n, err := parsetree(scan)
	if err != nil {
		return nil, err
	}
	if tok := scan.next(); tok.kind != tokenEOF {
		return nil, &TokenError{Col: tok.pos, Token: tok.text(), Want: "end of input"}
	}
	return &Expr{n: n}, nil
}

// ParseTreeString is a shortcut to parse a canonical form from a string.
func ParseTreeString(src string) (*Expr, error) {
	return ParseTree(strings.NewReader(src))
}

func parsetree(scan *lexer) (*node, error) {
	tok := scan.next()
	switch {
	case tok.kind == tokenAtom:
		return &node{kind: nodeAtom, r: tok.r, pos: tok.pos}, nil
	case tok.kind == tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	case tok.kind != tokenOp || tok.r != '(':
		return nil, &TokenError{Col: tok.pos, Token: tok.text(), Want: "atom or ("}
	}
	op := scan.next()
	if op.kind != tokenOp || op.r == '(' || op.r == ')' {
		if op.kind == tokenEOF {
			return nil, &BracketError{Col: op.pos, Left: tok.text()}
		}
		return nil, &TokenError{Col: op.pos, Token: op.text(), Want: "operator"}
	}
	lhs, err := parsetree(scan)
	if err != nil {
		return nil, err
	}
	rhs, err := parsetree(scan)
	if err != nil {
		return nil, err
	}
	if err := expectclose(scan, tok); err != nil {
		return nil, err
	}
	return &node{kind: nodeOp, r: op.r, pos: op.pos, left: lhs, right: rhs}, nil
}

// String returns the canonical form of the expression: an atom is printed as
// itself, and an operation as (op lhs rhs).
func (e *Expr) String() string {
	return e.n.String()
}

// Infix returns the expression in fully parenthesized infix form, e.g.
// (1 + (2 * 3)). Parsing the result gives back the same tree.
func (e *Expr) Infix() string {
	var b strings.Builder
	e.n.fmtinfix(&b)
	return b.String()
}

// Atom returns the rune of an atom expression. ok is false for operations.
func (e *Expr) Atom() (r rune, ok bool) {
	if e.n.kind != nodeAtom {
		return 0, false
	}
	return e.n.r, true
}

// Operation returns the operator and operands of an operation. ok is false for
// atoms. The operands share structure with e.
func (e *Expr) Operation() (op rune, lhs, rhs *Expr, ok bool) {
	if e.n.kind != nodeOp {
		return 0, nil, nil, false
	}
	return e.n.r, &Expr{n: e.n.left}, &Expr{n: e.n.right}, true
}

// Vars returns the variable names used when evaluating the expression, in
// ascending order.
func (e *Expr) Vars() []rune {
	seen := make(map[rune]bool)
	e.n.vars(seen)
	names := make([]rune, 0, len(seen))
	for r := range seen {
		names = append(names, r)
	}
	sortrunes(names)
	return names
}

// Equal reports whether two expressions have the same structure.
func (e *Expr) Equal(f *Expr) bool {
	return e.n.equal(f.n)
}

// sortrunes sorts a rune slice without using package sort because that has
// reflection and allocation problems.
func sortrunes(names []rune) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
