package parser

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree.
type node struct {
	kind nodeKind
	// r is the atom rune for nodeAtom or the operator rune for nodeOp.
	r rune
	// pos is the column of the token the node was built from.
	pos int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeAtom // digit literal or variable name
	nodeOp   // evaluate left, then right, then apply r
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeAtom:
		return "Atom"
	case nodeOp:
		return "Op"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the canonical prefix form, e.g. (+ 1 (* 2 3)).
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeAtom:
		b.WriteRune(n.r)
	case nodeOp:
		b.WriteByte('(')
		b.WriteRune(n.r)
		b.WriteByte(' ')
		n.left.fmt(b)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("parser: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// fmtinfix writes a fully parenthesized infix form, e.g. (1 + (2 * 3)).
func (n *node) fmtinfix(b *strings.Builder) {
	switch n.kind {
	case nodeAtom:
		b.WriteRune(n.r)
	case nodeOp:
		b.WriteByte('(')
		n.left.fmtinfix(b)
		b.WriteByte(' ')
		b.WriteRune(n.r)
		b.WriteByte(' ')
		n.right.fmtinfix(b)
		b.WriteByte(')')
	default:
		panic("parser: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// vars adds the variable names under n to seen.
func (n *node) vars(seen map[rune]bool) {
	switch n.kind {
	case nodeAtom:
		if isletter(n.r) {
			seen[n.r] = true
		}
	case nodeOp:
		n.left.vars(seen)
		n.right.vars(seen)
	}
}

// equal reports whether two trees have the same shape and runes. Positions
// are ignored.
func (n *node) equal(m *node) bool {
	if n == nil || m == nil {
		return n == m
	}
	if n.kind != m.kind || n.r != m.r {
		return false
	}
	return n.left.equal(m.left) && n.right.equal(m.right)
}
