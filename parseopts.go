package parser

import "strconv"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// bp is a (left, right) binding power pair. Larger binds tighter. An operator
// whose right power is below its left is right-associative.
type bp struct {
	left, right float64
}

type (
	bpopt struct {
		op rune
		bp bp
	}
	disableopt rune
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// ops is the binding power table. It is shared with defaultops until an
	// option changes it.
	ops map[rune]bp
	// owned indicates that ops is a private copy that options may modify.
	owned bool
}

var defaultops = map[rune]bp{
	'=': {0.2, 0.1},
	'+': {1.0, 1.1},
	'-': {1.0, 1.1},
	'*': {2.0, 2.1},
	'/': {2.0, 2.1},
	'^': {3.1, 3.0},
	'√': {3.1, 3.0},
	'.': {4.0, 4.1},
}

// own makes p.ops safe to modify.
func (p *parsectx) own() {
	if p.owned {
		return
	}
	m := make(map[rune]bp, len(p.ops)+1)
	for k, v := range p.ops {
		m[k] = v
	}
	p.ops = m
	p.owned = true
}

// binop looks up the binding powers of an infix operator.
func (p *parsectx) binop(op rune) (bp, bool) {
	b, ok := p.ops[op]
	return b, ok
}

// BindingPower sets the left and right binding powers of an infix operator,
// adding it to the table if it is not already there. Operators added this way
// parse but have no arithmetic meaning; evaluating them is an OperatorError.
// Panics if op is an atom, whitespace, or a bracket.
func BindingPower(op rune, left, right float64) ParseOption {
	switch {
	case op == '(', op == ')', isatom(op), isspace(op):
		panic("parser: cannot bind " + strconv.QuoteRune(op) + " as an operator")
	}
	return &bpopt{op, bp{left, right}}
}

func (o *bpopt) parseOption(p parsectx) parsectx {
	p.own()
	p.ops[o.op] = o.bp
	return p
}

// DisableOperator removes an operator from the table so that it is reported as
// an unknown operator.
func DisableOperator(op rune) ParseOption {
	return disableopt(op)
}

func (o disableopt) parseOption(p parsectx) parsectx {
	p.own()
	delete(p.ops, rune(o))
	return p
}

// ParsingPreset creates a parsing preset that may be more efficient when using
// the same non-default parsing options for many calls to Parse. A preset
// panics when it would change any option from the default, but it is safe to
// apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := parsectx{ops: defaultops}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	// Options applied after the preset must copy again.
	p.owned = false
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.owned {
		panic("parser: preset applied to non-default parse config")
	}
	p.ops = o.ops
	return p
}

// newparsectx applies opts over the default operator table.
func newparsectx(opts []ParseOption) parsectx {
	p := parsectx{ops: defaultops}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return p
}
