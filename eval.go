package parser

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Context holds the variables available to expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	names map[rune]float64
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name rune
		val  float64
	}
	varsopt map[rune]float64
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name rune, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[rune]float64) ContextOption {
	return varsopt(vars)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	var ctx Context
	return ctx.Clone(opts...)
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name rune, value float64) *Context {
	if ctx.names == nil {
		ctx.names = make(map[rune]float64)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is defined.
func (ctx *Context) Lookup(name rune) (float64, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.names[name]
	return v, ok
}

// Len returns the number of defined variables.
func (ctx *Context) Len() int {
	if ctx == nil {
		return 0
	}
	return len(ctx.names)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{names: make(map[rune]float64, len(ctx.names))}
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		default:
			panic("parser: unknown option type")
		}
	}
	return &n
}

// Eval evaluates the expression using the variables in ctx, which may be nil
// if the expression uses none. Arithmetic follows IEEE 754, so e.g. 1/0 is
// +Inf rather than an error.
func (e *Expr) Eval(ctx *Context) (float64, error) {
	return e.n.eval(ctx)
}

func (n *node) eval(ctx *Context) (float64, error) {
	switch n.kind {
	case nodeAtom:
		if isdigit(n.r) {
			return float64(n.r - '0'), nil
		}
		v, ok := ctx.Lookup(n.r)
		if !ok {
			return 0, &NameError{Col: n.pos, Name: string(n.r)}
		}
		return v, nil
	case nodeOp:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		switch n.r {
		case '+':
			return l + r, nil
		case '-':
			return l - r, nil
		case '*':
			return l * r, nil
		case '/':
			return l / r, nil
		case '^':
			return math.Pow(l, r), nil
		case '√':
			// l √ r is the r-th root of l.
			return math.Pow(l, 1/r), nil
		default:
			return 0, &OperatorError{Col: n.pos, Operator: string(n.r), Eval: true}
		}
	default:
		panic("parser: invalid AST node " + n.kind.String())
	}
}

// Assignment is an expression of the form name = value.
type Assignment struct {
	// Var is the variable being assigned.
	Var rune
	// Value is the right-hand side. It is part of the assignment expression,
	// not a copy.
	Value *Expr
}

// Assignment checks whether the root of the expression is an assignment. The
// result is nil with no error if it is not. Only the root is examined, so
// assignments nested inside other operations are left to Eval to reject.
func (e *Expr) Assignment() (*Assignment, error) {
	n := e.n
	if n.kind != nodeOp || n.r != '=' {
		return nil, nil
	}
	if n.left.kind != nodeAtom || !isletter(n.left.r) {
		return nil, &AssignError{Col: n.pos, Target: n.left.String()}
	}
	return &Assignment{Var: n.left.r, Value: &Expr{n: n.right}}, nil
}

// Eval is a shortcut to parse an expression and return its result using the
// variables in ctx.
func Eval(src io.RuneScanner, ctx *Context) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval(ctx)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, ctx *Context) (float64, error) {
	return Eval(strings.NewReader(src), ctx)
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation context. It implements InputError.
type NameError struct {
	// Col is the position of the variable.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined variable: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}
