package parser

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// EvalBig evaluates the expression to prec bits of mantissa using the
// variables in ctx. big.Float cannot represent NaN, so any operation whose
// float64 result would be NaN is a *DomainError instead. Division of a nonzero
// value by zero is still ±Inf.
func (e *Expr) EvalBig(ctx *Context, prec uint) (*big.Float, error) {
	return e.n.evalbig(ctx, prec)
}

func (n *node) evalbig(ctx *Context, prec uint) (*big.Float, error) {
	switch n.kind {
	case nodeAtom:
		r := new(big.Float).SetPrec(prec)
		if isdigit(n.r) {
			return r.SetInt64(int64(n.r - '0')), nil
		}
		v, ok := ctx.Lookup(n.r)
		if !ok {
			return nil, &NameError{Col: n.pos, Name: string(n.r)}
		}
		if math.IsNaN(v) {
			return nil, &DomainError{Col: n.pos, Func: string(n.r)}
		}
		return r.SetFloat64(v), nil
	case nodeOp:
		l, err := n.left.evalbig(ctx, prec)
		if err != nil {
			return nil, err
		}
		r, err := n.right.evalbig(ctx, prec)
		if err != nil {
			return nil, err
		}
		return n.bigop(l, r, prec)
	default:
		panic("parser: invalid AST node " + n.kind.String())
	}
}

// bigop applies the node's operator to l and r, reusing l for the result.
func (n *node) bigop(l, r *big.Float, prec uint) (z *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := p.(error); !ok || !errors.As(e, &nan) {
			panic(p)
		}
		z, err = nil, &DomainError{Col: n.pos, X: r, Func: string(n.r)}
	}()
	switch n.r {
	case '+':
		return l.Add(l, r), nil
	case '-':
		return l.Sub(l, r), nil
	case '*':
		return l.Mul(l, r), nil
	case '/':
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return nil, &DomainError{Col: n.pos, X: r, Func: "/"}
		}
		return l.Quo(l, r), nil
	case '^':
		return pow(n, l, l, r)
	case '√':
		if r.Sign() == 0 {
			// 1/±0 is ±Inf, which pow handles.
			return pow(n, l, l, new(big.Float).SetInf(r.Signbit()))
		}
		inv := new(big.Float).SetPrec(prec).SetInt64(1)
		return pow(n, l, l, inv.Quo(inv, r))
	default:
		return nil, &OperatorError{Col: n.pos, Operator: string(n.r), Eval: true}
	}
}

// pow sets z to x**y. bigfloat.Pow only handles finite, non-negative bases and
// finite exponents, so the special cases of IEEE 754 pow are resolved here.
func pow(n *node, z, x, y *big.Float) (*big.Float, error) {
	if x.Signbit() && x.Sign() != 0 {
		// A negative base has a real power only for integer exponents.
		if !y.IsInt() {
			return nil, &DomainError{Col: n.pos, X: x, Func: string(n.r)}
		}
		odd := y.Sign() != 0 && uint(y.MantExp(nil)) == y.MinPrec()
		r, err := pow(n, z, new(big.Float).Neg(x), y)
		if err != nil {
			return nil, err
		}
		if odd {
			r.Neg(r)
		}
		return r, nil
	}
	one := new(big.Float).SetInt64(1)
	switch {
	case y.Sign() == 0, x.Cmp(one) == 0:
		return z.SetInt64(1), nil
	case x.Sign() == 0:
		if y.Sign() > 0 {
			return z.SetInt64(0), nil
		}
		return z.SetInf(false), nil
	case y.IsInf():
		if (x.Cmp(one) > 0) == (y.Sign() > 0) {
			return z.SetInf(false), nil
		}
		return z.SetInt64(0), nil
	case x.IsInf():
		if y.Sign() > 0 {
			return z.SetInf(false), nil
		}
		return z.SetInt64(0), nil
	}
	// Estimate log2 of the result to catch overflow and underflow before
	// doing any real work.
	mant := new(big.Float)
	e := x.MantExp(mant)
	mf, _ := mant.Float64()
	yf, _ := y.Float64()
	est := yf * (float64(e) + math.Log2(mf))
	switch {
	case est >= big.MaxExp:
		return z.SetInf(false), nil
	case est <= big.MinExp:
		return z.SetInt64(0), nil
	case math.Abs(est) > maxdirectexp:
		return powsplit(z, x, y, est), nil
	}
	return bigfloat.Pow(z, x, y), nil
}

// maxdirectexp is the largest binary exponent of a power computed directly by
// bigfloat.Pow. Beyond it, bigfloat.Exp halves its argument recursively, once
// per doubling of the exponent.
const maxdirectexp = 1000

// powsplit sets z to x**y as 2**f * 2**k, where k is the integer part of
// t = y*log2(x) and f = t - k is in [0, 1). est approximates t.
func powsplit(z, x, y *big.Float, est float64) *big.Float {
	// t needs enough extra bits to keep prec bits after losing its integer
	// part.
	wp := z.Prec() + 64 + uint(math.Log2(math.Abs(est))) + 1
	two := new(big.Float).SetPrec(wp).SetInt64(2)
	t := bigfloat.Log(new(big.Float).SetPrec(wp), x)
	t.Quo(t, bigfloat.Log(new(big.Float).SetPrec(wp), two))
	t.Mul(t, y)
	k, _ := t.Int64()
	f := new(big.Float).SetPrec(wp).SetInt64(k)
	f.Sub(t, f)
	if f.Sign() < 0 {
		k--
		f.Add(f, new(big.Float).SetInt64(1))
	}
	m := bigfloat.Pow(new(big.Float).SetPrec(wp), two, f)
	// SetMantExp rounds to z's precision and overflows to Inf or underflows
	// to zero beyond the exponent range.
	return z.SetMantExp(m, int(k))
}

// DomainError is an error returned when an operator is applied to arguments
// outside its domain, e.g. 0/0. It implements InputError.
type DomainError struct {
	// Col is the position of the operator or variable.
	Col int
	// X is the out-of-domain argument, if there is one.
	X *big.Float
	// Func is a name identifying the operator or variable.
	Func string
}

func (err *DomainError) Error() string {
	r := "NaN"
	if err.X != nil {
		r = err.X.String()
	}
	r += " outside domain"
	if err.Func != "" {
		r += " of " + strconv.Quote(err.Func)
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}

var _ InputError = (*DomainError)(nil)
