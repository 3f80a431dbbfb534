package parser_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdvillal/parser"
)

func TestEvalBig(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[rune]float64
		r    float64
	}{
		{"num", "7", nil, 7},
		{"precedence", "2 + b * 5", map[rune]float64{'b': 5}, 27},
		{"mixed", "2 + b * 5 - 3 / 5 + 5 - 3", map[rune]float64{'b': 5}, 28.4},
		{"pow", "4^3^2", nil, 262144},
		{"root", "9 √ 2", nil, 3},
		{"cube-root", "8 √ 3", nil, 2},
		{"pow-zero", "0 ^ 0", nil, 1},
		{"zero-pow-neg", "0 ^ (0 - 1)", nil, math.Inf(1)},
		{"div-zero", "1 / 0", nil, math.Inf(1)},
		{"neg-div-zero", "(0 - 3) / 0", nil, math.Inf(-1)},
		{"root-zero", "2 √ 0", nil, math.Inf(1)},
		{"one-root-zero", "1 √ 0", nil, 1},
		{"small-root-zero", "x √ 0", map[rune]float64{'x': 0.5}, 0},
		{"inf-root", "2 √ (1 / 0)", nil, 1},
		{"inf-pow", "(1 / 0) ^ 2", nil, math.Inf(1)},
		{"inf-pow-neg", "(1 / 0) ^ (0 - 2)", nil, 0},
		{"var-inf", "x + 1", map[rune]float64{'x': math.Inf(1)}, math.Inf(1)},
		{"neg-pow-even", "(0 - 4) ^ 2", nil, 16},
		{"neg-pow-odd", "(0 - 2) ^ 3", nil, -8},
		{"neg-pow-zero", "(0 - 3) ^ 0", nil, 1},
		{"neg-pow-recip", "(0 - 2) ^ (0 - 1)", nil, -0.5},
		{"large-pow", "2 ^ (8 * 8 * 8 * 2 - 1)", nil, math.Ldexp(1, 1023)},
		{"large-pow-neg", "2 ^ (0 - 8 * 8 * 8 * 2 + 1)", nil, math.Ldexp(1, -1023)},
		{"overflow", "9 ^ 9 ^ 9 ^ 9", nil, math.Inf(1)},
		{"underflow", "(1 / 9) ^ 9 ^ 9 ^ 9", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := parser.ParseString(c.src)
			require.NoError(t, err, c.src)
			r, err := a.EvalBig(parser.NewContext(parser.SetVars(c.vars)), 64)
			require.NoError(t, err)
			require.NotNil(t, r)
			f, _ := r.Float64()
			if math.IsInf(c.r, 0) {
				assert.Equal(t, c.r, f)
				return
			}
			assert.InDelta(t, c.r, f, 1e-9*math.Max(1, math.Abs(c.r)))
		})
	}
}

func TestEvalBigHugePow(t *testing.T) {
	// 9^9^9 is far outside float64 but within the exponent range of big.Float.
	a, err := parser.ParseString("9 ^ 9 ^ 9")
	require.NoError(t, err)
	r, err := a.EvalBig(nil, 64)
	require.NoError(t, err)
	require.False(t, r.IsInf())
	mant := new(big.Float)
	exp := r.MantExp(mant)
	// log2(9^387420489) = 1228093894.15...
	assert.Equal(t, 1228093895, exp)
	m, _ := mant.Float64()
	assert.InDelta(t, math.Exp2(1228093894.1521063-1228093895), m, 1e-6)

	// The reciprocal is tiny but representable.
	a, err = parser.ParseString("(1 / 9) ^ 9 ^ 9")
	require.NoError(t, err)
	r, err = a.EvalBig(nil, 64)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Sign())
	assert.Equal(t, -1228093894, r.MantExp(nil))
}

func TestEvalBigPrec(t *testing.T) {
	a, err := parser.ParseString("1 / 3")
	require.NoError(t, err)
	r, err := a.EvalBig(nil, 200)
	require.NoError(t, err)
	assert.Equal(t, uint(200), r.Prec())
	one := new(big.Float).SetPrec(200).SetInt64(1)
	three := new(big.Float).SetPrec(200).SetInt64(3)
	want := new(big.Float).SetPrec(200).Quo(one, three)
	assert.Zero(t, want.Cmp(r), "want %v, got %v", want, r)
}

func TestEvalBigDomain(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[rune]float64
		fn   string
		col  int
	}{
		{"zero-div-zero", "0 / 0", nil, "/", 3},
		{"inf-div-inf", "(1/0) / (1/0)", nil, "/", 7},
		{"inf-sub-inf", "(1/0) - (1/0)", nil, "-", 7},
		{"inf-add-neginf", "(1/0) + (0 - 1)/0", nil, "+", 7},
		{"zero-mul-inf", "0 * (1/0)", nil, "*", 3},
		{"neg-pow", "(0 - 4) ^ (1 / 2)", nil, "^", 9},
		{"neg-root", "(0 - 4) √ 2", nil, "√", 9},
		{"nan-var", "1 + n", map[rune]float64{'n': math.NaN()}, "n", 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := parser.ParseString(c.src)
			require.NoError(t, err, c.src)
			r, err := a.EvalBig(parser.NewContext(parser.SetVars(c.vars)), 64)
			assert.Nil(t, r)
			var de *parser.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, c.fn, de.Func)
			assert.Equal(t, c.col, de.Pos())
			assert.Contains(t, err.Error(), "outside domain")
		})
	}
}

func TestEvalBigErrors(t *testing.T) {
	a, err := parser.ParseString("1 + y")
	require.NoError(t, err)
	_, err = a.EvalBig(nil, 64)
	assert.Equal(t, &parser.NameError{Col: 5, Name: "y"}, err)

	a, err = parser.ParseString("a.b")
	require.NoError(t, err)
	_, err = a.EvalBig(parser.NewContext(parser.SetVar('a', 1), parser.SetVar('b', 2)), 64)
	assert.Equal(t, &parser.OperatorError{Col: 2, Operator: ".", Eval: true}, err)
}

func TestEvalBigMatchesEval(t *testing.T) {
	ctx := parser.NewContext(parser.SetVars(map[rune]float64{'a': 1.5, 'b': 5, 'c': 0.25}))
	for _, src := range []string{
		"a + b * 2 * c + a / 4",
		"(2 + b) * 5",
		"a ^ c ^ 2",
		"b √ a * 3",
		"9 - 8 - 7 / 6 * 5",
		"(0 - a) ^ 3",
		"2 ^ (b * b * b * 8 + 1)",
	} {
		a, err := parser.ParseString(src)
		require.NoError(t, err, src)
		want, err := a.Eval(ctx)
		require.NoError(t, err, src)
		got, err := a.EvalBig(ctx, 128)
		require.NoError(t, err, src)
		f, _ := got.Float64()
		assert.InDelta(t, want, f, 1e-12*math.Max(1, math.Abs(want)), src)
	}
}
