// Package parser implements a small floating-point calculator over
// single-character terms.
//
// Every digit and ASCII letter is its own atom, so "12" is two atoms and a
// parse error, and "ab" is likewise not a name. Letters are variables looked up
// in a Context. Infix operators are parsed by precedence climbing with a
// (left, right) binding power per operator:
//
//	=	0.2, 0.1	assignment, right-associative
//	+ -	1.0, 1.1
//	* /	2.0, 2.1
//	^ √	3.1, 3.0	power and root, right-associative
//	.	4.0, 4.1	parsed but not evaluable
//
// "x √ n" is the n-th root of x. Parentheses group as usual.
//
// A parsed Expr prints in a fully bracketed prefix form, so "1 + 2 * 3" is
// "(+ 1 (* 2 3))". ParseTree reads that form back.
package parser
