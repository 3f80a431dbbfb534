package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"

	"github.com/jdvillal/parser"
)

// repl evaluates input lines against a single variable context.
type repl struct {
	ctx  *parser.Context
	out  io.Writer
	errs io.Writer
	// verb formats results, including the trailing newline.
	verb string
	// prec selects big.Float evaluation when nonzero.
	prec   uint
	echo   bool
	ast    bool
	prompt string
}

// run processes lines from in until EOF or an exit command. Errors in a line
// are reported and the loop continues; the returned error is only for
// failures reading in.
func (r *repl) run(in io.Reader) (exited bool, err error) {
	scan := bufio.NewScanner(in)
	for {
		if r.prompt != "" {
			fmt.Fprint(r.out, r.prompt)
		}
		if !scan.Scan() {
			return false, scan.Err()
		}
		line := strings.TrimSpace(scan.Text())
		switch line {
		case "exit":
			return true, nil
		case "":
			continue
		}
		if err := r.line(line); err != nil {
			r.report(line, err)
		}
	}
}

// line parses and evaluates one line. Assignments update the context and
// print nothing.
func (r *repl) line(line string) error {
	a, err := parser.ParseString(line)
	if err != nil {
		return err
	}
	if r.echo {
		fmt.Fprintln(r.out, a)
	}
	if r.ast {
		fmt.Fprintln(r.out, repr.String(dump(a), repr.Indent("  ")))
	}
	as, err := a.Assignment()
	if err != nil {
		return err
	}
	if as != nil {
		v, err := r.eval(as.Value)
		if err != nil {
			return err
		}
		r.ctx.Set(as.Var, v)
		return nil
	}
	if r.prec == 0 {
		v, err := a.Eval(r.ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, r.verb, v)
		return nil
	}
	v, err := a.EvalBig(r.ctx, r.prec)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, r.verb, v)
	return nil
}

// eval evaluates an expression at the configured precision, rounding to
// float64 for storage in the context.
func (r *repl) eval(a *parser.Expr) (float64, error) {
	if r.prec == 0 {
		return a.Eval(r.ctx)
	}
	v, err := a.EvalBig(r.ctx, r.prec)
	if err != nil {
		return 0, err
	}
	f, _ := v.Float64()
	return f, nil
}

// report prints an error, pointing at the offending column when there is one.
func (r *repl) report(line string, err error) {
	bad := color.New(color.FgRed)
	var ie parser.InputError
	if errors.As(err, &ie) && ie.Pos() >= 1 {
		fmt.Fprintln(r.errs, "  "+line)
		bad.Fprintln(r.errs, "  "+strings.Repeat(" ", ie.Pos()-1)+"^")
	}
	bad.Fprintln(r.errs, err)
}

// astNode mirrors an expression tree with exported fields for repr.
type astNode struct {
	Atom     string
	Op       string
	Operands []*astNode
}

func dump(a *parser.Expr) *astNode {
	if r, ok := a.Atom(); ok {
		return &astNode{Atom: string(r)}
	}
	op, lhs, rhs, _ := a.Operation()
	return &astNode{Op: string(op), Operands: []*astNode{dump(lhs), dump(rhs)}}
}
