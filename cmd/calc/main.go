package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/jdvillal/parser"
)

var (
	app     = kingpin.New("calc", "Single-character calculator. Enter an expression per line, or \"exit\".")
	inname  = app.Flag("in", "input file (default stdin if no args given)").String()
	verb    = app.Flag("fmt", "result formatting string").Default("%g").String()
	given   = app.Flag("given", "name=value variable definition (any number of times)").Short('g').Strings()
	prec    = app.Flag("prec", "precision of calculations in bits, or 0 for float64").Short('p').Default("0").Uint()
	echo    = app.Flag("echo", "print parse trees").Bool()
	ast     = app.Flag("ast", "dump parse trees in full").Bool()
	nocolor = app.Flag("no-color", "disable coloured diagnostics").Bool()
	exprs   = app.Arg("expression", "lines to evaluate instead of reading input").Strings()
)

func main() {
	log.SetFlags(0)
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if *nocolor {
		color.NoColor = true
	}

	ctx := parser.NewContext()
	for _, d := range *given {
		if err := define(ctx, d); err != nil {
			log.Fatal(err)
		}
	}

	var ins []io.Reader
	f, err := infile(*inname, len(*exprs) == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		defer f.Close()
		ins = append(ins, f)
	}
	if len(*exprs) > 0 {
		ins = append(ins, strings.NewReader(strings.Join(*exprs, "\n")))
	}

	r := repl{
		ctx:  ctx,
		out:  os.Stdout,
		errs: os.Stderr,
		verb: *verb + "\n",
		prec: *prec,
		echo: *echo,
		ast:  *ast,
	}
	if f == os.Stdin && isatty.IsTerminal(os.Stdin.Fd()) {
		r.prompt = ">> "
	}
	for _, in := range ins {
		exited, err := r.run(in)
		if err != nil {
			log.Fatal(err)
		}
		if exited {
			break
		}
	}
}

// define evaluates one name=value definition into ctx.
func define(ctx *parser.Context, s string) error {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	name := strings.TrimSpace(d[0])
	if len([]rune(name)) != 1 || !isletter([]rune(name)[0]) {
		return fmt.Errorf("variable names must be a single letter, not %q", name)
	}
	v, err := parser.EvalString(d[1], ctx)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	ctx.Set([]rune(name)[0], v)
	return nil
}

func isletter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
