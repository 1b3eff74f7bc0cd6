package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/quantities"
)

func main() {
	log.SetFlags(0)
	var (
		inname      string
		given, wrt  [][2]string
		defs        []string
		nl, echo    bool
		interactive bool
		verbose     bool
		prec        int
	)
	addto := func(to *[][2]string) func(string) error {
		return func(s string) error {
			d := strings.SplitN(s, "=", 2)
			if len(d) != 2 {
				return fmt.Errorf(`definitions must be "name=expr", not %q`, s)
			}
			*to = append(*to, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
			return nil
		}
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.Func("given", "name=expr constant definition, which may use -wrt variables (any number of times)", addto(&given))
	flag.Func("wrt", "name=expr variable to differentiate with respect to (any number of times)", addto(&wrt))
	flag.Func("def", "f(x, y)=expr function definition (any number of times)", func(s string) error {
		defs = append(defs, s)
		return nil
	})
	flag.IntVar(&prec, "p", 64, "precision of unit conversions in bits")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&interactive, "i", false, "read expressions interactively")
	flag.BoolVar(&verbose, "v", false, "log function calls")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	env := quantities.NewEnvironment(
		quantities.StandardConsts(),
		quantities.StandardUnits(),
		nil,
		quantities.WithLogger(logger),
		quantities.Prec(uint(prec)),
	)
	for _, s := range defs {
		name, ev, err := quantities.ParseDefinition(s)
		if err != nil {
			log.Fatalf("defining %s: %v", s, err)
		}
		env = env.Clone(quantities.Define(name, ev))
	}
	env, err := bind(env, given, wrt)
	if err != nil {
		log.Fatal(err)
	}

	if interactive {
		repl(env, echo)
		return
	}

	var srcs []string
	in, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if in != nil {
		b, err := io.ReadAll(in)
		if err != nil {
			log.Fatal(err)
		}
		if nl {
			for _, line := range strings.Split(string(b), "\n") {
				if strings.TrimSpace(line) != "" {
					srcs = append(srcs, line)
				}
			}
		} else {
			srcs = append(srcs, string(b))
		}
	}
	srcs = append(srcs, flag.Args()...)

	failed := false
	for _, src := range srcs {
		if !run(env, src, echo) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// bind adds the -wrt variables to env and then the -given constants, so that
// constants can carry derivatives with respect to the variables.
func bind(env *quantities.Environment, given, wrt [][2]string) (*quantities.Environment, error) {
	for _, d := range wrt {
		v, err := quantities.EvalString(env, d[1])
		if err != nil {
			return nil, fmt.Errorf("setting %s:\n%s", d[0], quantities.Diagnose(err, d[1]))
		}
		q, ok := quantities.ToQuantity(v)
		if !ok {
			return nil, fmt.Errorf("setting %s: cannot differentiate with respect to complex %v", d[0], v)
		}
		env = env.Clone(quantities.SetConst(d[0], quantities.Variable(d[0], q.Value, q.Dim)))
	}
	for _, d := range given {
		v, err := quantities.EvalString(env, d[1])
		if err != nil {
			return nil, fmt.Errorf("setting %s:\n%s", d[0], quantities.Diagnose(err, d[1]))
		}
		env = env.Clone(quantities.SetConst(d[0], v))
	}
	return env, nil
}

// run evaluates one expression and prints the result or a diagnosis. The
// result is false if there was an error.
func run(env *quantities.Environment, src string, echo bool) bool {
	n, err := quantities.ParseString(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, quantities.Diagnose(err, src))
		return false
	}
	if echo {
		fmt.Printf("%v : ", n)
	}
	v, err := n.Eval(env, nil)
	if err != nil {
		if echo {
			fmt.Println()
		}
		fmt.Fprintln(os.Stderr, quantities.Diagnose(err, src))
		return false
	}
	fmt.Println(v)
	return true
}

const historyFile = ".quantities_history"

// repl reads and evaluates lines until EOF. Lines of the form f(x)=expr
// define functions for the rest of the session.
func repl(env *quantities.Environment, echo bool) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	hist := filepath.Join(home, historyFile)
	if f, err := os.Open(hist); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(hist); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
				log.Print(err)
			}
			fmt.Println()
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.Contains(line, "=") {
			name, ev, err := quantities.ParseDefinition(line)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			env = env.Clone(quantities.Define(name, ev))
			continue
		}
		run(env, line, echo)
	}
}

func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
