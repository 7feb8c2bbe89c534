package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"go.deepu.dev/pkg"
)

const (
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
)

func main() {
	version := flag.Bool("version", false, "show version and exit")
	tokens := flag.Bool("tokens", false, "print tokens instead of executing")
	ast := flag.Bool("ast", false, "print the parsed program and exit")
	emitLLVM := flag.Bool("emit-llvm", false, "print the program as LLVM IR and exit")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: deepu [flags] <file.dpl>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println("deepulang", deepu.Version)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "error: missing source file")
		os.Exit(exitUsage)
	}

	os.Exit(run(flag.Arg(0), *tokens, *ast, *emitLLVM))
}

func run(filename string, printTokens, printAST, emitLLVM bool) int {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitNoInput
	}

	toks, err := deepu.Tokenize(string(source))
	if err != nil {
		return printError(os.Stderr, err)
	}

	if printTokens {
		for _, t := range toks {
			fmt.Println(t)
		}

		return 0
	}

	program, err := deepu.Parse(toks)
	if err != nil {
		return printError(os.Stderr, err)
	}

	if printAST {
		pretty.Println(program)
		return 0
	}

	if emitLLVM {
		mod, err := deepu.NewCompiler().CompileProgram(program)
		if err != nil {
			return printError(os.Stderr, err)
		}

		fmt.Println(mod)
		return 0
	}

	if err := deepu.Interpret(program, os.Stdout); err != nil {
		return printError(os.Stderr, err)
	}

	return 0
}

// printError reports err as "error: <line:col>: <message>" and returns the
// exit code for its category.
func printError(w io.Writer, err error) int {
	var (
		lexErr     *deepu.LexError
		parseErr   *deepu.ParseError
		runtimeErr *deepu.RuntimeError
		compileErr *deepu.CompileErrors
	)

	switch {
	case errors.As(err, &lexErr):
		fmt.Fprintln(w, "error:", lexErr)
		return exitDataErr
	case errors.As(err, &parseErr):
		fmt.Fprintln(w, "error:", parseErr)
		return exitDataErr
	case errors.As(err, &compileErr):
		for _, e := range compileErr.Errors {
			fmt.Fprintln(w, "error:", e)
		}
		return exitDataErr
	case errors.As(err, &runtimeErr):
		fmt.Fprintln(w, "error:", runtimeErr)
		return exitSoftware
	default:
		fmt.Fprintln(w, "error:", err)
		return 1
	}
}
