package deepu

import (
	"fmt"
	"io"
	"os"
)

const Version = "0.1.1"

// Run lexes, parses and interprets source, writing program output to out.
func Run(source string, out io.Writer) error {
	tokens, err := Tokenize(source)
	if err != nil {
		return err
	}

	program, err := Parse(tokens)
	if err != nil {
		return err
	}

	return Interpret(program, out)
}

func RunFile(filename string, out io.Writer) error {
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return Run(string(source), out)
}

// ParseFile reads and parses a source file without running it.
func ParseFile(filename string) (*Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer f.Close()

	lexer, err := NewLexerFromReader(f)
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.Run()
	if err != nil {
		return nil, err
	}

	return Parse(tokens)
}
