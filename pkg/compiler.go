package deepu

import (
	"io"

	"github.com/llir/llvm/ir"
)

// Compiler turns a program into an LLVM IR module. Unlike the interpreter it
// requires every variable to keep a single type.
type Compiler struct{}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (c *Compiler) Compile(filename string) (*ir.Module, error) {
	program, err := ParseFile(filename)
	if err != nil {
		return nil, err
	}

	return c.CompileProgram(program)
}

func (c *Compiler) CompileSource(source string) (*ir.Module, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	program, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	return c.CompileProgram(program)
}

func (c *Compiler) CompileFromReader(reader io.Reader) (*ir.Module, error) {
	lexer, err := NewLexerFromReader(reader)
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.Run()
	if err != nil {
		return nil, err
	}

	program, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	return c.CompileProgram(program)
}

func (c *Compiler) CompileProgram(program *Program) (*ir.Module, error) {
	analysis := NewContextAnalyzer().Do(program)
	if errs := analysis.Errors(); len(errs) != 0 {
		return nil, &CompileErrors{Errors: errs}
	}

	return NewLLVMIRBuilder(analysis).Build(), nil
}
