package deepu

import (
	"io"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableSlots(t *testing.T) {
	slots := NewVariableSlots()
	b := NewLLVMIRBuilder(&Analysis{Symbols: NewSymbolTable()})
	entry := b.mod.NewFunc("f", types.Void).NewBlock("")

	slot1 := entry.NewAlloca(types.I64)
	slot2 := entry.NewAlloca(types.I8Ptr)

	slots.Set("id1", slot1)
	slots.Set("id2", slot2)

	got, ok := slots.Get("id1")
	require.True(t, ok)
	assert.Equal(t, slot1, got)

	got, ok = slots.Get("id2")
	require.True(t, ok)
	assert.Equal(t, slot2, got)

	_, ok = slots.Get("id3")
	assert.False(t, ok)
}

func compileSource(t *testing.T, source string) string {
	t.Helper()

	mod, err := NewCompiler().CompileFromReader(strings.NewReader(source))
	require.NoError(t, err, source)

	return mod.String()
}

func TestCompile(t *testing.T) {
	got := compileSource(t, "let x be 7\nlet s be \"seven\"\nsay x / 2\nsay s\nsay not x")

	assert.Contains(t, got, "define i32 @main()")
	assert.Contains(t, got, "@printf")
	assert.Contains(t, got, "%var.x = alloca i64")
	assert.Contains(t, got, "%var.s = alloca i8*")
	assert.Contains(t, got, "sdiv i64")
	assert.Contains(t, got, "srem i64")
	assert.Contains(t, got, "select i1")
	assert.Contains(t, got, "ret i32 0")
}

func TestCompileControlFlow(t *testing.T) {
	got := compileSource(t, strings.Join([]string{
		"let n be 3",
		"while n is greater than 0 do",
		"  set n to n - 1",
		"end",
		"repeat n times",
		"  say n",
		"end",
		"if \"a\" is less than \"b\" then",
		"  say 1",
		"otherwise",
		"  say 2",
		"end",
	}, "\n"))

	assert.Contains(t, got, "icmp sgt i64")
	assert.Contains(t, got, "icmp slt i64")
	assert.Contains(t, got, "@strcmp")
	assert.Contains(t, got, "br i1")
}

func TestCompileErrors(t *testing.T) {
	_, err := NewCompiler().CompileFromReader(strings.NewReader("say \"a\" + \"b\"\nsay y"))

	var compileErr *CompileErrors
	require.ErrorAs(t, err, &compileErr)
	assert.Len(t, compileErr.Errors, 2)

	_, err = NewCompiler().CompileFromReader(strings.NewReader("say \"open"))
	assert.ErrorIs(t, err, ErrUnterminatedString)

	source := "if 1 is less than 0 then\nlet y be 5\nend\nsay y"
	require.ErrorIs(t, Run(source, io.Discard), ErrUndefinedVariable)

	_, err = NewCompiler().CompileSource(source)
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, []CompileError{&ConditionalDeclarationError{Loc: at(4, 5), Name: "y"}}, compileErr.Errors)
}

func TestCompileSource(t *testing.T) {
	mod, err := NewCompiler().CompileSource("let b be not 0\nsay b")
	require.NoError(t, err)

	got := mod.String()
	assert.Contains(t, got, `c"True\00"`)
	assert.Contains(t, got, `c"False\00"`)

	_, err = NewCompiler().CompileSource("say (1")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}
