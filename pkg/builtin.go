package deepu

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func defineBuiltins(b *LLVMIRBuilder) {
	b.printf = builtinPrintf(b.mod)
	b.strcmp = builtinStrcmp(b.mod)

	b.formatInt = b.stringConstant("%lld\n")
	b.formatString = b.stringConstant("%s\n")
	b.trueString = b.stringConstant("True")
	b.falseString = b.stringConstant("False")
}

func builtinPrintf(mod *ir.Module) *ir.Func {
	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	return printf
}

func builtinStrcmp(mod *ir.Module) *ir.Func {
	return mod.NewFunc("strcmp", types.I32,
		ir.NewParam("s1", types.I8Ptr),
		ir.NewParam("s2", types.I8Ptr),
	)
}
