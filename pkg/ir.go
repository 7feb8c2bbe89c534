package deepu

import (
	"fmt"
	"sort"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// VariableSlots maps variable names to their stack slots in main.
type VariableSlots struct {
	vals map[string]*ir.InstAlloca
}

func NewVariableSlots() *VariableSlots {
	return &VariableSlots{
		vals: make(map[string]*ir.InstAlloca),
	}
}

func (l *VariableSlots) Get(id string) (*ir.InstAlloca, bool) {
	slot, ok := l.vals[id]
	return slot, ok
}

func (l *VariableSlots) Set(id string, slot *ir.InstAlloca) {
	l.vals[id] = slot
}

var intPredicates = map[ComparisonOp]enum.IPred{
	CompareGreater:    enum.IPredSGT,
	CompareLess:       enum.IPredSLT,
	CompareEqual:      enum.IPredEQ,
	CompareNotEqual:   enum.IPredNE,
	CompareNotGreater: enum.IPredSLE,
	CompareNotLess:    enum.IPredSGE,
}

// LLVMIRBuilder lowers an analyzed program into a single main function.
// The analysis must be free of errors.
type LLVMIRBuilder struct {
	mod      *ir.Module
	main     *ir.Func
	entry    *ir.Block
	block    *ir.Block
	slots    *VariableSlots
	analysis *Analysis

	printf *ir.Func
	strcmp *ir.Func

	formatInt    constant.Constant
	formatString constant.Constant
	trueString   constant.Constant
	falseString  constant.Constant

	strings map[string]constant.Constant
}

func NewLLVMIRBuilder(analysis *Analysis) *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:      ir.NewModule(),
		slots:    NewVariableSlots(),
		analysis: analysis,
		strings:  make(map[string]constant.Constant),
	}

	defineBuiltins(builder)
	return builder
}

func (b *LLVMIRBuilder) Build() *ir.Module {
	b.main = b.mod.NewFunc("main", types.I32)
	b.entry = b.main.NewBlock("entry")

	names := make([]string, 0, len(b.analysis.Symbols.Entries))
	for name := range b.analysis.Symbols.Entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		typ := b.analysis.Symbols.Entries[name]
		slot := b.entry.NewAlloca(llvmType(typ))
		slot.SetName("var." + name)
		b.entry.NewStore(zeroValue(typ, b), slot)
		b.slots.Set(name, slot)
	}

	b.block = b.main.NewBlock("")
	b.entry.NewBr(b.block)

	b.statements(b.analysis.Program.Statements)
	b.block.NewRet(constant.NewInt(types.I32, 0))

	return b.mod
}

func (b *LLVMIRBuilder) statements(stmts []Stmt) {
	for _, stmt := range stmts {
		b.statement(stmt)
	}
}

func (b *LLVMIRBuilder) statement(stmt Stmt) {
	switch s := stmt.(type) {
	case *VariableDecl:
		b.store(s.Name, b.expression(s.Value))
	case *Assign:
		b.store(s.Name, b.expression(s.Value))
	case *Print:
		b.print(s)
	case *If:
		b.ifStmt(s)
	case *While:
		b.whileStmt(s)
	case *Repeat:
		b.repeatStmt(s)
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func (b *LLVMIRBuilder) store(name string, v value.Value) {
	slot, ok := b.slots.Get(name)
	if !ok {
		// The analyzer rejects programs with undefined variables
		panic("undefined identifier: " + name)
	}

	b.block.NewStore(v, slot)
}

func (b *LLVMIRBuilder) print(s *Print) {
	v := b.expression(s.Value)

	switch b.typeOf(s.Value) {
	case TypeInt:
		b.block.NewCall(b.printf, b.formatInt, v)
	case TypeString:
		b.block.NewCall(b.printf, b.formatString, v)
	case TypeBool:
		str := b.block.NewSelect(v, b.trueString, b.falseString)
		b.block.NewCall(b.printf, b.formatString, str)
	}
}

func (b *LLVMIRBuilder) ifStmt(s *If) {
	cond := b.truthy(s.Condition, b.expression(s.Condition))

	then := b.main.NewBlock("")
	after := b.main.NewBlock("")
	otherwise := after
	if s.Otherwise != nil {
		otherwise = b.main.NewBlock("")
	}

	b.block.NewCondBr(cond, then, otherwise)

	b.block = then
	b.statements(s.Then)
	b.block.NewBr(after)

	if s.Otherwise != nil {
		b.block = otherwise
		b.statements(s.Otherwise)
		b.block.NewBr(after)
	}

	b.block = after
}

func (b *LLVMIRBuilder) whileStmt(s *While) {
	check := b.main.NewBlock("")
	body := b.main.NewBlock("")
	after := b.main.NewBlock("")

	b.block.NewBr(check)

	b.block = check
	cond := b.truthy(s.Condition, b.expression(s.Condition))
	b.block.NewCondBr(cond, body, after)

	b.block = body
	b.statements(s.Body)
	b.block.NewBr(check)

	b.block = after
}

// repeatStmt evaluates the count once and runs the body while an i64
// counter is below it, so zero and negative counts skip the body.
func (b *LLVMIRBuilder) repeatStmt(s *Repeat) {
	count := b.expression(s.Count)

	counter := b.entry.NewAlloca(types.I64)
	b.block.NewStore(constant.NewInt(types.I64, 0), counter)

	check := b.main.NewBlock("")
	body := b.main.NewBlock("")
	after := b.main.NewBlock("")

	b.block.NewBr(check)

	b.block = check
	i := b.block.NewLoad(types.I64, counter)
	b.block.NewCondBr(b.block.NewICmp(enum.IPredSLT, i, count), body, after)

	b.block = body
	b.statements(s.Body)
	next := b.block.NewAdd(b.block.NewLoad(types.I64, counter), constant.NewInt(types.I64, 1))
	b.block.NewStore(next, counter)
	b.block.NewBr(check)

	b.block = after
}

func (b *LLVMIRBuilder) expression(expr Expr) value.Value {
	switch e := expr.(type) {
	case *LiteralExpr:
		return b.literal(e)
	case *Identifier:
		slot, ok := b.slots.Get(e.Name)
		if !ok {
			panic("undefined identifier: " + e.Name)
		}

		return b.block.NewLoad(llvmType(b.typeOf(e)), slot)
	case *BinaryExpr:
		return b.binaryExpression(e)
	case *UnaryExpr:
		return b.unaryExpression(e)
	case *Comparison:
		return b.comparison(e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (b *LLVMIRBuilder) literal(e *LiteralExpr) value.Value {
	switch v := e.Value.(type) {
	case IntValue:
		return constant.NewInt(types.I64, int64(v))
	case StringValue:
		return b.stringConstant(string(v))
	default:
		panic("unexpected literal kind " + e.Value.Kind().String())
	}
}

func (b *LLVMIRBuilder) binaryExpression(e *BinaryExpr) value.Value {
	v1 := b.expression(e.Op1)
	v2 := b.expression(e.Op2)

	switch e.Operation {
	case BinaryAddition:
		return b.block.NewAdd(v1, v2)
	case BinarySubtraction:
		return b.block.NewSub(v1, v2)
	case BinaryMultiplication:
		return b.block.NewMul(v1, v2)
	case BinaryDivision:
		return b.floorDiv(v1, v2)
	default:
		panic("unexpected binary op: " + e.Operation)
	}
}

// floorDiv rounds the quotient toward negative infinity: sdiv truncates, so
// the quotient is decremented when the remainder and divisor differ in sign.
func (b *LLVMIRBuilder) floorDiv(x, y value.Value) value.Value {
	zero := constant.NewInt(types.I64, 0)

	q := b.block.NewSDiv(x, y)
	r := b.block.NewSRem(x, y)

	inexact := b.block.NewICmp(enum.IPredNE, r, zero)
	signs := b.block.NewICmp(enum.IPredSLT, b.block.NewXor(r, y), zero)
	adjust := b.block.NewAnd(inexact, signs)

	return b.block.NewSelect(adjust, b.block.NewSub(q, constant.NewInt(types.I64, 1)), q)
}

func (b *LLVMIRBuilder) unaryExpression(e *UnaryExpr) value.Value {
	v := b.expression(e.Operand)

	switch e.Operation {
	case UnaryNegative:
		return b.block.NewSub(constant.NewInt(types.I64, 0), v)
	case UnaryNot:
		return b.block.NewXor(b.truthy(e.Operand, v), constant.True)
	default:
		panic("unexpected unary op: " + e.Operation)
	}
}

func (b *LLVMIRBuilder) comparison(e *Comparison) value.Value {
	v1 := b.expression(e.Left)
	v2 := b.expression(e.Right)

	pred := intPredicates[e.Operator]
	if b.typeOf(e.Left) == TypeString {
		cmp := b.block.NewCall(b.strcmp, v1, v2)
		return b.block.NewICmp(pred, cmp, constant.NewInt(types.I32, 0))
	}

	return b.block.NewICmp(pred, v1, v2)
}

// truthy converts v, the value of expr, to an i1.
func (b *LLVMIRBuilder) truthy(expr Expr, v value.Value) value.Value {
	switch b.typeOf(expr) {
	case TypeInt:
		return b.block.NewICmp(enum.IPredNE, v, constant.NewInt(types.I64, 0))
	case TypeString:
		first := b.block.NewLoad(types.I8, v)
		return b.block.NewICmp(enum.IPredNE, first, constant.NewInt(types.I8, 0))
	default:
		return v
	}
}

func (b *LLVMIRBuilder) typeOf(expr Expr) Type {
	return b.analysis.Types[expr]
}

// stringConstant returns a pointer to a NUL terminated global holding s.
// Equal strings share one global.
func (b *LLVMIRBuilder) stringConstant(s string) constant.Constant {
	if c, ok := b.strings[s]; ok {
		return c
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	def := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.strings)), data)
	def.Immutable = true

	zero := constant.NewInt(types.I64, 0)
	ptr := constant.NewGetElementPtr(data.Typ, def, zero, zero)

	b.strings[s] = ptr
	return ptr
}

func llvmType(t Type) types.Type {
	switch t {
	case TypeInt:
		return types.I64
	case TypeString:
		return types.I8Ptr
	case TypeBool:
		return types.I1
	}

	panic("no LLVM type for " + t.String())
}

func zeroValue(t Type, b *LLVMIRBuilder) value.Value {
	switch t {
	case TypeInt:
		return constant.NewInt(types.I64, 0)
	case TypeString:
		return b.stringConstant("")
	default:
		return constant.False
	}
}
