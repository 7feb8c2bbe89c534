package deepu

import (
	"fmt"
	"strings"
)

// Type is the static type the compiler assigns to a variable or expression.
type Type interface {
	String() string
	Equals(t2 Type) bool
}

type TypeErr struct {
	Reason string
}

const (
	TypeErrUndefined    = "undefined"
	TypeErrIncompatible = "incompatible"
	TypeErrBadOp        = "bad op"
	TypeErrUnsupported  = "unsupported"
)

func (t *TypeErr) String() string {
	return "~error:" + t.Reason
}

func (t *TypeErr) Equals(_ Type) bool {
	return false
}

type BasicType struct {
	Typ string
}

var (
	TypeInt    = &BasicType{"int"}
	TypeString = &BasicType{"string"}
	TypeBool   = &BasicType{"bool"}
)

func (t *BasicType) String() string {
	return t.Typ
}

func (t *BasicType) Equals(t2 Type) bool {
	if typ, ok := t2.(*BasicType); ok {
		return t.Typ == typ.Typ
	}

	return false
}

type CompileError interface {
	error
	Location() *Location
}

type UndefinedError struct {
	Loc  *Location
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s: undefined: %s", e.Loc, e.Name)
}

func (e *UndefinedError) Location() *Location { return e.Loc }

type IncompatibleTypesError struct {
	Loc   *Location
	Type1 Type
	Type2 Type
}

func (e *IncompatibleTypesError) Error() string {
	return fmt.Sprintf("%s: incompatible types: '%s' and '%s'", e.Loc, e.Type1, e.Type2)
}

func (e *IncompatibleTypesError) Location() *Location { return e.Loc }

type UndefinedOperationError struct {
	Loc  *Location
	Type Type
	Op   string
}

func (e *UndefinedOperationError) Error() string {
	return fmt.Sprintf("%s: undefined operation: '%s' has no operation '%s'", e.Loc, e.Type, e.Op)
}

func (e *UndefinedOperationError) Location() *Location { return e.Loc }

type UndefinedUnaryError struct {
	Loc  *Location
	Type Type
	Op   UnaryOp
}

func (e *UndefinedUnaryError) Error() string {
	return fmt.Sprintf("%s: undefined unary operation: '%s' has no operation '%s'", e.Loc, e.Type, e.Op)
}

func (e *UndefinedUnaryError) Location() *Location { return e.Loc }

// ConditionalDeclarationError is reported when a variable is used where its
// only 'let' may not have run, such as after an if without otherwise.
type ConditionalDeclarationError struct {
	Loc  *Location
	Name string
}

func (e *ConditionalDeclarationError) Error() string {
	return fmt.Sprintf("%s: %s may be used before it is declared", e.Loc, e.Name)
}

func (e *ConditionalDeclarationError) Location() *Location { return e.Loc }

// RedeclarationError is reported when 'let' rebinds a variable with a value
// of another type. Compiled variables keep one type for the whole program.
type RedeclarationError struct {
	Loc  *Location
	Name string
	Old  Type
	New  Type
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("%s: cannot redeclare %s of type '%s' as '%s'", e.Loc, e.Name, e.Old, e.New)
}

func (e *RedeclarationError) Location() *Location { return e.Loc }

// CompileErrors collects every error found before code generation.
type CompileErrors struct {
	Errors []CompileError
}

func (e *CompileErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}

	return strings.Join(msgs, "\n")
}

type SymbolTable struct {
	Entries map[string]Type
	Errors  []CompileError
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Entries: make(map[string]Type),
	}
}

func (t *SymbolTable) Add(name string, typ Type) {
	t.Entries[name] = typ
}

func (t *SymbolTable) Get(name string) Type {
	typ, contains := t.Entries[name]
	if !contains {
		return nil
	}

	return typ
}

func (t *SymbolTable) AddError(err CompileError) {
	t.Errors = append(t.Errors, err)
}

// Analysis is a program annotated with the static type of every expression.
type Analysis struct {
	Program *Program
	Symbols *SymbolTable
	Types   map[Expr]Type

	// names whose 'let' has certainly run at the current point
	declared map[string]bool
}

func (a *Analysis) Errors() []CompileError {
	return a.Symbols.Errors
}

// ContextAnalyzer assigns static types to a program in textual order, so a
// variable is known from its first 'let' onwards.
type ContextAnalyzer struct{}

func NewContextAnalyzer() *ContextAnalyzer {
	return &ContextAnalyzer{}
}

func (c *ContextAnalyzer) Do(program *Program) *Analysis {
	a := &Analysis{
		Program:  program,
		Symbols:  NewSymbolTable(),
		Types:    make(map[Expr]Type),
		declared: make(map[string]bool),
	}

	c.block(a, program.Statements)
	return a
}

func (c *ContextAnalyzer) block(a *Analysis, stmts []Stmt) {
	for _, stmt := range stmts {
		c.analyze(a, stmt)
	}
}

// branch analyzes a block that may not run and returns the names certainly
// declared at its end. Declarations inside it are not visible as certain
// afterwards.
func (c *ContextAnalyzer) branch(a *Analysis, stmts []Stmt) map[string]bool {
	outer := a.declared

	inner := make(map[string]bool, len(outer))
	for name := range outer {
		inner[name] = true
	}

	a.declared = inner
	c.block(a, stmts)
	a.declared = outer

	return inner
}

func (c *ContextAnalyzer) analyze(a *Analysis, stmt Stmt) {
	stab := a.Symbols

	switch s := stmt.(type) {
	case *VariableDecl:
		t := c.resolve(a, s.Value)
		if isErrorType(t) {
			return
		}

		if old := stab.Get(s.Name); old != nil && !old.Equals(t) {
			stab.AddError(&RedeclarationError{Loc: s.Loc, Name: s.Name, Old: old, New: t})
			return
		}

		stab.Add(s.Name, t)
		a.declared[s.Name] = true
	case *Assign:
		t := c.resolve(a, s.Value)
		old := stab.Get(s.Name)
		if old == nil {
			stab.AddError(&UndefinedError{Loc: s.Loc, Name: s.Name})
			return
		}

		if !a.declared[s.Name] {
			stab.AddError(&ConditionalDeclarationError{Loc: s.Loc, Name: s.Name})
			return
		}

		if !isErrorType(t) && !old.Equals(t) {
			stab.AddError(&IncompatibleTypesError{Loc: s.Loc, Type1: old, Type2: t})
		}
	case *Print:
		c.resolve(a, s.Value)
	case *If:
		c.resolve(a, s.Condition)
		then := c.branch(a, s.Then)
		if s.Otherwise == nil {
			return
		}

		for name := range c.branch(a, s.Otherwise) {
			if then[name] {
				a.declared[name] = true
			}
		}
	case *While:
		c.resolve(a, s.Condition)
		c.branch(a, s.Body)
	case *Repeat:
		if t := c.resolve(a, s.Count); !isErrorType(t) && !t.Equals(TypeInt) {
			stab.AddError(&UndefinedOperationError{Loc: s.Loc, Type: t, Op: "repeat"})
		}

		c.branch(a, s.Body)
	}
}

func (c *ContextAnalyzer) resolve(a *Analysis, expr Expr) Type {
	t := c.resolveType(a, expr)
	a.Types[expr] = t

	return t
}

func (c *ContextAnalyzer) resolveType(a *Analysis, expr Expr) Type {
	stab := a.Symbols

	switch e := expr.(type) {
	case *LiteralExpr:
		switch e.Value.Kind() {
		case KindInt:
			return TypeInt
		case KindString:
			return TypeString
		}

		stab.AddError(&UndefinedOperationError{Loc: e.Loc, Type: &BasicType{e.Value.Kind().String()}, Op: "literal"})
		return &TypeErr{TypeErrUnsupported}
	case *Identifier:
		t := stab.Get(e.Name)
		if t == nil {
			stab.AddError(&UndefinedError{Loc: e.Loc, Name: e.Name})
			return &TypeErr{TypeErrUndefined}
		}

		if !a.declared[e.Name] {
			stab.AddError(&ConditionalDeclarationError{Loc: e.Loc, Name: e.Name})
			return &TypeErr{TypeErrUndefined}
		}

		return t
	case *BinaryExpr:
		t1 := c.resolve(a, e.Op1)
		t2 := c.resolve(a, e.Op2)

		if isErrorType(t1) {
			// Error already logged by the type resolution
			return t1
		}

		if isErrorType(t2) {
			return t2
		}

		if !t1.Equals(t2) {
			stab.AddError(&IncompatibleTypesError{Loc: e.Loc, Type1: t1, Type2: t2})
			return &TypeErr{TypeErrIncompatible}
		}

		if !t1.Equals(TypeInt) {
			stab.AddError(&UndefinedOperationError{Loc: e.Loc, Type: t1, Op: string(e.Operation)})
			return &TypeErr{TypeErrBadOp}
		}

		return TypeInt
	case *UnaryExpr:
		t := c.resolve(a, e.Operand)
		if isErrorType(t) {
			return t
		}

		if e.Operation == UnaryNot {
			return TypeBool
		}

		if !t.Equals(TypeInt) {
			stab.AddError(&UndefinedUnaryError{Loc: e.Loc, Type: t, Op: e.Operation})
			return &TypeErr{TypeErrBadOp}
		}

		return TypeInt
	case *Comparison:
		t1 := c.resolve(a, e.Left)
		t2 := c.resolve(a, e.Right)

		if isErrorType(t1) {
			return t1
		}

		if isErrorType(t2) {
			return t2
		}

		if !t1.Equals(t2) {
			stab.AddError(&IncompatibleTypesError{Loc: e.Loc, Type1: t1, Type2: t2})
			return &TypeErr{TypeErrIncompatible}
		}

		ordering := e.Operator != CompareEqual && e.Operator != CompareNotEqual
		if ordering && t1.Equals(TypeBool) {
			stab.AddError(&UndefinedOperationError{Loc: e.Loc, Type: t1, Op: string(e.Operator)})
			return &TypeErr{TypeErrBadOp}
		}

		return TypeBool
	}

	return &TypeErr{TypeErrUnsupported}
}

func isErrorType(t Type) bool {
	_, isErr := t.(*TypeErr)
	return isErr
}
