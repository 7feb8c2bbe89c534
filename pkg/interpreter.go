package deepu

import (
	"fmt"
	"io"
)

// Interpreter walks a Program against one Environment. Each say statement
// writes one line to out.
type Interpreter struct {
	env *Environment
	out io.Writer
}

func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{
		env: NewEnvironment(),
		out: out,
	}
}

// Interpret runs program with a fresh interpreter writing to out.
func Interpret(program *Program, out io.Writer) error {
	return NewInterpreter(out).Interpret(program)
}

func (i *Interpreter) Env() *Environment {
	return i.env
}

func (i *Interpreter) Interpret(program *Program) error {
	return i.executeBlock(i.env, program.Statements)
}

func (i *Interpreter) executeBlock(env *Environment, stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(env, stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) execute(env *Environment, stmt Stmt) error {
	switch s := stmt.(type) {
	case *VariableDecl:
		v, err := i.evaluate(env, s.Value)
		if err != nil {
			return err
		}

		env.Define(s.Name, v)
		return nil
	case *Assign:
		v, err := i.evaluate(env, s.Value)
		if err != nil {
			return err
		}

		if err := env.Assign(s.Name, v); err != nil {
			return runtimeErrorf(s.Loc, ErrUndefinedVariable, "'%s'", s.Name)
		}

		return nil
	case *Print:
		v, err := i.evaluate(env, s.Value)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(i.out, v.String()); err != nil {
			return fmt.Errorf("say: %w", err)
		}

		return nil
	case *If:
		cond, err := i.evaluate(env, s.Condition)
		if err != nil {
			return err
		}

		if Truthy(cond) {
			return i.executeBlock(env, s.Then)
		}

		if s.Otherwise != nil {
			return i.executeBlock(env, s.Otherwise)
		}

		return nil
	case *While:
		for {
			cond, err := i.evaluate(env, s.Condition)
			if err != nil {
				return err
			}

			if !Truthy(cond) {
				return nil
			}

			if err := i.executeBlock(env, s.Body); err != nil {
				return err
			}
		}
	case *Repeat:
		return i.repeat(env, s)
	}

	return runtimeErrorf(stmt.Location(), ErrUnknownNode, "statement %T", stmt)
}

func (i *Interpreter) repeat(env *Environment, s *Repeat) error {
	count, err := i.evaluate(env, s.Count)
	if err != nil {
		return err
	}

	n, ok := count.(IntValue)
	if !ok {
		return runtimeErrorf(s.Loc, ErrType, "repeat count must be an integer, got '%s'", count.Kind())
	}

	for k := IntValue(0); k < n; k++ {
		if err := i.executeBlock(env, s.Body); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) evaluate(env *Environment, expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *Identifier:
		v, err := env.Get(e.Name)
		if err != nil {
			return nil, runtimeErrorf(e.Loc, ErrUndefinedVariable, "'%s'", e.Name)
		}

		return v, nil
	case *BinaryExpr:
		return i.binaryExpression(env, e)
	case *UnaryExpr:
		return i.unaryExpression(env, e)
	case *Comparison:
		return i.comparison(env, e)
	}

	return nil, runtimeErrorf(expr.Location(), ErrUnknownNode, "expression %T", expr)
}

func (i *Interpreter) binaryExpression(env *Environment, e *BinaryExpr) (Value, error) {
	a, err := i.evaluate(env, e.Op1)
	if err != nil {
		return nil, err
	}

	b, err := i.evaluate(env, e.Op2)
	if err != nil {
		return nil, err
	}

	var (
		v     Value
		opErr *operationError
	)

	switch e.Operation {
	case BinaryAddition:
		v, opErr = add(a, b)
	case BinarySubtraction:
		v, opErr = sub(a, b)
	case BinaryMultiplication:
		v, opErr = mul(a, b)
	case BinaryDivision:
		v, opErr = div(a, b)
	default:
		return nil, runtimeErrorf(e.Loc, ErrUnknownOperator, "binary '%s'", e.Operation)
	}

	if opErr != nil {
		return nil, opErr.at(e.Loc)
	}

	return v, nil
}

func (i *Interpreter) unaryExpression(env *Environment, e *UnaryExpr) (Value, error) {
	v, err := i.evaluate(env, e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Operation {
	case UnaryNegative:
		neg, opErr := negate(v)
		if opErr != nil {
			return nil, opErr.at(e.Loc)
		}

		return neg, nil
	case UnaryNot:
		return BoolValue(!Truthy(v)), nil
	}

	return nil, runtimeErrorf(e.Loc, ErrUnknownOperator, "unary '%s'", e.Operation)
}

func (i *Interpreter) comparison(env *Environment, e *Comparison) (Value, error) {
	a, err := i.evaluate(env, e.Left)
	if err != nil {
		return nil, err
	}

	b, err := i.evaluate(env, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case CompareEqual:
		return BoolValue(Equal(a, b)), nil
	case CompareNotEqual:
		return BoolValue(!Equal(a, b)), nil
	}

	c, opErr := compare(e.Operator, a, b)
	if opErr != nil {
		return nil, opErr.at(e.Loc)
	}

	switch e.Operator {
	case CompareGreater:
		return BoolValue(c > 0), nil
	case CompareLess:
		return BoolValue(c < 0), nil
	case CompareNotGreater:
		return BoolValue(!(c > 0)), nil
	case CompareNotLess:
		return BoolValue(!(c < 0)), nil
	}

	return nil, runtimeErrorf(e.Loc, ErrUnknownOperator, "comparator '%s'", e.Operator)
}
