package deepu

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNone ValueKind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

var kindNames = map[ValueKind]string{
	KindNone:   "none",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindBool:   "bool",
}

func (k ValueKind) String() string {
	return kindNames[k]
}

// Value is a runtime value. The set of implementations is closed.
type Value interface {
	Kind() ValueKind
	String() string
	value()
}

type IntValue int64

type FloatValue float64

type StringValue string

type BoolValue bool

type NoneValue struct{}

var None = NoneValue{}

func (IntValue) Kind() ValueKind    { return KindInt }
func (FloatValue) Kind() ValueKind  { return KindFloat }
func (StringValue) Kind() ValueKind { return KindString }
func (BoolValue) Kind() ValueKind   { return KindBool }
func (NoneValue) Kind() ValueKind   { return KindNone }

func (IntValue) value()    {}
func (FloatValue) value()  {}
func (StringValue) value() {}
func (BoolValue) value()   {}
func (NoneValue) value()   {}

func (v IntValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v FloatValue) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

func (v StringValue) String() string {
	return string(v)
}

func (v BoolValue) String() string {
	if v {
		return "True"
	}

	return "False"
}

func (NoneValue) String() string {
	return "None"
}

// Truthy converts any value to a boolean for branching: none, false, zero and
// the empty string are false, everything else is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NoneValue:
		return false
	case BoolValue:
		return bool(val)
	case IntValue:
		return val != 0
	case FloatValue:
		return val != 0
	case StringValue:
		return val != ""
	}

	return true
}

// operationError is the kind and message of a failed operation, without a
// location. The evaluator attaches the location of the node.
type operationError struct {
	kind error
	msg  string
}

func opErrorf(kind error, format string, args ...interface{}) *operationError {
	return &operationError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *operationError) at(loc *Location) *RuntimeError {
	return &RuntimeError{Loc: loc, Err: e.kind, Msg: e.msg}
}

func isNumeric(v Value) bool {
	k := v.Kind()
	return k == KindInt || k == KindFloat
}

func toFloat(v Value) float64 {
	switch n := v.(type) {
	case IntValue:
		return float64(n)
	case FloatValue:
		return float64(n)
	}

	return math.NaN()
}

func binaryOperands(op BinaryOp, a, b Value) (IntValue, IntValue, bool, *operationError) {
	if !isNumeric(a) || !isNumeric(b) {
		return 0, 0, false, opErrorf(ErrType, "unsupported operand types for %s: '%s' and '%s'", op, a.Kind(), b.Kind())
	}

	x, xInt := a.(IntValue)
	y, yInt := b.(IntValue)

	return x, y, xInt && yInt, nil
}

func add(a, b Value) (Value, *operationError) {
	if s1, ok := a.(StringValue); ok {
		if s2, ok := b.(StringValue); ok {
			return s1 + s2, nil
		}
	}

	x, y, ints, err := binaryOperands(BinaryAddition, a, b)
	if err != nil {
		return nil, err
	}

	if !ints {
		return FloatValue(toFloat(a) + toFloat(b)), nil
	}

	sum := x + y
	if (sum > x) != (y > 0) {
		return nil, opErrorf(ErrOverflow, "%d + %d", x, y)
	}

	return sum, nil
}

func sub(a, b Value) (Value, *operationError) {
	x, y, ints, err := binaryOperands(BinarySubtraction, a, b)
	if err != nil {
		return nil, err
	}

	if !ints {
		return FloatValue(toFloat(a) - toFloat(b)), nil
	}

	diff := x - y
	if (diff < x) != (y > 0) {
		return nil, opErrorf(ErrOverflow, "%d - %d", x, y)
	}

	return diff, nil
}

func mul(a, b Value) (Value, *operationError) {
	x, y, ints, err := binaryOperands(BinaryMultiplication, a, b)
	if err != nil {
		return nil, err
	}

	if !ints {
		return FloatValue(toFloat(a) * toFloat(b)), nil
	}

	if x == 0 || y == 0 {
		return IntValue(0), nil
	}

	prod := x * y
	if prod/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return nil, opErrorf(ErrOverflow, "%d * %d", x, y)
	}

	return prod, nil
}

// div floors when both operands are integers and divides exactly otherwise.
func div(a, b Value) (Value, *operationError) {
	x, y, ints, err := binaryOperands(BinaryDivision, a, b)
	if err != nil {
		return nil, err
	}

	if !ints {
		d := toFloat(b)
		if d == 0 {
			return nil, opErrorf(ErrDivisionByZero, "float division by zero")
		}

		return FloatValue(toFloat(a) / d), nil
	}

	if y == 0 {
		return nil, opErrorf(ErrDivisionByZero, "integer division by zero")
	}

	if x == math.MinInt64 && y == -1 {
		return nil, opErrorf(ErrOverflow, "%d / %d", x, y)
	}

	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}

	return q, nil
}

func negate(v Value) (Value, *operationError) {
	switch n := v.(type) {
	case IntValue:
		if n == math.MinInt64 {
			return nil, opErrorf(ErrOverflow, "-(%d)", n)
		}

		return -n, nil
	case FloatValue:
		return -n, nil
	}

	return nil, opErrorf(ErrType, "bad operand type for unary -: '%s'", v.Kind())
}

// Equal reports whether two values are equal. Values of different kinds are
// never equal, except integers and floats which compare numerically.
func Equal(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		x, xInt := a.(IntValue)
		y, yInt := b.(IntValue)
		if xInt && yInt {
			return x == y
		}

		return toFloat(a) == toFloat(b)
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case StringValue:
		return x == b.(StringValue)
	case BoolValue:
		return x == b.(BoolValue)
	case NoneValue:
		return true
	}

	return false
}

// compare orders two numbers or two strings. It returns -1, 0 or 1.
func compare(op ComparisonOp, a, b Value) (int, *operationError) {
	if isNumeric(a) && isNumeric(b) {
		x, xInt := a.(IntValue)
		y, yInt := b.(IntValue)
		if xInt && yInt {
			return cmpOrdered(x, y), nil
		}

		return cmpOrdered(toFloat(a), toFloat(b)), nil
	}

	if s1, ok := a.(StringValue); ok {
		if s2, ok := b.(StringValue); ok {
			return strings.Compare(string(s1), string(s2)), nil
		}
	}

	return 0, opErrorf(ErrType, "'%s' not supported between '%s' and '%s'", op, a.Kind(), b.Kind())
}

func cmpOrdered[T IntValue | float64](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}

	return 0
}
