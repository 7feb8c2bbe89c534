package deepu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		v      Value
		expect string
	}{
		{IntValue(-12), "-12"},
		{FloatValue(3.5), "3.5"},
		{FloatValue(3), "3.0"},
		{FloatValue(1e21), "1e+21"},
		{FloatValue(math.Inf(-1)), "-inf"},
		{StringValue("hi there"), "hi there"},
		{BoolValue(true), "True"},
		{BoolValue(false), "False"},
		{None, "None"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.v.String())
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v      Value
		expect bool
	}{
		{None, false},
		{nil, false},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{IntValue(0), false},
		{IntValue(-1), true},
		{FloatValue(0), false},
		{FloatValue(0.5), true},
		{StringValue(""), false},
		{StringValue("0"), true},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, Truthy(c.v), "%#v", c.v)
	}
}

func TestDivision(t *testing.T) {
	cases := []struct {
		a, b   Value
		expect Value
	}{
		{IntValue(7), IntValue(2), IntValue(3)},
		{IntValue(-7), IntValue(2), IntValue(-4)},
		{IntValue(7), IntValue(-2), IntValue(-4)},
		{IntValue(-7), IntValue(-2), IntValue(3)},
		{IntValue(6), IntValue(3), IntValue(2)},
		{FloatValue(7), IntValue(2), FloatValue(3.5)},
		{IntValue(1), FloatValue(4), FloatValue(0.25)},
	}

	for _, c := range cases {
		got, err := div(c.a, c.b)
		require.Nil(t, err)
		assert.Equal(t, c.expect, got, "%s / %s", c.a, c.b)
	}

	_, err := div(IntValue(1), IntValue(0))
	require.NotNil(t, err)
	assert.Equal(t, ErrDivisionByZero, err.kind)

	_, err = div(FloatValue(1), IntValue(0))
	require.NotNil(t, err)
	assert.Equal(t, ErrDivisionByZero, err.kind)
}

func TestArithmetic(t *testing.T) {
	sum, err := add(IntValue(2), IntValue(3))
	require.Nil(t, err)
	assert.Equal(t, IntValue(5), sum)

	sum, err = add(IntValue(2), FloatValue(0.5))
	require.Nil(t, err)
	assert.Equal(t, FloatValue(2.5), sum)

	cat, err := add(StringValue("foo"), StringValue("bar"))
	require.Nil(t, err)
	assert.Equal(t, StringValue("foobar"), cat)

	diff, err := sub(IntValue(2), IntValue(5))
	require.Nil(t, err)
	assert.Equal(t, IntValue(-3), diff)

	prod, err := mul(IntValue(-4), IntValue(5))
	require.Nil(t, err)
	assert.Equal(t, IntValue(-20), prod)

	neg, err := negate(FloatValue(1.5))
	require.Nil(t, err)
	assert.Equal(t, FloatValue(-1.5), neg)
}

func TestArithmeticErrors(t *testing.T) {
	cases := []struct {
		name string
		op   func(a, b Value) (Value, *operationError)
		a, b Value
		kind error
	}{
		{"string plus int", add, StringValue("a"), IntValue(1), ErrType},
		{"string minus string", sub, StringValue("a"), StringValue("b"), ErrType},
		{"string times int", mul, StringValue("a"), IntValue(3), ErrType},
		{"bool plus int", add, BoolValue(true), IntValue(1), ErrType},
		{"none divided", div, None, IntValue(1), ErrType},
		{"add overflow", add, IntValue(math.MaxInt64), IntValue(1), ErrOverflow},
		{"sub overflow", sub, IntValue(math.MinInt64), IntValue(1), ErrOverflow},
		{"mul overflow", mul, IntValue(math.MaxInt64), IntValue(2), ErrOverflow},
		{"mul min by minus one", mul, IntValue(math.MinInt64), IntValue(-1), ErrOverflow},
		{"div min by minus one", div, IntValue(math.MinInt64), IntValue(-1), ErrOverflow},
	}

	for _, c := range cases {
		_, err := c.op(c.a, c.b)
		require.NotNil(t, err, c.name)
		assert.Equal(t, c.kind, err.kind, c.name)
	}

	_, err := negate(StringValue("a"))
	require.NotNil(t, err)
	assert.Equal(t, ErrType, err.kind)
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b   Value
		expect bool
	}{
		{IntValue(1), IntValue(1), true},
		{IntValue(1), FloatValue(1), true},
		{IntValue(1), StringValue("1"), false},
		{StringValue("a"), StringValue("a"), true},
		{BoolValue(true), IntValue(1), false},
		{BoolValue(false), BoolValue(false), true},
		{None, None, true},
		{None, IntValue(0), false},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, Equal(c.a, c.b), "%#v == %#v", c.a, c.b)
	}
}

func TestCompare(t *testing.T) {
	c, err := compare(CompareLess, IntValue(1), FloatValue(1.5))
	require.Nil(t, err)
	assert.Equal(t, -1, c)

	c, err = compare(CompareGreater, StringValue("b"), StringValue("a"))
	require.Nil(t, err)
	assert.Equal(t, 1, c)

	_, err = compare(CompareLess, StringValue("a"), IntValue(1))
	require.NotNil(t, err)
	assert.Equal(t, ErrType, err.kind)

	_, err = compare(CompareNotGreater, BoolValue(true), BoolValue(false))
	require.NotNil(t, err)
	assert.Equal(t, ErrType, err.kind)
}
