package deepu

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrNumberRange         = errors.New("number out of range")

	ErrUndefinedVariable = errors.New("undefined variable")
	ErrType              = errors.New("type error")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrOverflow          = errors.New("integer overflow")
	ErrUnknownOperator   = errors.New("unknown operator")
	ErrUnknownNode       = errors.New("unknown node")
)

// LexError is returned by the lexer. Err is one of ErrUnterminatedString,
// ErrUnexpectedCharacter or ErrNumberRange.
type LexError struct {
	Loc    *Location
	Err    error
	Detail string
}

func (e *LexError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Loc, e.Err)
	}

	return fmt.Sprintf("%s: %s %s", e.Loc, e.Err, e.Detail)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

// ParseError reports the first token that did not fit the grammar.
type ParseError struct {
	Loc   *Location
	Msg   string
	Found Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s, found %s %q", e.Loc, e.Msg, e.Found.Typ, e.Found.Lexeme)
}

type RuntimeError struct {
	Loc *Location
	Err error
	Msg string
}

func (e *RuntimeError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Loc, e.Err)
	}

	return fmt.Sprintf("%s: %s: %s", e.Loc, e.Err, e.Msg)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func runtimeErrorf(loc *Location, kind error, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Loc: loc,
		Err: kind,
		Msg: fmt.Sprintf(format, args...),
	}
}
