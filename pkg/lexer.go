package deepu

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type stateFunc func(l *Lexer) stateFunc

const EOF rune = 0

var escapeTable = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'"':  '"',
	'\\': '\\',
}

// Lexer turns source text into tokens. It scans runes with a single forward
// cursor and can be Run again from scratch.
type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
	start Location

	// offset of start in input
	startPos int

	tokens []Token
	err    error
}

func NewLexer(source string) *Lexer {
	return &Lexer{
		input: []rune(source),
		line:  1,
		col:   1,
	}
}

func NewLexerFromReader(reader io.Reader) (*Lexer, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}

	return NewLexer(string(data)), nil
}

// Tokenize returns every token of source, ending with exactly one TokenEOF.
func Tokenize(source string) ([]Token, error) {
	return NewLexer(source).Run()
}

func (l *Lexer) Run() ([]Token, error) {
	l.pos, l.line, l.col = 0, 1, 1
	l.tokens, l.err = nil, nil

	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.mark()

		if l.atEnd() {
			l.emit(TokenEOF, "", nil)
			return nil
		}

		switch r := l.peek(); {
		case r == ' ' || r == '\t' || r == '\r':
			l.next()
			continue
		case r == '#':
			return commentState
		case r == '\n':
			l.next()
			return l.emit(TokenNewline, "\n", nil)
		case r == 'i' || r == 'I':
			return comparatorState
		case r == '"':
			return stringState
		case isDigit(r):
			return numberState
		case isIdentifierStart(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func commentState(l *Lexer) stateFunc {
	for !l.atEnd() && l.peek() != '\n' {
		l.next()
	}

	return defaultState
}

// comparatorState tries the multi-word comparators and falls back to a
// plain identifier or keyword.
func comparatorState(l *Lexer) stateFunc {
	for _, c := range comparatorPhrases {
		if !l.hasPrefixFold(c.phrase) {
			continue
		}

		end := l.pos + len(c.phrase)
		if end < len(l.input) && unicode.IsLetter(l.input[end]) {
			continue
		}

		lexeme := string(l.input[l.pos:end])
		for l.pos < end {
			l.next()
		}

		return l.emit(c.typ, lexeme, nil)
	}

	return identifierState
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for {
		if l.atEnd() {
			return l.errorf(ErrUnterminatedString, "")
		}

		r := l.next()
		if r == '"' {
			break
		}

		if r == '\\' {
			if l.atEnd() {
				return l.errorf(ErrUnterminatedString, "")
			}

			r = l.next()
			if esc, ok := escapeTable[r]; ok {
				r = esc
			}
		}

		str.WriteRune(r)
	}

	lexeme := string(l.input[l.startPos:l.pos])
	return l.emit(TokenString, lexeme, StringValue(str.String()))
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for !l.atEnd() && isDigit(l.peek()) {
		num.WriteRune(l.next())
	}

	n, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return l.errorf(ErrNumberRange, num.String())
	}

	return l.emit(TokenNumber, num.String(), IntValue(n))
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for !l.atEnd() && isIdentifierPart(l.peek()) {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[strings.ToLower(id.String())]; ok {
		return l.emit(t, id.String(), nil)
	}

	return l.emit(TokenIdentifier, id.String(), nil)
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if tok, ok := operatorTable[r]; ok {
		return l.emit(tok, string(r), nil)
	}

	return l.errorf(ErrUnexpectedCharacter, fmt.Sprintf("%q", r))
}

func (l *Lexer) errorf(kind error, detail string) stateFunc {
	loc := l.start
	l.err = &LexError{
		Loc:    &loc,
		Err:    kind,
		Detail: detail,
	}

	return nil
}

func (l *Lexer) emit(t TokenType, lexeme string, literal Value) stateFunc {
	loc := l.start
	l.tokens = append(l.tokens, Token{
		Typ:     t,
		Lexeme:  lexeme,
		Literal: literal,
		Loc:     &loc,
	})

	return defaultState
}

// mark records the current position as the start of the next lexeme.
func (l *Lexer) mark() {
	l.start = Location{Line: l.line, Column: l.col}
	l.startPos = l.pos
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return EOF
	}

	return l.input[l.pos]
}

func (l *Lexer) next() rune {
	if l.atEnd() {
		return EOF
	}

	r := l.input[l.pos]
	l.pos++

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

// hasPrefixFold reports whether the input at the cursor starts with the
// lowercase ASCII phrase, ignoring case.
func (l *Lexer) hasPrefixFold(phrase string) bool {
	if l.pos+len(phrase) > len(l.input) {
		return false
	}

	for i := 0; i < len(phrase); i++ {
		if unicode.ToLower(l.input[l.pos+i]) != rune(phrase[i]) {
			return false
		}
	}

	return true
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}
