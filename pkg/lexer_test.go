package deepu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.deepu.dev/internal/test"
)

func at(line, col int) *Location {
	return &Location{Line: line, Column: col}
}

func tok(typ TokenType, lexeme string, literal Value, line, col int) Token {
	return Token{Typ: typ, Lexeme: lexeme, Literal: literal, Loc: at(line, col)}
}

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		expect []Token
	}{
		{
			"let x be 5",
			[]Token{
				tok(TokenLet, "let", nil, 1, 1),
				tok(TokenIdentifier, "x", nil, 1, 5),
				tok(TokenBe, "be", nil, 1, 7),
				tok(TokenNumber, "5", IntValue(5), 1, 10),
				tok(TokenEOF, "", nil, 1, 11),
			},
		},
		{
			"say x # comment\nsay 1",
			[]Token{
				tok(TokenSay, "say", nil, 1, 1),
				tok(TokenIdentifier, "x", nil, 1, 5),
				tok(TokenNewline, "\n", nil, 1, 16),
				tok(TokenSay, "say", nil, 2, 1),
				tok(TokenNumber, "1", IntValue(1), 2, 5),
				tok(TokenEOF, "", nil, 2, 6),
			},
		},
		{
			"if x IS Greater Than 5 then",
			[]Token{
				tok(TokenIf, "if", nil, 1, 1),
				tok(TokenIdentifier, "x", nil, 1, 4),
				tok(TokenIsGreater, "IS Greater Than", nil, 1, 6),
				tok(TokenNumber, "5", IntValue(5), 1, 22),
				tok(TokenThen, "then", nil, 1, 24),
				tok(TokenEOF, "", nil, 1, 28),
			},
		},
		{
			"is greater thanx",
			[]Token{
				tok(TokenIdentifier, "is", nil, 1, 1),
				tok(TokenIdentifier, "greater", nil, 1, 4),
				tok(TokenIdentifier, "thanx", nil, 1, 12),
				tok(TokenEOF, "", nil, 1, 17),
			},
		},
		{
			"is less than5",
			[]Token{
				tok(TokenIsLess, "is less than", nil, 1, 1),
				tok(TokenNumber, "5", IntValue(5), 1, 13),
				tok(TokenEOF, "", nil, 1, 14),
			},
		},
		{
			"LET Counter Be counter",
			[]Token{
				tok(TokenLet, "LET", nil, 1, 1),
				tok(TokenIdentifier, "Counter", nil, 1, 5),
				tok(TokenBe, "Be", nil, 1, 13),
				tok(TokenIdentifier, "counter", nil, 1, 16),
				tok(TokenEOF, "", nil, 1, 23),
			},
		},
		{
			"say (a_1+2)*3/-4",
			[]Token{
				tok(TokenSay, "say", nil, 1, 1),
				tok(TokenOpenParentheses, "(", nil, 1, 5),
				tok(TokenIdentifier, "a_1", nil, 1, 6),
				tok(TokenPlus, "+", nil, 1, 9),
				tok(TokenNumber, "2", IntValue(2), 1, 10),
				tok(TokenCloseParentheses, ")", nil, 1, 11),
				tok(TokenStar, "*", nil, 1, 12),
				tok(TokenNumber, "3", IntValue(3), 1, 13),
				tok(TokenSlash, "/", nil, 1, 14),
				tok(TokenMinus, "-", nil, 1, 15),
				tok(TokenNumber, "4", IntValue(4), 1, 16),
				tok(TokenEOF, "", nil, 1, 17),
			},
		},
		{
			`say "a\tb\"c\\d\qe"`,
			[]Token{
				tok(TokenSay, "say", nil, 1, 1),
				tok(TokenString, `"a\tb\"c\\d\qe"`, StringValue("a\tb\"c\\dqe"), 1, 5),
				tok(TokenEOF, "", nil, 1, 20),
			},
		},
		{
			"\"two\nlines\" x",
			[]Token{
				tok(TokenString, "\"two\nlines\"", StringValue("two\nlines"), 1, 1),
				tok(TokenIdentifier, "x", nil, 2, 8),
				tok(TokenEOF, "", nil, 2, 9),
			},
		},
		{
			"while n is not less than 1 do",
			[]Token{
				tok(TokenWhile, "while", nil, 1, 1),
				tok(TokenIdentifier, "n", nil, 1, 7),
				tok(TokenIsNotLess, "is not less than", nil, 1, 9),
				tok(TokenNumber, "1", IntValue(1), 1, 26),
				tok(TokenDo, "do", nil, 1, 28),
				tok(TokenEOF, "", nil, 1, 30),
			},
		},
		{
			"x and y or not z",
			[]Token{
				tok(TokenIdentifier, "x", nil, 1, 1),
				tok(TokenAnd, "and", nil, 1, 3),
				tok(TokenIdentifier, "y", nil, 1, 7),
				tok(TokenOr, "or", nil, 1, 9),
				tok(TokenNot, "not", nil, 1, 12),
				tok(TokenIdentifier, "z", nil, 1, 16),
				tok(TokenEOF, "", nil, 1, 17),
			},
		},
	}

	for _, c := range cases {
		toks, err := Tokenize(c.data)
		require.NoError(t, err, c.data)
		assert.Equal(t, c.expect, toks, c.data)
	}
}

func TestLexerComparators(t *testing.T) {
	cases := map[string]TokenType{
		"is not greater than": TokenIsNotGreater,
		"is not less than":    TokenIsNotLess,
		"is not equal to":     TokenIsNotEqual,
		"is greater than":     TokenIsGreater,
		"is less than":        TokenIsLess,
		"is equal to":         TokenIsEqual,
	}

	for phrase, typ := range cases {
		for _, follow := range []string{"", " ", "(", "1", "\n"} {
			toks, err := Tokenize(phrase + follow)
			require.NoError(t, err)

			assert.Equal(t, typ, toks[0].Typ, "%q", phrase+follow)
			assert.Equal(t, phrase, toks[0].Lexeme)
			assert.NotEqual(t, TokenIdentifier, toks[1].Typ)
		}
	}
}

func TestLexerOnlyTrivia(t *testing.T) {
	for _, data := range []string{"", "   ", "\t\r ", "# just a comment", "  # comment with \"quotes\""} {
		toks, err := Tokenize(data)
		require.NoError(t, err)

		require.Len(t, toks, 1, "%q", data)
		assert.Equal(t, TokenEOF, toks[0].Typ)
	}
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		data string
		kind error
		loc  *Location
	}{
		{"\"unclosed string", ErrUnterminatedString, at(1, 1)},
		{"let x be 5\nsay \"oops", ErrUnterminatedString, at(2, 5)},
		{"say \"trailing escape\\", ErrUnterminatedString, at(1, 5)},
		{"@", ErrUnexpectedCharacter, at(1, 1)},
		{"let x be 5 % 2", ErrUnexpectedCharacter, at(1, 12)},
		{"say 99999999999999999999", ErrNumberRange, at(1, 5)},
	}

	for _, c := range cases {
		toks, err := Tokenize(c.data)
		assert.Nil(t, toks)
		require.ErrorIs(t, err, c.kind, c.data)

		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr)
		assert.Equal(t, c.loc, lexErr.Loc, c.data)
	}
}

func TestLexerRestart(t *testing.T) {
	l := NewLexer("let x be 1\nsay x")

	first, err := l.Run()
	require.NoError(t, err)

	second, err := l.Run()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLexerFromReader(t *testing.T) {
	l, err := NewLexerFromReader(strings.NewReader("say 1"))
	require.NoError(t, err)

	toks, err := l.Run()
	require.NoError(t, err)
	assert.Len(t, toks, 3)
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		l := NewLexer(test.GetRandomTokens(size))

		var err error
		b.StartTimer()

		benchResult, err = l.Run()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
