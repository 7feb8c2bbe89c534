package deepu

import "fmt"

type TokenType uint64

const (
	TokenEOF TokenType = iota
	TokenNewline
	TokenNumber
	TokenString
	TokenIdentifier

	// Keywords
	TokenLet
	TokenBe
	TokenSet
	TokenTo
	TokenIf
	TokenThen
	TokenOtherwise
	TokenEnd
	TokenWhile
	TokenDo
	TokenRepeat
	TokenTimes
	TokenSay
	TokenAnd
	TokenOr
	TokenNot

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenOpenParentheses
	TokenCloseParentheses

	// Comparators, always produced from a multi-word phrase
	TokenIsGreater
	TokenIsLess
	TokenIsEqual
	TokenIsNotEqual
	TokenIsNotGreater
	TokenIsNotLess
)

var tokenNames = [...]string{
	TokenEOF:              "EOF",
	TokenNewline:          "Newline",
	TokenNumber:           "Number",
	TokenString:           "String",
	TokenIdentifier:       "Identifier",
	TokenLet:              "Let",
	TokenBe:               "Be",
	TokenSet:              "Set",
	TokenTo:               "To",
	TokenIf:               "If",
	TokenThen:             "Then",
	TokenOtherwise:        "Otherwise",
	TokenEnd:              "End",
	TokenWhile:            "While",
	TokenDo:               "Do",
	TokenRepeat:           "Repeat",
	TokenTimes:            "Times",
	TokenSay:              "Say",
	TokenAnd:              "And",
	TokenOr:               "Or",
	TokenNot:              "Not",
	TokenPlus:             "Plus",
	TokenMinus:            "Minus",
	TokenStar:             "Star",
	TokenSlash:            "Slash",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
	TokenIsGreater:        "IsGreater",
	TokenIsLess:           "IsLess",
	TokenIsEqual:          "IsEqual",
	TokenIsNotEqual:       "IsNotEqual",
	TokenIsNotGreater:     "IsNotGreater",
	TokenIsNotLess:        "IsNotLess",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var keywordTable = map[string]TokenType{
	"let":       TokenLet,
	"be":        TokenBe,
	"set":       TokenSet,
	"to":        TokenTo,
	"if":        TokenIf,
	"then":      TokenThen,
	"otherwise": TokenOtherwise,
	"end":       TokenEnd,
	"while":     TokenWhile,
	"do":        TokenDo,
	"repeat":    TokenRepeat,
	"times":     TokenTimes,
	"say":       TokenSay,
	"and":       TokenAnd,
	"or":        TokenOr,
	"not":       TokenNot,
}

var operatorTable = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'(': TokenOpenParentheses,
	')': TokenCloseParentheses,
}

type comparatorPhrase struct {
	phrase string
	typ    TokenType
}

// comparatorPhrases is matched in order, so longer phrases sharing a prefix
// must come first.
var comparatorPhrases = []comparatorPhrase{
	{"is not greater than", TokenIsNotGreater},
	{"is not less than", TokenIsNotLess},
	{"is not equal to", TokenIsNotEqual},
	{"is greater than", TokenIsGreater},
	{"is less than", TokenIsLess},
	{"is equal to", TokenIsEqual},
}

func (t TokenType) isComparator() bool {
	return t >= TokenIsGreater && t <= TokenIsNotLess
}

type Location struct {
	Line   int
	Column int
}

func (l *Location) String() string {
	if l == nil {
		return "?:?"
	}

	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

type Token struct {
	Typ     TokenType
	Lexeme  string
	Literal Value
	Loc     *Location
}

func (t Token) String() string {
	lit := "-"
	if t.Literal != nil {
		lit = t.Literal.String()
	}

	return fmt.Sprintf("Token(%s, %q, %s, %s)", t.Typ, t.Lexeme, lit, t.Loc)
}
