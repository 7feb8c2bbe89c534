package deepu

import (
	"fmt"
	"strconv"
)

// Parser builds a Program from a token sequence by recursive descent. It
// stops at the first token that does not fit the grammar.
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
	}
}

func Parse(tokens []Token) (*Program, error) {
	return NewParser(tokens).Run()
}

func (p *Parser) Run() (*Program, error) {
	p.pos = 0

	program := &Program{}
	for !p.check(TokenEOF) {
		if p.check(TokenNewline) {
			p.next()
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		program.Statements = append(program.Statements, stmt)
	}

	return program, nil
}

func (p *Parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}

	// The token list ended without an EOF
	loc := &Location{Line: 1, Column: 1}
	if n := len(p.tokens); n > 0 {
		loc = p.tokens[n-1].Loc
	}

	return Token{Typ: TokenEOF, Loc: loc}
}

// next consumes the current token. EOF is never consumed.
func (p *Parser) next() Token {
	tok := p.peek()
	if tok.Typ != TokenEOF {
		p.pos++
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) match(types ...TokenType) (Token, bool) {
	tok := p.peek()
	for _, typ := range types {
		if tok.Typ == typ {
			return p.next(), true
		}
	}

	return tok, false
}

func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	if tok, ok := p.match(typ); ok {
		return tok, nil
	}

	return Token{}, p.errorf(p.peek(), "expected %s", what)
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) error {
	return &ParseError{
		Loc:   tok.Loc,
		Msg:   fmt.Sprintf(format, args...),
		Found: tok,
	}
}

func (p *Parser) statement() (Stmt, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenLet:
		return p.varDecl()
	case TokenSet:
		return p.assign()
	case TokenSay:
		return p.print()
	case TokenIf:
		return p.ifStmt()
	case TokenWhile:
		return p.whileStmt()
	case TokenRepeat:
		return p.repeatStmt()
	default:
		return nil, p.errorf(tok, "expected a statement")
	}
}

func (p *Parser) varDecl() (Stmt, error) {
	start := p.next().Loc // let keyword

	name, err := p.expect(TokenIdentifier, "identifier after 'let'")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenBe, "'be'"); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &VariableDecl{
		Loc:   start,
		Name:  name.Lexeme,
		Value: value,
	}, nil
}

func (p *Parser) assign() (Stmt, error) {
	start := p.next().Loc // set keyword

	name, err := p.expect(TokenIdentifier, "identifier after 'set'")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenTo, "'to'"); err != nil {
		return nil, err
	}

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &Assign{
		Loc:   start,
		Name:  name.Lexeme,
		Value: value,
	}, nil
}

func (p *Parser) print() (Stmt, error) {
	start := p.next().Loc // say keyword

	value, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &Print{
		Loc:   start,
		Value: value,
	}, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	start := p.next().Loc // if keyword

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenThen, "'then'"); err != nil {
		return nil, err
	}

	then, err := p.block()
	if err != nil {
		return nil, err
	}

	var otherwise Block
	if _, ok := p.match(TokenOtherwise); ok {
		if otherwise, err = p.block(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenEnd, "'end'"); err != nil {
		return nil, err
	}

	return &If{
		Loc:       start,
		Condition: cond,
		Then:      then,
		Otherwise: otherwise,
	}, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	start := p.next().Loc // while keyword

	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenDo, "'do'"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenEnd, "'end'"); err != nil {
		return nil, err
	}

	return &While{
		Loc:       start,
		Condition: cond,
		Body:      body,
	}, nil
}

func (p *Parser) repeatStmt() (Stmt, error) {
	start := p.next().Loc // repeat keyword

	count, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenTimes, "'times'"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenEnd, "'end'"); err != nil {
		return nil, err
	}

	return &Repeat{
		Loc:   start,
		Count: count,
		Body:  body,
	}, nil
}

// block parses statements up to, but not including, 'end', 'otherwise' or
// EOF. The result is never nil.
func (p *Parser) block() (Block, error) {
	p.match(TokenNewline)

	stmts := Block{}
	for !p.check(TokenEnd) && !p.check(TokenOtherwise) && !p.check(TokenEOF) {
		if p.check(TokenNewline) {
			p.next()
			continue
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
		p.match(TokenNewline)
	}

	return stmts, nil
}

// condition is exactly one comparison. 'and' and 'or' are not accepted.
func (p *Parser) condition() (Expr, error) {
	lhs, err := p.expr()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if !tok.Typ.isComparator() {
		return nil, p.errorf(tok, "expected comparator in condition")
	}
	p.next()

	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Loc:      tok.Loc,
		Operator: comparisonOps[tok.Typ],
		Left:     lhs,
		Right:    rhs,
	}, nil
}

func (p *Parser) expr() (Expr, error) {
	return p.additiveExpr()
}

func (p *Parser) additiveExpr() (Expr, error) {
	lhs, err := p.multiplicativeExpr()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.match(TokenPlus, TokenMinus)
		if !ok {
			return lhs, nil
		}

		rhs, err := p.multiplicativeExpr()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Loc:       tok.Loc,
			Operation: BinaryOp(tok.Lexeme),
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) multiplicativeExpr() (Expr, error) {
	lhs, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.match(TokenStar, TokenSlash)
		if !ok {
			return lhs, nil
		}

		rhs, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}

		lhs = &BinaryExpr{
			Loc:       tok.Loc,
			Operation: BinaryOp(tok.Lexeme),
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) unaryExpr() (Expr, error) {
	tok, ok := p.match(TokenMinus, TokenNot)
	if !ok {
		return p.primary()
	}

	operand, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	op := UnaryNegative
	if tok.Typ == TokenNot {
		op = UnaryNot
	}

	return &UnaryExpr{
		Loc:       tok.Loc,
		Operation: op,
		Operand:   operand,
	}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenNumber, TokenString:
		return p.literal()
	case TokenIdentifier:
		p.next()
		return &Identifier{
			Loc:  tok.Loc,
			Name: tok.Lexeme,
		}, nil
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	default:
		return nil, p.errorf(tok, "unexpected token in expression")
	}
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	p.next() // Skip (

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "')'"); err != nil {
		return nil, err
	}

	return exp, nil
}

func (p *Parser) literal() (Expr, error) {
	tok := p.next()
	if tok.Literal != nil {
		return &LiteralExpr{Loc: tok.Loc, Value: tok.Literal}, nil
	}

	// Tokens built by hand may carry only the lexeme
	if tok.Typ == TokenString {
		return &LiteralExpr{Loc: tok.Loc, Value: StringValue(tok.Lexeme)}, nil
	}

	n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return nil, p.errorf(tok, "invalid number literal")
	}

	return &LiteralExpr{Loc: tok.Loc, Value: IntValue(n)}, nil
}
