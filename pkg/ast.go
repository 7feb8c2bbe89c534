package deepu

type Node interface {
	Location() *Location
}

// Stmt is implemented only by the statement nodes of this package.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented only by the expression nodes of this package.
type Expr interface {
	Node
	exprNode()
}

type Block []Stmt

type Program struct {
	Statements []Stmt
}

type VariableDecl struct {
	Loc   *Location
	Name  string
	Value Expr
}

type Assign struct {
	Loc   *Location
	Name  string
	Value Expr
}

type Print struct {
	Loc   *Location
	Value Expr
}

type If struct {
	Loc       *Location
	Condition Expr
	Then      Block
	Otherwise Block // nil when there is no otherwise branch
}

type While struct {
	Loc       *Location
	Condition Expr
	Body      Block
}

type Repeat struct {
	Loc   *Location
	Count Expr
	Body  Block
}

type ComparisonOp string

const (
	CompareGreater    ComparisonOp = "is greater than"
	CompareLess       ComparisonOp = "is less than"
	CompareEqual      ComparisonOp = "is equal to"
	CompareNotEqual   ComparisonOp = "is not equal to"
	CompareNotGreater ComparisonOp = "is not greater than"
	CompareNotLess    ComparisonOp = "is not less than"
)

var comparisonOps = map[TokenType]ComparisonOp{
	TokenIsGreater:    CompareGreater,
	TokenIsLess:       CompareLess,
	TokenIsEqual:      CompareEqual,
	TokenIsNotEqual:   CompareNotEqual,
	TokenIsNotGreater: CompareNotGreater,
	TokenIsNotLess:    CompareNotLess,
}

type Comparison struct {
	Loc      *Location
	Operator ComparisonOp
	Left     Expr
	Right    Expr
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
)

type BinaryExpr struct {
	Loc       *Location
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type UnaryOp string

const (
	UnaryNegative UnaryOp = "-"
	UnaryNot      UnaryOp = "not"
)

type UnaryExpr struct {
	Loc       *Location
	Operation UnaryOp
	Operand   Expr
}

type LiteralExpr struct {
	Loc   *Location
	Value Value
}

type Identifier struct {
	Loc  *Location
	Name string
}

func (n *VariableDecl) Location() *Location { return n.Loc }
func (n *Assign) Location() *Location       { return n.Loc }
func (n *Print) Location() *Location        { return n.Loc }
func (n *If) Location() *Location           { return n.Loc }
func (n *While) Location() *Location        { return n.Loc }
func (n *Repeat) Location() *Location       { return n.Loc }
func (n *Comparison) Location() *Location   { return n.Loc }
func (n *BinaryExpr) Location() *Location   { return n.Loc }
func (n *UnaryExpr) Location() *Location    { return n.Loc }
func (n *LiteralExpr) Location() *Location  { return n.Loc }
func (n *Identifier) Location() *Location   { return n.Loc }

func (*VariableDecl) stmtNode() {}
func (*Assign) stmtNode()       {}
func (*Print) stmtNode()        {}
func (*If) stmtNode()           {}
func (*While) stmtNode()        {}
func (*Repeat) stmtNode()       {}

func (*Comparison) exprNode()  {}
func (*BinaryExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*LiteralExpr) exprNode() {}
func (*Identifier) exprNode()  {}
