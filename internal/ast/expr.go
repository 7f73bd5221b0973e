package ast

import "math/big"

// Expr is the shared expression tree of both sublanguages. Every node owns
// its operands exclusively.
type Expr interface {
	String() string
	isExpr()
}

func (*BinaryExpr) isExpr()          {}
func (*UnaryExpr) isExpr()           {}
func (*CallExpr) isExpr()            {}
func (*IndexExpr) isExpr()           {}
func (*ReferenceExpr) isExpr()       {}
func (*PublicReferenceExpr) isExpr() {}
func (*NumberExpr) isExpr()          {}
func (*StringExpr) isExpr()          {}
func (*ArrayLiteralExpr) isExpr()    {}
func (*TupleExpr) isExpr()           {}
func (*MatchExpr) isExpr()           {}
func (*IfExpr) isExpr()              {}
func (*BlockExpr) isExpr()           {}
func (*LambdaExpr) isExpr()          {}
func (*FreeInputExpr) isExpr()       {}

type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Mod
	Pow
	BinaryAnd
	BinaryXor
	BinaryOr
	ShiftLeft
	ShiftRight
	LogicalOr
	LogicalAnd
	Less
	LessEqual
	Equal
	Identity
	NotEqual
	GreaterEqual
	Greater
)

var binaryOperatorSymbols = [...]string{
	Add:          "+",
	Sub:          "-",
	Mul:          "*",
	Div:          "/",
	Mod:          "%",
	Pow:          "**",
	BinaryAnd:    "&",
	BinaryXor:    "^",
	BinaryOr:     "|",
	ShiftLeft:    "<<",
	ShiftRight:   ">>",
	LogicalOr:    "||",
	LogicalAnd:   "&&",
	Less:         "<",
	LessEqual:    "<=",
	Equal:        "==",
	Identity:     "=",
	NotEqual:     "!=",
	GreaterEqual: ">=",
	Greater:      ">",
}

func (op BinaryOperator) String() string {
	return binaryOperatorSymbols[op]
}

type UnaryOperator int

const (
	Minus UnaryOperator = iota
	LogicalNot
	// Next is the postfix "next row" operator (a').
	Next
)

func (op UnaryOperator) String() string {
	switch op {
	case Minus:
		return "-"
	case LogicalNot:
		return "!"
	default:
		return "'"
	}
}

// IsPrefix reports whether the operator is written before its operand.
func (op UnaryOperator) IsPrefix() bool {
	return op != Next
}

type FunctionKind int

const (
	Pure FunctionKind = iota
	Query
	Constr
)

func (k FunctionKind) String() string {
	switch k {
	case Query:
		return "query"
	case Constr:
		return "constr"
	default:
		return "pure"
	}
}

// BinaryExpr represents binary operations
// Example: "a + b", "x = y'", "2 ** 3"
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOperator
	Right Expr
}

// UnaryExpr represents prefix and postfix unary operations
// Example: "-a", "!b", "x'"
type UnaryExpr struct {
	Op   UnaryOperator
	Expr Expr
}

// CallExpr represents function calls
// Example: "sum(16, |i| wit[i])"
type CallExpr struct {
	Function Expr
	Args     []Expr
}

// IndexExpr represents array index access
// Example: "wit[i]"
type IndexExpr struct {
	Array Expr
	Index Expr
}

// ReferenceExpr represents a reference to a named symbol, optionally with
// explicit generic type arguments.
// Example: "x", "Main.pc", "std::utils::fold", "std::convert::fe::<int>"
type ReferenceExpr struct {
	Path     SymbolPath
	TypeArgs []Type // nil when no "::<...>" was given
}

// PublicReferenceExpr represents a reference to a public declaration
// Example: ":out"
type PublicReferenceExpr struct {
	Name string
}

// NumberExpr represents an unsigned integer literal of arbitrary size
// Example: "1_000", "0x3e8"
type NumberExpr struct {
	Value *big.Int
	// Type is filled in by later type inference passes; the parser leaves it nil.
	Type Type
}

// StringExpr represents a decoded string literal
type StringExpr struct {
	Value string
}

// ArrayLiteralExpr represents an array literal
// Example: "[1, 2, 3]"
type ArrayLiteralExpr struct {
	Items []Expr
}

// TupleExpr represents a tuple; a single parenthesized expression is not a tuple
// Example: "()", "(a, b)", "(a,)"
type TupleExpr struct {
	Items []Expr
}

// MatchArm is a single "pattern => value" arm.
type MatchArm struct {
	Pattern Pattern
	Value   Expr
}

// MatchExpr represents a match expression
// Example: "match x { 0 => a, _ => b }"
type MatchExpr struct {
	Scrutinee Expr
	Arms      []MatchArm
}

// IfExpr represents an if expression; both branches are blocks
// Example: "if x == 0 { 1 } else { 2 }"
type IfExpr struct {
	Condition Expr
	Body      Expr
	ElseBody  Expr
}

// BlockStatement is a statement inside a block expression.
type BlockStatement interface {
	String() string
	isBlockStatement()
}

func (*LetInsideBlock) isBlockStatement()  {}
func (*ExprInsideBlock) isBlockStatement() {}

// LetInsideBlock binds a pattern inside a block
// Example: "let (a, b) = f(x);"
type LetInsideBlock struct {
	Pattern Pattern
	Value   Expr // nil for "let x;"
}

// ExprInsideBlock is an expression evaluated for its side effects
type ExprInsideBlock struct {
	Expr Expr
}

// BlockExpr represents a block with a mandatory trailing value expression
// Example: "{ let x = 2; x * x }"
type BlockExpr struct {
	Statements []BlockStatement
	Expr       Expr
}

// LambdaExpr represents an anonymous function
// Example: "|i| wit[i]", "query || 7", "|(a, b)| a + b"
type LambdaExpr struct {
	Kind   FunctionKind
	Params []Pattern
	Body   Expr
}

// FreeInputExpr represents a prover-supplied free input
// Example: "${ x + 1 }"
type FreeInputExpr struct {
	Expr Expr
}
