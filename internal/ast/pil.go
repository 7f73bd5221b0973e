package ast

// PILFile is the root of a constraint file. Statement order is preserved.
type PILFile struct {
	Statements []PilStatement
}

// PilStatement is a top-level statement of the constraint language.
type PilStatement interface {
	Node
	isPilStatement()
}

func (*Include) isPilStatement()                       {}
func (*Namespace) isPilStatement()                     {}
func (*LetStatement) isPilStatement()                  {}
func (*ConstantDefinition) isPilStatement()            {}
func (*PolynomialDefinition) isPilStatement()          {}
func (*PublicDeclaration) isPilStatement()             {}
func (*PolynomialConstantDeclaration) isPilStatement() {}
func (*PolynomialConstantDefinition) isPilStatement()  {}
func (*PolynomialCommitDeclaration) isPilStatement()   {}
func (*EnumDeclaration) isPilStatement()               {}
func (*PlookupIdentity) isPilStatement()               {}
func (*PermutationIdentity) isPilStatement()           {}
func (*ConnectIdentity) isPilStatement()               {}
func (*ExpressionStatement) isPilStatement()           {}

// Include records a file to be loaded by the module loader
// Example: "include \"std.pil\";"
type Include struct {
	Pos  Position
	Path string
}

// Namespace opens a namespace with an optional degree
// Example: "namespace Main(2**16);"
type Namespace struct {
	Pos    Position
	Name   SymbolPath
	Degree Expr
}

// LetStatement declares a symbol with an optional type scheme and value
// Example: "let<T> id: T -> T = |x| x;", "let N = 8;", "let w;"
type LetStatement struct {
	Pos        Position
	Name       string
	TypeScheme *TypeScheme
	Value      Expr
}

// ConstantDefinition defines a %-prefixed constant
// Example: "constant %N = 16;"
type ConstantDefinition struct {
	Pos   Position
	Name  string
	Value Expr
}

// PolynomialDefinition defines an intermediate (non-witness) polynomial
// Example: "pol x = a * b;"
type PolynomialDefinition struct {
	Pos   Position
	Name  string
	Value Expr
}

// PublicDeclaration exposes a column value at a given row
// Example: "public out = Main.x[2](7);"
type PublicDeclaration struct {
	Pos        Position
	Name       string
	Polynomial ReferenceExpr
	Index      Expr // nil when the column is not indexed
	Row        Expr
}

// PolynomialName is a column name with an optional array size
// Example: "wit[16]"
type PolynomialName struct {
	Name      string
	ArraySize Expr
}

// PolynomialConstantDeclaration declares fixed columns without definition
// Example: "pol constant FIRST, LAST;"
type PolynomialConstantDeclaration struct {
	Pos   Position
	Names []PolynomialName
}

// PolynomialConstantDefinition defines a fixed column
// Example: "col fixed LAST(i) { if i == N - 1 { 1 } else { 0 } };", "col fixed X = [1, 2]*;"
type PolynomialConstantDefinition struct {
	Pos        Position
	Name       string
	Definition FunctionDefinition
}

// PolynomialCommitDeclaration declares witness columns, optionally with a
// stage and a query definition
// Example: "col witness wit[16];", "col witness stage(1) x(i) query f(i);"
type PolynomialCommitDeclaration struct {
	Pos        Position
	Stage      *uint32
	Names      []PolynomialName
	Definition FunctionDefinition
}

// EnumVariant is a variant name with optional field types
// Example: "Some(T)", "None"
type EnumVariant struct {
	Name   string
	Fields []Type // nil when the variant has no parenthesized list
}

// EnumDeclaration declares an enum type
// Example: "enum Option<T> { None, Some(T) }"
type EnumDeclaration struct {
	Pos      Position
	Name     string
	TypeVars TypeVarBounds
	Variants []EnumVariant
}

// SelectedExpressions is an optional selector with a list of expressions
// Example: "sel { a, b }", "{ a }", "a"
type SelectedExpressions struct {
	Selector    Expr
	Expressions []Expr
}

// PlookupIdentity asserts containment
// Example: "s { a } in { b };"
type PlookupIdentity struct {
	Pos   Position
	Left  SelectedExpressions
	Right SelectedExpressions
}

// PermutationIdentity asserts that both sides are permutations of each other
// Example: "{ a, b } is { c, d };"
type PermutationIdentity struct {
	Pos   Position
	Left  SelectedExpressions
	Right SelectedExpressions
}

// ConnectIdentity asserts a copy constraint
// Example: "{ a, b } connect { c, d };"
type ConnectIdentity struct {
	Pos   Position
	Left  []Expr
	Right []Expr
}

// ExpressionStatement is a bare constraint or function call
// Example: "x' = x + 1;", "equals_twenty(sum(16, |i| wit[i]));"
type ExpressionStatement struct {
	Pos  Position
	Expr Expr
}

// FunctionDefinition is the body of a fixed or witness column definition.
type FunctionDefinition interface {
	String() string
	isFunctionDefinition()
}

func (*ArrayDefinition) isFunctionDefinition()      {}
func (*ExpressionDefinition) isFunctionDefinition() {}
func (*QueryDefinition) isFunctionDefinition()      {}

// ArrayDefinition defines a column by an array expression
// Example: "= [0, 1]* + [5]"
type ArrayDefinition struct {
	Value ArrayExpression
}

// ExpressionDefinition defines a column by an expression, usually a pure lambda
// Example: "(i) { i + 1 }", "= |i| i"
type ExpressionDefinition struct {
	Expr Expr
}

// QueryDefinition attaches a prover query to a witness column; Expr is a
// query lambda
// Example: "(i) query f(i)"
type QueryDefinition struct {
	Expr Expr
}

// ArrayExpression is the value of an array column definition.
type ArrayExpression interface {
	String() string
	isArrayExpression()
}

func (*ArrayValue) isArrayExpression()    {}
func (*RepeatedValue) isArrayExpression() {}
func (*ArrayConcat) isArrayExpression()   {}

// ArrayValue is a literal list of values
// Example: "[1, 2]"
type ArrayValue struct {
	Items []Expr
}

// RepeatedValue repeats its values to fill the column
// Example: "[0, 1]*"
type RepeatedValue struct {
	Items []Expr
}

// ArrayConcat concatenates two array expressions
// Example: "[1] + [0]*"
type ArrayConcat struct {
	Left  ArrayExpression
	Right ArrayExpression
}
