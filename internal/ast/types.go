package ast

// Type is a type annotation as written in the source.
type Type interface {
	String() string
	isType()
}

func (Primitive) isType()      {}
func (*FunctionType) isType()  {}
func (*NamedType) isType()     {}
func (*ArrayType) isType()     {}
func (*TupleType) isType()     {}

// Primitive is one of the builtin types.
type Primitive int

const (
	// Bottom is the type of expressions that never return ("!").
	Bottom Primitive = iota
	Bool
	Int
	// Fe is the field element type.
	Fe
	String
	// Col is the type of a column.
	Col
	// AlgebraicExpr is the type of algebraic expressions ("expr").
	AlgebraicExpr
)

var primitiveNames = [...]string{
	Bottom:        "!",
	Bool:          "bool",
	Int:           "int",
	Fe:            "fe",
	String:        "string",
	Col:           "col",
	AlgebraicExpr: "expr",
}

func (p Primitive) String() string {
	return primitiveNames[p]
}

// FunctionType has a possibly empty parameter list
// Example: "int, fe -> bool", "-> int"
type FunctionType struct {
	Params []Type
	Value  Type
}

// NamedType is a user type or a type variable
// Example: "T", "Option<int>", "std::utils::Option<T>"
type NamedType struct {
	Path SymbolPath
	Args []Type // nil when no "<...>" was given
}

// ArrayType is a fixed-size or unsized array
// Example: "int[4]", "fe[]"
type ArrayType struct {
	Base   Type
	Length Expr // nil for unsized arrays
}

// TupleType has zero or at least two items
// Example: "()", "(int, fe)"
type TupleType struct {
	Items []Type
}

// TypeVarBound is a type variable with its trait bounds
// Example: "T: Add + FromLiteral"
type TypeVarBound struct {
	Name   string
	Bounds []string
}

// TypeVarBounds is an ordered list of generic type variables.
type TypeVarBounds []TypeVarBound

// Names returns the type variable names in declaration order.
func (b TypeVarBounds) Names() []string {
	names := make([]string, len(b))
	for i, v := range b {
		names[i] = v.Name
	}
	return names
}

// TypeScheme is a type generic over a set of bounded type variables
// Example: "<T1, T2> int, T1 -> T2"
type TypeScheme struct {
	Vars TypeVarBounds
	Type Type
}
