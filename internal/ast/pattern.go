package ast

import "math/big"

// Pattern is used by let bindings, lambda parameters and match arms.
//
// A bare identifier is always an EnumPattern without fields: whether it
// binds a variable or names a constructor is decided during name resolution.
type Pattern interface {
	String() string
	isPattern()
}

func (*CatchAllPattern) isPattern() {}
func (*EllipsisPattern) isPattern() {}
func (*NumberPattern) isPattern()   {}
func (*StringPattern) isPattern()   {}
func (*TuplePattern) isPattern()    {}
func (*ArrayPattern) isPattern()    {}
func (*EnumPattern) isPattern()     {}

// CatchAllPattern matches anything
// Example: "_"
type CatchAllPattern struct{}

// EllipsisPattern matches zero or more array elements; it only appears as
// a direct element of an ArrayPattern
// Example: ".." in "[a, .., b]"
type EllipsisPattern struct{}

// NumberPattern matches a signed integer literal
// Example: "0", "-1"
type NumberPattern struct {
	Value *big.Int
}

// StringPattern matches a string literal
type StringPattern struct {
	Value string
}

// TuplePattern has zero or at least two items
// Example: "()", "(a, _)"
type TuplePattern struct {
	Items []Pattern
}

// ArrayPattern may contain at most one EllipsisPattern
// Example: "[]", "[a, .., b]"
type ArrayPattern struct {
	Items []Pattern
}

// EnumPattern names a constructor or, before resolution, a variable
// Example: "x", "Option::Some(v)", "Option::None"
type EnumPattern struct {
	Path   SymbolPath
	Fields []Pattern // nil when no parenthesized list was given
}
