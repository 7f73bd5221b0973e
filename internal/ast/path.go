package ast

import "strings"

// Part is one segment of a SymbolPath: either a name or "super".
type Part struct {
	Name  string
	Super bool
}

func (p Part) String() string {
	if p.Super {
		return "super"
	}
	return p.Name
}

// SymbolPath is a "::"-separated name. An absolute path starts with a
// part whose name is empty.
// Example: "a::b", "::std::utils", "super::Foo"
type SymbolPath struct {
	Parts []Part
}

// PathFromNames builds a relative path from plain names.
func PathFromNames(names ...string) SymbolPath {
	parts := make([]Part, len(names))
	for i, n := range names {
		parts[i] = Part{Name: n}
	}
	return SymbolPath{Parts: parts}
}

// IsAbsolute reports whether the path starts at the root.
func (p SymbolPath) IsAbsolute() bool {
	return len(p.Parts) > 0 && !p.Parts[0].Super && p.Parts[0].Name == ""
}

// Last returns the final segment of the path.
func (p SymbolPath) Last() Part {
	return p.Parts[len(p.Parts)-1]
}

// TryToIdentifier returns the name when the path is a single plain segment.
func (p SymbolPath) TryToIdentifier() (string, bool) {
	if len(p.Parts) != 1 || p.Parts[0].Super || p.Parts[0].Name == "" {
		return "", false
	}
	return p.Parts[0].Name, true
}

func (p SymbolPath) String() string {
	parts := make([]string, len(p.Parts))
	for i, part := range p.Parts {
		parts[i] = part.String()
	}
	return strings.Join(parts, "::")
}
