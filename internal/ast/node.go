package ast

import "fmt"

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Node is implemented by every statement that carries a source reference.
type Node interface {
	NodePos() Position
	String() string
}

func (s *Include) NodePos() Position                       { return s.Pos }
func (s *Namespace) NodePos() Position                     { return s.Pos }
func (s *LetStatement) NodePos() Position                  { return s.Pos }
func (s *ConstantDefinition) NodePos() Position            { return s.Pos }
func (s *PolynomialDefinition) NodePos() Position          { return s.Pos }
func (s *PublicDeclaration) NodePos() Position             { return s.Pos }
func (s *PolynomialConstantDeclaration) NodePos() Position { return s.Pos }
func (s *PolynomialConstantDefinition) NodePos() Position  { return s.Pos }
func (s *PolynomialCommitDeclaration) NodePos() Position   { return s.Pos }
func (s *EnumDeclaration) NodePos() Position               { return s.Pos }
func (s *PlookupIdentity) NodePos() Position               { return s.Pos }
func (s *PermutationIdentity) NodePos() Position           { return s.Pos }
func (s *ConnectIdentity) NodePos() Position               { return s.Pos }
func (s *ExpressionStatement) NodePos() Position           { return s.Pos }

func (s *SymbolDefinition) NodePos() Position { return s.Pos }

func (s *Submachine) NodePos() Position             { return s.Pos }
func (s *RegisterDeclaration) NodePos() Position    { return s.Pos }
func (s *InstructionDeclaration) NodePos() Position { return s.Pos }
func (s *LinkDeclaration) NodePos() Position        { return s.Pos }
func (s *Pil) NodePos() Position                    { return s.Statement.NodePos() }
func (s *FunctionDeclaration) NodePos() Position    { return s.Pos }
func (s *OperationDeclaration) NodePos() Position   { return s.Pos }

func (s *AssignmentStatement) NodePos() Position     { return s.Pos }
func (s *LabelStatement) NodePos() Position          { return s.Pos }
func (s *DebugDirectiveStatement) NodePos() Position { return s.Pos }
func (s *ReturnStatement) NodePos() Position         { return s.Pos }
func (s *InstructionStatement) NodePos() Position    { return s.Pos }
