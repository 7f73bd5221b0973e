package ast

import "math/big"

// ASMModule is the root of an assembly file or an inline submodule.
type ASMModule struct {
	Statements []*SymbolDefinition
}

// SymbolDefinition binds a name at module level
// Example: "machine Main { ... }", "use std::utils::fold;", "mod utils;"
type SymbolDefinition struct {
	Pos   Position
	Name  string
	Value SymbolValue
}

// SymbolValue is the value bound by a SymbolDefinition.
type SymbolValue interface {
	isSymbolValue()
}

func (*MachineDefinition) isSymbolValue() {}
func (*LocalModule) isSymbolValue()       {}
func (*ExternalModule) isSymbolValue()    {}
func (*Import) isSymbolValue()            {}
func (*EnumDeclaration) isSymbolValue()   {}
func (*TypedExpression) isSymbolValue()   {}

// LocalModule is an inline submodule
// Example: "mod utils { ... }"
type LocalModule struct {
	Module *ASMModule
}

// ExternalModule refers to a module defined in another file
// Example: "mod utils;"
type ExternalModule struct {
	Name string
}

// Import brings a path into scope under the name of its SymbolDefinition
// Example: "use std::machines::Arith as A;"
type Import struct {
	Path SymbolPath
}

// TypedExpression is a module-level let with an optional type scheme
// Example: "let<T> id: T -> T = |x| x;"
type TypedExpression struct {
	Expr       Expr
	TypeScheme *TypeScheme
}

// MachineDefinition declares a machine
// Example: "machine Arith(mem: Memory) with latch: latch, operation_id: op { ... }"
type MachineDefinition struct {
	Arguments  MachineArguments
	Properties MachineProperties
	Statements []MachineStatement
}

// MachineStatement is a statement inside a machine body.
type MachineStatement interface {
	Node
	isMachineStatement()
}

func (*Submachine) isMachineStatement()             {}
func (*RegisterDeclaration) isMachineStatement()    {}
func (*InstructionDeclaration) isMachineStatement() {}
func (*LinkDeclaration) isMachineStatement()        {}
func (*Pil) isMachineStatement()                    {}
func (*FunctionDeclaration) isMachineStatement()    {}
func (*OperationDeclaration) isMachineStatement()   {}

// Submachine instantiates another machine
// Example: "Arith arith;"
type Submachine struct {
	Pos  Position
	Type SymbolPath
	Name string
}

type RegisterFlag int

const (
	NoFlag RegisterFlag = iota
	// IsPC marks the program counter ("@pc").
	IsPC
	// IsAssignment marks an assignment register ("<=").
	IsAssignment
	// IsReadOnly marks a read-only register ("@r").
	IsReadOnly
)

func (f RegisterFlag) String() string {
	switch f {
	case IsPC:
		return "@pc"
	case IsAssignment:
		return "<="
	case IsReadOnly:
		return "@r"
	default:
		return ""
	}
}

// RegisterDeclaration declares a register
// Example: "reg pc[@pc];", "reg X[<=];", "reg A;"
type RegisterDeclaration struct {
	Pos  Position
	Name string
	Flag RegisterFlag
}

// Param is an instruction, function, operation or machine parameter
// Example: "X", "l: label", "A[2]"
type Param struct {
	Name  string
	Index *big.Int    // nil when no "[n]" was given
	Type  *SymbolPath // nil when no ": T" was given
}

// Params splits parameters into inputs and outputs
// Example: "A, B -> C"
type Params struct {
	Inputs  []Param
	Outputs []Param
}

// CallableParams are the argument expressions of a callable reference.
type CallableParams struct {
	Inputs  []Expr
	Outputs []Expr
}

// CallableRef references an operation of a submachine instance
// Example: "arith.add X, Y -> Z"
type CallableRef struct {
	Instance string
	Callable string
	Params   CallableParams
}

// Instruction is an instruction signature and body
type Instruction struct {
	Params Params
	Body   InstructionBody
}

// InstructionBody is the body of an instruction declaration.
type InstructionBody interface {
	String() string
	isInstructionBody()
}

func (*LocalInstructionBody) isInstructionBody() {}
func (*CallablePlookup) isInstructionBody()      {}
func (*CallablePermutation) isInstructionBody()  {}

// LocalInstructionBody is a comma-separated list of constraints. Elements
// are PlookupIdentity, PermutationIdentity or ExpressionStatement values.
// Example: "{ pc' = l, X = Y }"
type LocalInstructionBody struct {
	Elements []PilStatement
}

// CallablePlookup implements an instruction by a lookup into a submachine
// Example: "= arith.add X, Y -> Z;"
type CallablePlookup struct {
	Ref CallableRef
}

// CallablePermutation implements an instruction by a permutation into a submachine
// Example: "~ mem.store X, Y;"
type CallablePermutation struct {
	Ref CallableRef
}

// InstructionDeclaration declares an instruction
// Example: "instr jmp l: label { pc' = l }"
type InstructionDeclaration struct {
	Pos         Position
	Name        string
	Instruction Instruction
}

// LinkDeclaration links a flag to a submachine operation
// Example: "link instr_add => arith.add X, Y -> Z;", "link f ~> mem.load A -> B;"
type LinkDeclaration struct {
	Pos           Position
	Flag          Expr
	Link          CallableRef
	IsPermutation bool
}

// Pil embeds a constraint statement in a machine body.
type Pil struct {
	Statement PilStatement
}

// FunctionDeclaration declares an assembly function
// Example: "function main { A <=X= 1; return; }"
type FunctionDeclaration struct {
	Pos    Position
	Name   string
	Params Params
	Body   []FunctionStatement
}

// OperationDeclaration declares an operation exposed to parent machines
// Example: "operation add<0> A, B -> C;"
type OperationDeclaration struct {
	Pos    Position
	Name   string
	ID     *big.Int // nil when no "<id>" was given
	Params Params
}

// FunctionStatement is a statement inside a function body.
type FunctionStatement interface {
	Node
	isFunctionStatement()
}

func (*AssignmentStatement) isFunctionStatement()     {}
func (*LabelStatement) isFunctionStatement()          {}
func (*DebugDirectiveStatement) isFunctionStatement() {}
func (*ReturnStatement) isFunctionStatement()         {}
func (*InstructionStatement) isFunctionStatement()    {}

// AssignmentRegister is an explicit assignment register or the "_" wildcard.
type AssignmentRegister struct {
	Name     string
	Wildcard bool
}

func (r AssignmentRegister) String() string {
	if r.Wildcard {
		return "_"
	}
	return r.Name
}

// AssignmentStatement assigns to registers, either directly or through
// explicit assignment registers
// Example: "A, B <== f(x);", "A <= X, _ = f(x);"
type AssignmentStatement struct {
	Pos       Position
	LHS       []string
	Registers []AssignmentRegister // nil for direct "<==" assignments
	RHS       Expr
}

// LabelStatement marks a jump target
// Example: "loop:"
type LabelStatement struct {
	Pos  Position
	Name string
}

// DebugDirective is the payload of a ".debug" statement.
type DebugDirective interface {
	String() string
	isDebugDirective()
}

func (*DebugFile) isDebugDirective()                {}
func (*DebugLoc) isDebugDirective()                 {}
func (*DebugOriginalInstruction) isDebugDirective() {}

// DebugFile registers a source file id
// Example: ".debug file 1 \"src\" \"main.rs\";"
type DebugFile struct {
	ID        uint64
	Directory string
	File      string
}

// DebugLoc records the source location of the following statements
// Example: ".debug loc 1 12 4;"
type DebugLoc struct {
	File   uint64
	Line   uint64
	Column uint64
}

// DebugOriginalInstruction records the instruction text before translation
// Example: ".debug insn \"addi x1, x1, 1\";"
type DebugOriginalInstruction struct {
	Text string
}

// DebugDirectiveStatement wraps a debug directive.
type DebugDirectiveStatement struct {
	Pos       Position
	Directive DebugDirective
}

// ReturnStatement returns values from a function
// Example: "return A, B;"
type ReturnStatement struct {
	Pos    Position
	Values []Expr
}

// InstructionStatement invokes an instruction
// Example: "jmp loop;", "add A, 1;"
type InstructionStatement struct {
	Pos         Position
	Instruction string
	Inputs      []Expr
}
