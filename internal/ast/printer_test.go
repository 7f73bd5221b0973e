package ast

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func num(n int64) *NumberExpr {
	return &NumberExpr{Value: big.NewInt(n)}
}

func ref(names ...string) *ReferenceExpr {
	return &ReferenceExpr{Path: PathFromNames(names...)}
}

func TestBinaryExprString(t *testing.T) {
	// (a + b) * c, built without any grouping node
	expr := &BinaryExpr{
		Left:  &BinaryExpr{Left: ref("a"), Op: Add, Right: ref("b")},
		Op:    Mul,
		Right: ref("c"),
	}
	assert.Equal(t, "(a + b) * c", expr.String())

	identity := &BinaryExpr{
		Left:  &UnaryExpr{Op: Next, Expr: ref("x")},
		Op:    Identity,
		Right: num(1),
	}
	assert.Equal(t, "(x') = 1", identity.String())
}

func TestUnaryExprString(t *testing.T) {
	assert.Equal(t, "-x", (&UnaryExpr{Op: Minus, Expr: ref("x")}).String())
	assert.Equal(t, "!(!x)", (&UnaryExpr{Op: LogicalNot, Expr: &UnaryExpr{Op: LogicalNot, Expr: ref("x")}}).String())
	assert.Equal(t, "(a + 1)'", (&UnaryExpr{Op: Next, Expr: &BinaryExpr{Left: ref("a"), Op: Add, Right: num(1)}}).String())
}

func TestCallAndIndexString(t *testing.T) {
	call := &CallExpr{
		Function: ref("sum"),
		Args: []Expr{
			num(16),
			&LambdaExpr{Kind: Pure, Params: []Pattern{&EnumPattern{Path: PathFromNames("i")}}, Body: &IndexExpr{Array: ref("wit"), Index: ref("i")}},
		},
	}
	assert.Equal(t, "sum(16, |i| wit[i])", call.String())

	immediate := &CallExpr{
		Function: &LambdaExpr{Kind: Query, Params: []Pattern{}, Body: num(7)},
		Args:     nil,
	}
	assert.Equal(t, "(query || 7)()", immediate.String())
}

func TestLiteralStrings(t *testing.T) {
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	assert.Equal(t, "340282366920938463463374607431768211456", (&NumberExpr{Value: huge}).String())
	assert.Equal(t, `"a\n\"b\"\\\0"`, (&StringExpr{Value: "a\n\"b\"\\\x00"}).String())
	assert.Equal(t, ":out", (&PublicReferenceExpr{Name: "out"}).String())
	assert.Equal(t, "(a,)", (&TupleExpr{Items: []Expr{ref("a")}}).String())
	assert.Equal(t, "()", (&TupleExpr{}).String())
	assert.Equal(t, "[1, 2]", (&ArrayLiteralExpr{Items: []Expr{num(1), num(2)}}).String())
	assert.Equal(t, "${ x }", (&FreeInputExpr{Expr: ref("x")}).String())
}

func TestReferenceString(t *testing.T) {
	assert.Equal(t, "std::utils::fold", ref("std", "utils", "fold").String())

	generic := &ReferenceExpr{Path: PathFromNames("std", "convert", "fe"), TypeArgs: []Type{Int}}
	assert.Equal(t, "std::convert::fe::<int>", generic.String())

	absolute := SymbolPath{Parts: []Part{{}, {Name: "a"}}}
	assert.Equal(t, "::a", absolute.String())
	assert.Equal(t, "super::x", SymbolPath{Parts: []Part{{Super: true}, {Name: "x"}}}.String())
}

func TestControlFlowString(t *testing.T) {
	match := &MatchExpr{
		Scrutinee: ref("x"),
		Arms: []MatchArm{
			{Pattern: &NumberPattern{Value: big.NewInt(-1)}, Value: ref("a")},
			{Pattern: &CatchAllPattern{}, Value: ref("b")},
		},
	}
	assert.Equal(t, "match x { -1 => a, _ => b }", match.String())
	assert.Equal(t, "match x { }", (&MatchExpr{Scrutinee: ref("x")}).String())

	block := &BlockExpr{
		Statements: []BlockStatement{
			&LetInsideBlock{Pattern: &TuplePattern{Items: []Pattern{&EnumPattern{Path: PathFromNames("a")}, &CatchAllPattern{}}}, Value: ref("p")},
			&LetInsideBlock{Pattern: &EnumPattern{Path: PathFromNames("c")}},
			&ExprInsideBlock{Expr: &CallExpr{Function: ref("f"), Args: []Expr{ref("a")}}},
		},
		Expr: ref("a"),
	}
	assert.Equal(t, "{ let (a, _) = p; let c; f(a); a }", block.String())

	ifExpr := &IfExpr{
		Condition: &BinaryExpr{Left: ref("i"), Op: Equal, Right: num(0)},
		Body:      &BlockExpr{Expr: num(1)},
		ElseBody:  &BlockExpr{Expr: num(0)},
	}
	assert.Equal(t, "if i == 0 { 1 } else { 0 }", ifExpr.String())
}

func TestPatternString(t *testing.T) {
	array := &ArrayPattern{Items: []Pattern{
		&EnumPattern{Path: PathFromNames("a")},
		&EllipsisPattern{},
		&StringPattern{Value: "s"},
	}}
	assert.Equal(t, `[a, .., "s"]`, array.String())

	some := &EnumPattern{Path: PathFromNames("Option", "Some"), Fields: []Pattern{&CatchAllPattern{}}}
	assert.Equal(t, "Option::Some(_)", some.String())
	assert.Equal(t, "Unit()", (&EnumPattern{Path: PathFromNames("Unit"), Fields: []Pattern{}}).String())
}

func TestTypeString(t *testing.T) {
	fold := &FunctionType{
		Params: []Type{
			Int,
			&FunctionType{Params: []Type{Int}, Value: &NamedType{Path: PathFromNames("T1")}},
			&NamedType{Path: PathFromNames("T2")},
		},
		Value: &NamedType{Path: PathFromNames("T2")},
	}
	assert.Equal(t, "int, (int -> T1), T2 -> T2", fold.String())

	assert.Equal(t, "-> int", (&FunctionType{Value: Int}).String())
	assert.Equal(t, "fe[4][]", (&ArrayType{Base: &ArrayType{Base: Fe, Length: num(4)}}).String())
	assert.Equal(t, "(int, bool)", (&TupleType{Items: []Type{Int, Bool}}).String())
	assert.Equal(t, "Option<expr>", (&NamedType{Path: PathFromNames("Option"), Args: []Type{AlgebraicExpr}}).String())
	assert.Equal(t, "!", Bottom.String())

	scheme := &TypeScheme{
		Vars: TypeVarBounds{{Name: "T", Bounds: []string{"Add", "Mul"}}, {Name: "U"}},
		Type: &NamedType{Path: PathFromNames("T")},
	}
	assert.Equal(t, "<T: Add + Mul, U> T", scheme.String())
}

func TestPILStatementString(t *testing.T) {
	stage := uint32(2)
	tests := []struct {
		stmt     PilStatement
		expected string
	}{
		{&Include{Path: "std.pil"}, `include "std.pil";`},
		{&Namespace{Name: PathFromNames("Main"), Degree: num(8)}, "namespace Main(8);"},
		{&Namespace{Name: PathFromNames("std", "math")}, "namespace std::math;"},
		{&LetStatement{Name: "w"}, "let w;"},
		{&LetStatement{Name: "N", TypeScheme: &TypeScheme{Type: Int}, Value: num(8)}, "let N: int = 8;"},
		{&ConstantDefinition{Name: "%N", Value: num(16)}, "constant %N = 16;"},
		{&PolynomialDefinition{Name: "x", Value: ref("y")}, "pol x = y;"},
		{&PublicDeclaration{Name: "out", Polynomial: *ref("Main", "x"), Index: num(2), Row: num(7)}, "public out = Main::x[2](7);"},
		{&PolynomialConstantDeclaration{Names: []PolynomialName{{Name: "A"}, {Name: "B", ArraySize: num(2)}}}, "pol constant A, B[2];"},
		{
			&PolynomialConstantDefinition{Name: "BYTE", Definition: &ArrayDefinition{Value: &ArrayConcat{
				Left:  &RepeatedValue{Items: []Expr{num(0), num(1)}},
				Right: &ArrayValue{Items: []Expr{num(5)}},
			}}},
			"pol constant BYTE = [0, 1]* + [5];",
		},
		{&PolynomialCommitDeclaration{Names: []PolynomialName{{Name: "wit", ArraySize: num(16)}}}, "pol commit wit[16];"},
		{
			&PolynomialCommitDeclaration{
				Stage: &stage,
				Names: []PolynomialName{{Name: "x"}},
				Definition: &QueryDefinition{Expr: &LambdaExpr{
					Kind:   Query,
					Params: []Pattern{&EnumPattern{Path: PathFromNames("i")}},
					Body:   &CallExpr{Function: ref("f"), Args: []Expr{ref("i")}},
				}},
			},
			"pol commit stage(2) x(i) query f(i);",
		},
		{
			&EnumDeclaration{Name: "Option", TypeVars: TypeVarBounds{{Name: "T"}}, Variants: []EnumVariant{
				{Name: "None"},
				{Name: "Some", Fields: []Type{&NamedType{Path: PathFromNames("T")}}},
			}},
			"enum Option<T> { None, Some(T) }",
		},
		{
			&PlookupIdentity{
				Left:  SelectedExpressions{Selector: ref("sel"), Expressions: []Expr{ref("a")}},
				Right: SelectedExpressions{Expressions: []Expr{ref("b"), ref("c")}},
			},
			"sel { a } in { b, c };",
		},
		{
			&PermutationIdentity{
				Left:  SelectedExpressions{Expressions: []Expr{ref("a")}},
				Right: SelectedExpressions{Expressions: []Expr{ref("b")}},
			},
			"a is b;",
		},
		{&ConnectIdentity{Left: []Expr{ref("a")}, Right: []Expr{ref("b")}}, "{ a } connect { b };"},
		{&ExpressionStatement{Expr: &BlockExpr{Expr: num(1)}}, "({ 1 });"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stmt.String())
		})
	}
}

func TestMachineString(t *testing.T) {
	labelType := PathFromNames("label")
	machine := &SymbolDefinition{
		Name: "Main",
		Value: &MachineDefinition{
			Arguments:  MachineArguments{Args: []MachineArgument{{Name: "mem", Type: PathFromNames("Memory")}}},
			Properties: MachineProperties{Degree: num(8), Latch: "latch"},
			Statements: []MachineStatement{
				&RegisterDeclaration{Name: "pc", Flag: IsPC},
				&RegisterDeclaration{Name: "A"},
				&InstructionDeclaration{Name: "jmp", Instruction: Instruction{
					Params: Params{Inputs: []Param{{Name: "l", Type: &labelType}}},
					Body: &LocalInstructionBody{Elements: []PilStatement{
						&ExpressionStatement{Expr: &BinaryExpr{Left: &UnaryExpr{Op: Next, Expr: ref("pc")}, Op: Identity, Right: ref("l")}},
					}},
				}},
				&LinkDeclaration{Flag: ref("f"), IsPermutation: true, Link: CallableRef{
					Instance: "mem",
					Callable: "load",
					Params:   CallableParams{Inputs: []Expr{ref("A")}, Outputs: []Expr{ref("B")}},
				}},
				&OperationDeclaration{Name: "add", ID: big.NewInt(0), Params: Params{Outputs: []Param{{Name: "C"}}}},
				&FunctionDeclaration{Name: "main", Body: []FunctionStatement{
					&LabelStatement{Name: "start"},
					&AssignmentStatement{LHS: []string{"A"}, Registers: []AssignmentRegister{{Name: "X"}, {Wildcard: true}}, RHS: num(1)},
					&DebugDirectiveStatement{Directive: &DebugLoc{File: 1, Line: 2, Column: 3}},
					&InstructionStatement{Instruction: "jmp", Inputs: []Expr{ref("start")}},
					&ReturnStatement{},
				}},
			},
		},
	}

	expected := `machine Main(mem: Memory) with degree: 8, latch: latch {
    reg pc[@pc];
    reg A;
    instr jmp l: label { (pc') = l }
    link f ~> mem.load A -> B;
    operation add<0> -> C;
    function main {
        start:
        A <= X, _ = 1;
        .debug loc 1 2 3;
        jmp start;
        return;
    }
}`
	assert.Equal(t, expected, machine.String())
}

func TestModuleDefinitionString(t *testing.T) {
	tests := []struct {
		def      *SymbolDefinition
		expected string
	}{
		{&SymbolDefinition{Name: "Arith", Value: &Import{Path: PathFromNames("std", "Arith")}}, "use std::Arith;"},
		{&SymbolDefinition{Name: "A", Value: &Import{Path: PathFromNames("std", "Arith")}}, "use std::Arith as A;"},
		{&SymbolDefinition{Name: "ext", Value: &ExternalModule{Name: "ext"}}, "mod ext;"},
		{&SymbolDefinition{Name: "empty", Value: &LocalModule{Module: &ASMModule{}}}, "mod empty {\n}"},
		{
			&SymbolDefinition{Name: "inner", Value: &LocalModule{Module: &ASMModule{Statements: []*SymbolDefinition{
				{Name: "N", Value: &TypedExpression{Expr: num(8)}},
			}}}},
			"mod inner {\n    let N = 8;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.def.String())
		})
	}
}
