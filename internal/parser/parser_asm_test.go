package parser

import (
	"testing"

	"pilasm/internal/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseASM(t *testing.T, src string) []*ast.SymbolDefinition {
	t.Helper()
	module, err := ParseASMModule("test.asm", src)
	require.NoError(t, err, "parsing %q", src)
	return module.Statements
}

func mustParseMachine(t *testing.T, src string) (string, *ast.MachineDefinition) {
	t.Helper()
	defs := mustParseASM(t, src)
	require.Len(t, defs, 1)
	machine, ok := defs[0].Value.(*ast.MachineDefinition)
	require.True(t, ok, "expected machine, got %T", defs[0].Value)
	return defs[0].Name, machine
}

func TestMachineHeader(t *testing.T) {
	name, machine := mustParseMachine(t, `
		machine Main(mem: Memory, arith: ::std::Arith) with degree: 2**8, latch: latch, operation_id: op {
		}
	`)
	assert.Equal(t, "Main", name)
	assert.Empty(t, machine.Statements)

	require.Len(t, machine.Arguments.Args, 2)
	assert.Equal(t, "mem", machine.Arguments.Args[0].Name)
	assert.Equal(t, "Memory", machine.Arguments.Args[0].Type.String())
	assert.True(t, machine.Arguments.Args[1].Type.IsAbsolute())

	props := machine.Properties
	assert.Equal(t, "2 ** 8", props.Degree.String())
	assert.Equal(t, "latch", props.Latch)
	assert.Equal(t, "op", props.OperationID)
	assert.Nil(t, props.MinDegree)
	assert.Empty(t, props.CallSelectors)
}

func TestMachinePropertyWithoutSpace(t *testing.T) {
	_, machine := mustParseMachine(t, "machine M with latch:latch { }")
	assert.Equal(t, "latch", machine.Properties.Latch)
}

func TestMachineValidationErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		column  int
	}{
		{"machine M with foo: 1 { }", "unknown machine property `foo`", 11},
		{"machine M with latch: a, latch: b { }", "`latch` already defined", 11},
		{"machine M with latch: 1 { }", "`latch` must be an identifier, got `1`", 11},
		{"machine M(a) { }", "machine argument `a` needs a type", 10},
		{"machine M(a: T, a: U) { }", "duplicate machine argument `a`", 10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseASMModule("test.asm", tt.input)
			perr := requireParseError(t, err)
			assert.Equal(t, ValidationError, perr.Kind)
			assert.Equal(t, tt.message, perr.Msg)
			assert.Equal(t, tt.column, perr.Pos.Column)
		})
	}
}

func TestRegisters(t *testing.T) {
	_, machine := mustParseMachine(t, "machine M { reg pc[@pc]; reg X[<=]; reg Y[@r]; reg A; }")
	require.Len(t, machine.Statements, 4)

	flags := make([]ast.RegisterFlag, 0, 4)
	for _, stmt := range machine.Statements {
		reg, ok := stmt.(*ast.RegisterDeclaration)
		require.True(t, ok)
		flags = append(flags, reg.Flag)
	}
	assert.Equal(t, []ast.RegisterFlag{ast.IsPC, ast.IsAssignment, ast.IsReadOnly, ast.NoFlag}, flags)

	_, err := ParseASMModule("test.asm", "machine M { reg A[@x]; }")
	requireParseError(t, err)
}

func TestLocalInstructionBody(t *testing.T) {
	_, machine := mustParseMachine(t, `machine M {
		instr jmp l: label { pc' = l }
		instr check X, Y -> Z { X in sel { Y }, Z = X + Y }
		instr nop {}
	}`)
	require.Len(t, machine.Statements, 3)

	jmp := machine.Statements[0].(*ast.InstructionDeclaration)
	assert.Equal(t, "jmp", jmp.Name)
	require.Len(t, jmp.Instruction.Params.Inputs, 1)
	assert.Equal(t, "label", jmp.Instruction.Params.Inputs[0].Type.String())
	body, ok := jmp.Instruction.Body.(*ast.LocalInstructionBody)
	require.True(t, ok)
	require.Len(t, body.Elements, 1)
	assert.IsType(t, &ast.ExpressionStatement{}, body.Elements[0])

	check := machine.Statements[1].(*ast.InstructionDeclaration)
	assert.Len(t, check.Instruction.Params.Inputs, 2)
	assert.Len(t, check.Instruction.Params.Outputs, 1)
	elements := check.Instruction.Body.(*ast.LocalInstructionBody).Elements
	require.Len(t, elements, 2)
	assert.IsType(t, &ast.PlookupIdentity{}, elements[0])

	nop := machine.Statements[2].(*ast.InstructionDeclaration)
	assert.Empty(t, nop.Instruction.Body.(*ast.LocalInstructionBody).Elements)
	assert.Equal(t, "instr nop {}", nop.String())
}

func TestInstructionBodyTrailingComma(t *testing.T) {
	_, machine := mustParseMachine(t, `machine M {
		instr set X { A' = X, B' = 0, }
	}`)
	set := machine.Statements[0].(*ast.InstructionDeclaration)
	elements := set.Instruction.Body.(*ast.LocalInstructionBody).Elements
	assert.Len(t, elements, 2)
	assert.Equal(t, "instr set X { A' = X, B' = 0 }", set.String())
}

func TestExternalInstructionBodies(t *testing.T) {
	_, machine := mustParseMachine(t, `machine M {
		instr add X, Y -> Z = arith.add X, Y -> Z;
		instr store X ~ mem.store X;
		instr get -> Z = regs.get -> Z;
	}`)
	require.Len(t, machine.Statements, 3)

	add := machine.Statements[0].(*ast.InstructionDeclaration)
	plookup, ok := add.Instruction.Body.(*ast.CallablePlookup)
	require.True(t, ok)
	assert.Equal(t, "arith", plookup.Ref.Instance)
	assert.Equal(t, "add", plookup.Ref.Callable)
	assert.Len(t, plookup.Ref.Params.Inputs, 2)
	assert.Len(t, plookup.Ref.Params.Outputs, 1)

	store := machine.Statements[1].(*ast.InstructionDeclaration)
	perm, ok := store.Instruction.Body.(*ast.CallablePermutation)
	require.True(t, ok)
	assert.Nil(t, perm.Ref.Params.Outputs)

	get := machine.Statements[2].(*ast.InstructionDeclaration)
	assert.Empty(t, get.Instruction.Params.Inputs)
	ref := get.Instruction.Body.(*ast.CallablePlookup).Ref
	assert.Nil(t, ref.Params.Inputs)
	assert.Len(t, ref.Params.Outputs, 1)
}

func TestConnectNotAllowedInInstruction(t *testing.T) {
	_, err := ParseASMModule("test.asm", "machine M { instr c { { a } connect { b } } }")
	perr := requireParseError(t, err)
	assert.Contains(t, perr.Msg, "connect")
}

func TestLinks(t *testing.T) {
	_, machine := mustParseMachine(t, `machine M {
		link instr_add => arith.add X, Y -> Z;
		link 1 ~> mem.load A -> B;
	}`)
	require.Len(t, machine.Statements, 2)

	lookup := machine.Statements[0].(*ast.LinkDeclaration)
	assert.False(t, lookup.IsPermutation)
	assert.Equal(t, "instr_add", lookup.Flag.String())
	assert.Equal(t, "arith.add X, Y -> Z", lookup.Link.String())

	perm := machine.Statements[1].(*ast.LinkDeclaration)
	assert.True(t, perm.IsPermutation)

	_, err := ParseASMModule("test.asm", "machine M { link arith.add X; }")
	requireParseError(t, err)
}

func TestOperationsAndSubmachines(t *testing.T) {
	_, machine := mustParseMachine(t, `machine M {
		Arith arith;
		std::machines::Memory mem;
		operation add<0> A, B -> C;
		operation reset;
	}`)
	require.Len(t, machine.Statements, 4)

	sub := machine.Statements[0].(*ast.Submachine)
	assert.Equal(t, "Arith", sub.Type.String())
	assert.Equal(t, "arith", sub.Name)

	mem := machine.Statements[1].(*ast.Submachine)
	assert.Equal(t, "std::machines::Memory", mem.Type.String())

	add := machine.Statements[2].(*ast.OperationDeclaration)
	require.NotNil(t, add.ID)
	assert.Equal(t, int64(0), add.ID.Int64())
	assert.Len(t, add.Params.Inputs, 2)
	assert.Len(t, add.Params.Outputs, 1)

	reset := machine.Statements[3].(*ast.OperationDeclaration)
	assert.Nil(t, reset.ID)
	assert.Empty(t, reset.Params.Inputs)
}

func TestEmbeddedConstraints(t *testing.T) {
	_, machine := mustParseMachine(t, `machine M {
		pol commit x;
		col fixed FIRST = [1] + [0]*;
		x' = x + 1;
		{ x } in { FIRST };
	}`)
	require.Len(t, machine.Statements, 4)
	for _, stmt := range machine.Statements {
		assert.IsType(t, &ast.Pil{}, stmt)
	}
	assert.IsType(t, &ast.PlookupIdentity{}, machine.Statements[3].(*ast.Pil).Statement)
}

func TestFunctionBody(t *testing.T) {
	_, machine := mustParseMachine(t, `machine M {
		function main a, b -> c {
			.debug file 1 "src" "main.rs";
			.debug loc 1 12 4;
			.debug insn "addi x1, x1, 1";
			start:
			A <=X= ${ input(0) };
			A, B <== f(a);
			C <= X, _ = b;
			jmp start;
			add A, 1;
			return A, B;
			return;
		}
	}`)
	require.Len(t, machine.Statements, 1)
	fn := machine.Statements[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "main", fn.Name)
	assert.Len(t, fn.Params.Inputs, 2)
	assert.Len(t, fn.Params.Outputs, 1)
	require.Len(t, fn.Body, 11)

	file := fn.Body[0].(*ast.DebugDirectiveStatement).Directive.(*ast.DebugFile)
	assert.Equal(t, &ast.DebugFile{ID: 1, Directory: "src", File: "main.rs"}, file)
	loc := fn.Body[1].(*ast.DebugDirectiveStatement).Directive.(*ast.DebugLoc)
	assert.Equal(t, &ast.DebugLoc{File: 1, Line: 12, Column: 4}, loc)
	assert.IsType(t, &ast.DebugOriginalInstruction{}, fn.Body[2].(*ast.DebugDirectiveStatement).Directive)

	label := fn.Body[3].(*ast.LabelStatement)
	assert.Equal(t, "start", label.Name)

	viaX := fn.Body[4].(*ast.AssignmentStatement)
	assert.Equal(t, []string{"A"}, viaX.LHS)
	assert.Equal(t, []ast.AssignmentRegister{{Name: "X"}}, viaX.Registers)
	assert.IsType(t, &ast.FreeInputExpr{}, viaX.RHS)

	direct := fn.Body[5].(*ast.AssignmentStatement)
	assert.Equal(t, []string{"A", "B"}, direct.LHS)
	assert.Nil(t, direct.Registers)

	wildcard := fn.Body[6].(*ast.AssignmentStatement)
	assert.Equal(t, []ast.AssignmentRegister{{Name: "X"}, {Wildcard: true}}, wildcard.Registers)

	jmp := fn.Body[7].(*ast.InstructionStatement)
	assert.Equal(t, "jmp", jmp.Instruction)
	assert.Len(t, jmp.Inputs, 1)

	add := fn.Body[8].(*ast.InstructionStatement)
	assert.Len(t, add.Inputs, 2)

	ret := fn.Body[9].(*ast.ReturnStatement)
	assert.Len(t, ret.Values, 2)
	assert.Empty(t, fn.Body[10].(*ast.ReturnStatement).Values)
}

func TestDebugNumbersMustFit64Bits(t *testing.T) {
	_, err := ParseASMModule("test.asm", "machine M { function f { .debug loc 18446744073709551616 1 1; } }")
	perr := requireParseError(t, err)
	assert.Equal(t, ValidationError, perr.Kind)
	assert.Contains(t, perr.Msg, "does not fit in 64 bits")
}

func TestModuleStatements(t *testing.T) {
	defs := mustParseASM(t, `
		use std::machines::Arith;
		use super::utils::Memory as Mem;
		mod external;
		mod inner {
			machine Inner { }
		};
		let N: int = 8;
		enum Op { Add, Mul }
	`)
	require.Len(t, defs, 6)

	arith := defs[0]
	assert.Equal(t, "Arith", arith.Name)
	assert.Equal(t, "std::machines::Arith", arith.Value.(*ast.Import).Path.String())

	mem := defs[1]
	assert.Equal(t, "Mem", mem.Name)
	assert.True(t, mem.Value.(*ast.Import).Path.Parts[0].Super)

	assert.Equal(t, &ast.ExternalModule{Name: "external"}, defs[2].Value)

	inner, ok := defs[3].Value.(*ast.LocalModule)
	require.True(t, ok)
	require.Len(t, inner.Module.Statements, 1)
	assert.Equal(t, "Inner", inner.Module.Statements[0].Name)

	let, ok := defs[4].Value.(*ast.TypedExpression)
	require.True(t, ok)
	assert.Equal(t, "N", defs[4].Name)
	assert.Equal(t, ast.Int, let.TypeScheme.Type)

	enum, ok := defs[5].Value.(*ast.EnumDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Op", defs[5].Name)
	assert.Len(t, enum.Variants, 2)
}

func TestModuleErrors(t *testing.T) {
	for _, input := range []string{
		"let x;",
		"use super;",
		"reg A;",
		"mod m { ",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseASMModule("test.asm", input)
			perr := requireParseError(t, err)
			assert.Equal(t, SyntaxError, perr.Kind)
		})
	}
}

func TestParseInstructionEntry(t *testing.T) {
	instr, err := ParseInstruction("test.asm", "l: label { pc' = l }")
	require.NoError(t, err)
	require.Len(t, instr.Params.Inputs, 1)
	assert.Equal(t, "l", instr.Params.Inputs[0].Name)

	parenthesized, err := ParseInstruction("test.asm", "(X, Y) -> (Z) = arith.add X, Y -> Z;")
	require.NoError(t, err)
	assert.Len(t, parenthesized.Params.Inputs, 2)
	assert.Len(t, parenthesized.Params.Outputs, 1)
	assert.Equal(t, "X, Y -> Z = arith.add X, Y -> Z;", parenthesized.String())

	indexed, err := ParseInstruction("test.asm", "A[2] { A = 1 }")
	require.NoError(t, err)
	assert.Equal(t, int64(2), indexed.Params.Inputs[0].Index.Int64())
}
