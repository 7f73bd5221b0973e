package parser

import (
	"math/big"
	"reflect"
	"testing"

	"pilasm/internal/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	positionType = reflect.TypeOf(ast.Position{})
	bigIntType   = reflect.TypeOf((*big.Int)(nil))
)

// normalize zeroes every source position and rebuilds every *big.Int from
// its decimal text, so trees parsed from differently formatted sources
// compare equal.
func normalize(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		if v.Type() == bigIntType {
			if v.CanSet() {
				n, _ := new(big.Int).SetString(v.Interface().(*big.Int).String(), 10)
				v.Set(reflect.ValueOf(n))
			}
			return
		}
		normalize(v.Elem())
	case reflect.Interface:
		if !v.IsNil() {
			normalize(v.Elem())
		}
	case reflect.Struct:
		if v.Type() == positionType {
			if v.CanSet() {
				v.Set(reflect.Zero(positionType))
			}
			return
		}
		for i := 0; i < v.NumField(); i++ {
			normalize(v.Field(i))
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			normalize(v.Index(i))
		}
	}
}

func normalized[T any](tree T) T {
	normalize(reflect.ValueOf(&tree))
	return tree
}

const pilRoundTripSource = `
include "std/utils.pil";
namespace Main(2**16);
constant %N = 16;
let N = 8;
let w;
let x:int = -1;
let<T1, T2> fold: int, (int -> T1), T2, (T2, T1 -> T2) -> T2 = |length, f, initial, folder|
    match length { 0 => initial, _ => folder(fold(length - 1, f, initial, folder), f(length - 1)) };
let<T: Add + FromLiteral> sum: T[] -> T = |arr| arr[0] + arr[1];
let pick = |[a, .., b], (c, _), Some(d), "s", -3| a;
let nested = |x| |y| x * -y + y ** 2;
let blocky = |i| { let (a, b) = (i, i + 1); let c; f(a); if a < b { a } else { (b,) } };
let misc = [1, 0x10, 1_000][std::convert::int::<fe>(2)];
let input = query |i| ${ f(i) };
let order = 1 + 2 * 3 - 4 / 5 % 6 << 1 | 2 & 3 ^ 4 || !x && y != z;
enum Option<T> { None, Some(T), Pair(int, fe[2]) }
enum Empty { }
public out = Main.x[2](%N - 1);
public first = y(0);
pol x = a * b;
pol constant FIRST, LAST[2];
col fixed ISLAST(i) { if i == N - 1 { 1 } else { 0 } };
pol constant BYTE = [0, 1]* + [5] + [7]*;
col fixed ID = |i| i;
col fixed PICKED = ([1, 2])[0];
col fixed WRAPPED = ([1, 2]);
col witness wit[16];
pol commit a, b;
col witness stage(1) c;
col witness q(i) query f(i);
x' = x + 1;
-x' = 0;
sel { a, b } in { c, d };
{ a } is s2 { b };
x in y;
{ a, b } connect { c, d };
equals_twenty(sum(16, |i| wit[i]));
({ 1 }) = 2;
`

const asmRoundTripSource = `
use std::machines::Arith;
use super::utils::Memory as Mem;
mod external;
mod empty { }
mod inner {
    machine Inner { }
};
let N: int = 8;
let<T> id: T -> T = |x| x;
enum Op { Add, Mul }
machine Main(mem: Memory, arith: ::std::Arith) with degree: 2**8, latch: latch, operation_id: op, call_selectors: sel {
    Arith arith;
    std::machines::Memory memory;
    reg pc[@pc];
    reg X[<=];
    reg Y[@r];
    reg A;
    instr jmp l: label { pc' = l }
    instr check (X, Y) -> Z { X in sel { Y }, Z = X + Y }
    instr nop {}
    instr add X, Y -> Z = arith.add X, Y -> Z;
    instr store X ~ mem.store X;
    instr get -> Z = regs.get -> Z;
    link instr_add => arith.add X, Y -> Z;
    link 1 ~> mem.load A -> B;
    operation add<0> A, B -> C;
    operation get -> C;
    operation reset;
    pol commit x;
    col fixed FIRST = [1] + [0]*;
    x' = x + 1;
    { x } in { FIRST };
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
    function empty { }
}
`

func TestPILRoundTrip(t *testing.T) {
	original, err := ParsePILFile("test.pil", pilRoundTripSource)
	require.NoError(t, err)

	printed := original.String()
	reparsed, err := ParsePILFile("printed.pil", printed)
	require.NoError(t, err, "reparsing printed source:\n%s", printed)

	require.Len(t, reparsed.Statements, len(original.Statements))
	for i := range original.Statements {
		assert.Equal(t, normalized(original.Statements[i]), normalized(reparsed.Statements[i]),
			"statement %d: %s", i, original.Statements[i])
	}
	assert.Equal(t, printed, reparsed.String(), "printing is not stable")
}

func TestArrayLeadingDefinitionKeepsItsKind(t *testing.T) {
	for src, printed := range map[string]string{
		"col fixed x = ([1, 2])[0];": "pol constant x = ([1, 2][0]);\n",
		"col fixed x = ([1, 2]);":    "pol constant x = ([1, 2]);\n",
		"col fixed x = [1, 2];":      "pol constant x = [1, 2];\n",
	} {
		t.Run(src, func(t *testing.T) {
			original, err := ParsePILFile("test.pil", src)
			require.NoError(t, err)
			require.Equal(t, printed, original.String())

			reparsed, err := ParsePILFile("printed.pil", original.String())
			require.NoError(t, err)
			assert.Equal(t, normalized(original), normalized(reparsed))
		})
	}
}

func TestASMRoundTrip(t *testing.T) {
	original, err := ParseASMModule("test.asm", asmRoundTripSource)
	require.NoError(t, err)

	printed := original.String()
	reparsed, err := ParseASMModule("printed.asm", printed)
	require.NoError(t, err, "reparsing printed source:\n%s", printed)

	assert.Equal(t, normalized(original), normalized(reparsed))
	assert.Equal(t, printed, reparsed.String(), "printing is not stable")
}

func TestExpressionRoundTrip(t *testing.T) {
	for _, src := range []string{
		"2 ** 3 ** 2",
		"(-2) ** 2",
		"-(a')",
		"!(!x)",
		"(a < b) < c",
		"f(1)(2)[3]'",
		"(|x| x)(1)",
		"constr || x = 1",
		`"tab\there \"quoted\" \\ \0"`,
		"match x { }",
		"(a,)",
		"()",
		"[]",
		"${ x }",
		":out",
		"%N",
	} {
		t.Run(src, func(t *testing.T) {
			original := mustParseExpr(t, src)
			reparsed := mustParseExpr(t, original.String())
			assert.Equal(t, normalized(original), normalized(reparsed))
		})
	}
}
