package ir

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
)

func TestConditionHolds(t *testing.T) {
	one, two := big.NewInt(1), big.NewInt(2)
	cases := []struct {
		op          ast.ComparisonOperator
		left, right *big.Int
		want        bool
	}{
		{ast.EqualTo, one, one, true},
		{ast.EqualTo, one, two, false},
		{ast.NotEqualTo, one, two, true},
		{ast.GreaterThan, two, one, true},
		{ast.GreaterThan, one, one, false},
		{ast.LessThan, one, two, true},
		{ast.GreaterOrEqual, one, one, true},
		{ast.GreaterOrEqual, one, two, false},
		{ast.LessOrEqual, one, one, true},
		{ast.LessOrEqual, two, one, false},
	}
	for _, tc := range cases {
		if got := (Condition{Op: tc.op}).Holds(tc.left, tc.right); got != tc.want {
			t.Fatalf("%s(%s, %s) = %v, want %v", tc.op, tc.left, tc.right, got, tc.want)
		}
	}
}

func TestNumCopiesValue(t *testing.T) {
	n := big.NewInt(5)
	e := Num(n)
	n.SetInt64(9)
	if e.Number.Int64() != 5 {
		t.Fatalf("Num shared its argument")
	}
}

func TestProgramLabelsAndListing(t *testing.T) {
	prog := &Program{Instructions: []Instruction{
		{Op: OpLabel, Label: 0},
		{Op: OpAssign, Var: "bob", Expr: Num(big.NewInt(13))},
		{Op: OpLabel, Label: 1},
		{Op: OpIf, Cond: Condition{Op: ast.GreaterThan, Left: Ref("bob"), Right: Num(big.NewInt(0))},
			Then: &Instruction{Op: OpGoto, Expr: Num(big.NewInt(1))}},
		{Op: OpPrintNumber, Var: "bob"},
		{Op: OpExit},
	}}
	if got, want := prog.Labels(), map[int]int{0: 0, 1: 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels = %v, want %v", got, want)
	}
	want := "label 0\n" +
		"  assign \"bob\" 13\n" +
		"label 1\n" +
		"  if $\"bob\" GreaterThan 0 then goto 1\n" +
		"  print_number \"bob\"\n" +
		"  exit\n"
	if got := prog.String(); got != want {
		t.Fatalf("listing mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestVariableSet(t *testing.T) {
	vs := NewVariableSet("zed", "alice", "", "alice")
	if vs.Len() != 2 || !vs.Has("zed") || vs.Has("") {
		t.Fatalf("unexpected set contents %v", vs.Sorted())
	}
	if got := vs.Sorted(); !reflect.DeepEqual(got, []ast.Variable{"alice", "zed"}) {
		t.Fatalf("Sorted = %v", got)
	}
	var missing *VariableSet
	if missing.Has("x") || missing.Len() != 0 {
		t.Fatalf("nil set should be empty")
	}
}

func TestVariableSetLookup(t *testing.T) {
	vs := NewVariableSet("a b", "dragon")
	if name, ok := vs.Lookup("the Dragon's"); !ok || name != "dragon" {
		t.Fatalf("Lookup normalized = %q, %v", name, ok)
	}
	if name, ok := vs.Lookup("a b"); !ok || name != "a b" {
		t.Fatalf("Lookup raw = %q, %v", name, ok)
	}
	if _, ok := vs.Lookup("a sunny day"); ok {
		t.Fatalf("expected literal to miss")
	}
}
