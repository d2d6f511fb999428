package resolve

import (
	"reflect"
	"testing"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
	"github.com/dhruvjimulia-sys/storyteller/pkg/lexer"
	"github.com/dhruvjimulia-sys/storyteller/pkg/parser"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, diags := parser.New(nil).ParseProgram(lexer.Normalize(lexer.Tokenize(source)))
	if len(diags) > 0 {
		t.Fatalf("parse: %v", diags)
	}
	return prog
}

func TestVariablesIncludesNestedSubjectsAndSkipsPronouns(t *testing.T) {
	prog := parse(t, "Bob was cool. He was great.\n\nIf bob is 1, then the Dragon's hoard felt as good as gold. \"x\" Alice said. Carl looked up to the skies beyond, waiting for an answer.")
	vars := New(nil).Variables(prog, "seeded")
	want := []ast.Variable{"alice", "bob", "carl", "dragon's hoard", "seeded"}
	if got := vars.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Variables = %v, want %v", got, want)
	}
}

func TestPronounsResolveToAntecedent(t *testing.T) {
	r := New(nil)
	prog := parse(t, "Bob was cool. He was great.")
	vars := r.Variables(prog)
	resolved, diags := r.Pronouns(prog, vars)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	want := []ast.Statement{
		ast.NewAssignStatement("bob", "cool"),
		ast.NewAssignStatement("bob", "great"),
	}
	if got := resolved.Blocks[0].Statements; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
	if prog.Blocks[0].Statements[1].(*ast.AssignStatement).Target != "he" {
		t.Fatalf("input tree was modified")
	}
}

func TestPronounsInValueSlotsAndConditions(t *testing.T) {
	r := New(nil)
	prog := parse(t, "Ann was 1. Bob was 2. Bob felt as good as her. If ann is greater than him, then he went to them.")
	vars := r.Variables(prog)
	resolved, diags := r.Pronouns(prog, vars)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	got := resolved.Blocks[0].Statements
	// "her" follows bob, so it names bob; the condition's left operand moves
	// the antecedent to ann before "him" is read.
	if add := got[2].(*ast.AddStatement); add.Target != "bob" || add.Value != "bob" {
		t.Fatalf("add = %#v", add)
	}
	ifs := got[3].(*ast.IfStatement)
	if ifs.Condition.Left != "ann" || ifs.Condition.Right != "ann" {
		t.Fatalf("condition = %#v", ifs.Condition)
	}
	if g := ifs.Consequent.(*ast.GotoStatement); g.Destination != "ann" {
		t.Fatalf("consequent = %#v", g)
	}
}

func TestPronounStateResetsPerBlock(t *testing.T) {
	r := New(nil)
	prog := parse(t, "Bob was cool.\n\nHe was great. \"x\" she said.")
	resolved, diags := r.Pronouns(prog, r.Variables(prog))
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", diags)
	}
	for i, d := range diags {
		if d.Kind != diagnostics.KindLonelyPronoun || d.Block != 1 || d.Sentence != i {
			t.Fatalf("unexpected diagnostic %#v", d)
		}
	}
	if got := resolved.Blocks[1].Statements[0]; !reflect.DeepEqual(got, ast.NewAssignStatement("", "great")) {
		t.Fatalf("expected empty placeholder, got %#v", got)
	}
}

func TestSeededVariablesBecomeAntecedents(t *testing.T) {
	r := New(nil)
	prog := parse(t, "\"x\" Bob said. \"y\" he said.")
	vars := ir.NewVariableSet("bob")
	resolved, diags := r.Pronouns(prog, vars)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	if got := resolved.Blocks[0].Statements[1]; !reflect.DeepEqual(got, ast.NewPrintNumberStatement("bob")) {
		t.Fatalf("got %#v", got)
	}
}
