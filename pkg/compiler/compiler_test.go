package compiler

import (
	"go/parser"
	"go/token"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/driver"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
)

func compileStory(t *testing.T, source string, opts Options) *Result {
	t.Helper()
	comp, err := driver.Compile([]byte(source), driver.Options{})
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	if err := comp.Err(); err != nil {
		t.Fatalf("diagnostics: %v", err)
	}
	result, err := New(opts).Compile(comp.Program, comp.Variables)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return result
}

func parseGo(t *testing.T, name string, src []byte) {
	t.Helper()
	if _, err := parser.ParseFile(token.NewFileSet(), name, src, parser.AllErrors); err != nil {
		t.Fatalf("generated %s does not parse: %v\n%s", name, err, src)
	}
}

func TestCompileEmitsParsableSource(t *testing.T) {
	result := compileStory(t, "Counter was bye.\n\n\"Tick\" Counter said.\nCounter felt as sad as i.\nIf counter is greater than everything, then go to a.", Options{})
	src, ok := result.Files["compiled.go"]
	if !ok {
		t.Fatalf("missing compiled.go, got %v", result.Files)
	}
	parseGo(t, "compiled.go", src)
	text := string(src)
	for _, want := range []string{
		"package story\n",
		"func Run(in io.Reader, out io.Writer) int {",
		"v_counter := new(big.Int)",
		"label_1:",
		"goto label_1",
		"if v_counter.Cmp(storyNum(\"0\")) > 0 {",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("generated source missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "label_0:") {
		t.Fatalf("unreferenced label emitted:\n%s", text)
	}
	if strings.Contains(text, "dispatch:") {
		t.Fatalf("dispatch emitted without computed gotos:\n%s", text)
	}
	if _, ok := result.Files["main.go"]; ok {
		t.Fatalf("main.go emitted without EmitMain")
	}
}

func TestCompileComputedGotoUsesDispatch(t *testing.T) {
	result := compileStory(t, "Bob was 1. Bob is bob.\n\nBob felt as good as bob. Bob go to bob.\n\n\"Done\" Bob said.", Options{})
	src := result.Files["compiled.go"]
	parseGo(t, "compiled.go", src)
	text := string(src)
	for _, want := range []string{"dispatch:", "target = v_bob", "case \"0\":", "goto label_0", "case \"2\":", "goto label_2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("generated source missing %q:\n%s", want, text)
		}
	}
}

func TestCompileMissingLiteralLabelWarns(t *testing.T) {
	result := compileStory(t, "Bob went to the moon.", Options{})
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "goto 34") {
		t.Fatalf("warnings = %v", result.Warnings)
	}
	text := string(result.Files["compiled.go"])
	if !strings.Contains(text, "return storyFail(") || strings.Contains(text, "goto label_34") {
		t.Fatalf("expected runtime failure for missing label:\n%s", text)
	}
}

func TestCompileEmitMain(t *testing.T) {
	result := compileStory(t, "Bob was a dog.", Options{EmitMain: true, ModulePath: "example.com/tale"})
	main, ok := result.Files["main.go"]
	if !ok {
		t.Fatalf("missing main.go")
	}
	parseGo(t, "main.go", main)
	if !strings.Contains(string(main), "os.Exit(Run(os.Stdin, os.Stdout))") {
		t.Fatalf("unexpected main.go:\n%s", main)
	}
	if !strings.HasPrefix(string(result.Files["compiled.go"]), "// Code generated by storyteller. DO NOT EDIT.\n\npackage main\n") {
		t.Fatalf("EmitMain should default the package to main")
	}
	if got := string(result.Files["go.mod"]); !strings.HasPrefix(got, "module example.com/tale\n") {
		t.Fatalf("go.mod = %q", got)
	}
}

func TestCompileRejectsBadOptions(t *testing.T) {
	prog := &ir.Program{}
	if _, err := New(Options{PackageName: "lib", EmitMain: true}).Compile(prog, ir.NewVariableSet()); err == nil {
		t.Fatalf("expected EmitMain with non-main package to fail")
	}
	if _, err := New(Options{PackageName: "Bad-Name"}).Compile(prog, ir.NewVariableSet()); err == nil {
		t.Fatalf("expected invalid package name to fail")
	}
	if _, err := New(Options{}).Compile(nil, nil); err == nil {
		t.Fatalf("expected nil program to fail")
	}
}

func TestCompileDeclaresReferencedVariables(t *testing.T) {
	prog := &ir.Program{Instructions: []ir.Instruction{
		{Op: ir.OpLabel, Label: 0},
		{Op: ir.OpAssign, Var: "bob's", Expr: ir.Ref("bob s")},
		{Op: ir.OpAssign, Var: "go", Expr: ir.Num(big.NewInt(3))},
	}}
	result, err := New(Options{}).Compile(prog, ir.NewVariableSet())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	src := result.Files["compiled.go"]
	parseGo(t, "compiled.go", src)
	text := string(src)
	for _, want := range []string{"v_bob_s := new(big.Int)", "v_bob_s_1 := new(big.Int)", "v_go := new(big.Int)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("generated source missing %q:\n%s", want, text)
		}
	}
}

func TestNameMangler(t *testing.T) {
	m := newNameMangler()
	got := []string{m.unique("a"), m.unique("a_1"), m.unique("a"), m.unique("")}
	want := []string{"a", "a_1", "a_2", "_"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unique = %v, want %v", got, want)
		}
	}
	if sanitizeIdent("9 lives") != "_9_lives" || sanitizeIdent("type") != "_type" || sanitizeIdent("café") != "caf_" {
		t.Fatalf("unexpected sanitizeIdent results")
	}
	if variableIdent(ast.Variable("old king")) != "v_old_king" {
		t.Fatalf("variableIdent = %q", variableIdent("old king"))
	}
	if variableIdent(ast.Variable("type")) != "v_type" || variableIdent(ast.Variable("")) != "v__" {
		t.Fatalf("variableIdent escaped a keyword behind its prefix: %q", variableIdent("type"))
	}
}

func TestResultWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	result := &Result{Files: map[string][]byte{"compiled.go": []byte("package story\n")}}
	if err := result.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "compiled.go")); err != nil || string(data) != "package story\n" {
		t.Fatalf("read back = %q, %v", data, err)
	}
	bad := &Result{Files: map[string][]byte{"../escape.go": nil}}
	if err := bad.Write(dir); err == nil {
		t.Fatalf("expected nested path to be rejected")
	}
	var missing *Result
	if err := missing.Write(dir); err == nil {
		t.Fatalf("expected nil result error")
	}
}
