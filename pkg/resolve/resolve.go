package resolve

import (
	"fmt"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
	"github.com/dhruvjimulia-sys/storyteller/pkg/keywords"
)

// Resolver discovers variables and rewrites pronouns.
type Resolver struct {
	pronouns keywords.Phrases
}

// New builds a Resolver over the given vocabularies; nil selects the
// built-in ones.
func New(kw *keywords.Set) *Resolver {
	if kw == nil {
		kw = keywords.Default()
	}
	return &Resolver{pronouns: kw.Phrases(keywords.Pronouns)}
}

func (r *Resolver) isPronoun(text string) bool {
	return text != "" && r.pronouns.Contains(text)
}

// Variables collects every statement subject, including those nested in
// conditionals. Pronoun subjects are not declarations. Seed names are added
// as-is.
func (r *Resolver) Variables(prog *ast.Program, seed ...ast.Variable) *ir.VariableSet {
	vars := ir.NewVariableSet(seed...)
	for _, block := range prog.Blocks {
		for _, stmt := range block.Statements {
			r.collect(stmt, vars)
		}
	}
	return vars
}

func (r *Resolver) collect(stmt ast.Statement, vars *ir.VariableSet) {
	if s, ok := stmt.(*ast.IfStatement); ok {
		r.collect(s.Consequent, vars)
		return
	}
	if target, ok := subject(stmt); ok && !r.isPronoun(string(target)) {
		vars.Add(target)
	}
}

func subject(stmt ast.Statement) (ast.Variable, bool) {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		return s.Target, true
	case *ast.AddStatement:
		return s.Target, true
	case *ast.SubStatement:
		return s.Target, true
	case *ast.PrintNumberStatement:
		return s.Target, true
	case *ast.PrintTextStatement:
		return s.Target, true
	case *ast.InputStatement:
		return s.Target, true
	default:
		return "", false
	}
}

// Pronouns returns a copy of prog in which every pronoun slot names the most
// recent known variable of its block. The antecedent never crosses a block
// boundary. Pronouns with no antecedent are reported and replaced by an
// empty name.
func (r *Resolver) Pronouns(prog *ast.Program, vars *ir.VariableSet) (*ast.Program, diagnostics.List) {
	var diags diagnostics.List
	blocks := make([]*ast.Block, 0, len(prog.Blocks))
	for bi, block := range prog.Blocks {
		f := &fold{r: r, vars: vars, block: bi}
		statements := make([]ast.Statement, 0, len(block.Statements))
		for si, stmt := range block.Statements {
			f.sentence = si
			statements = append(statements, f.statement(stmt))
		}
		diags = append(diags, f.diags...)
		blocks = append(blocks, ast.NewBlock(statements))
	}
	return ast.NewProgram(blocks), diags
}

// fold carries the antecedent through one block, left to right.
type fold struct {
	r          *Resolver
	vars       *ir.VariableSet
	antecedent ast.Variable
	block      int
	sentence   int
	diags      diagnostics.List
}

func (f *fold) lonely(pronoun string) {
	f.diags = append(f.diags, diagnostics.LonelyPronoun(pronoun).At(f.block, f.sentence))
}

func (f *fold) target(v ast.Variable) ast.Variable {
	if f.r.isPronoun(string(v)) {
		if f.antecedent == "" {
			f.lonely(string(v))
		}
		return f.antecedent
	}
	if f.vars.Has(v) {
		f.antecedent = v
	}
	return v
}

func (f *fold) value(v ast.Value) ast.Value {
	if name := v.Normalized(); f.r.isPronoun(string(name)) {
		if f.antecedent == "" {
			f.lonely(string(name))
		}
		return ast.Value(f.antecedent)
	}
	if name, ok := f.vars.Lookup(v); ok {
		f.antecedent = name
	}
	return v
}

func (f *fold) statement(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		target := f.target(s.Target)
		return ast.NewAssignStatement(target, f.value(s.Value))
	case *ast.AddStatement:
		target := f.target(s.Target)
		return ast.NewAddStatement(target, f.value(s.Value))
	case *ast.SubStatement:
		target := f.target(s.Target)
		return ast.NewSubStatement(target, f.value(s.Value))
	case *ast.PrintNumberStatement:
		return ast.NewPrintNumberStatement(f.target(s.Target))
	case *ast.PrintTextStatement:
		return ast.NewPrintTextStatement(f.target(s.Target))
	case *ast.InputStatement:
		return ast.NewInputStatement(f.target(s.Target))
	case *ast.GotoStatement:
		return ast.NewGotoStatement(f.value(s.Destination))
	case *ast.IfStatement:
		left := f.value(s.Condition.Left)
		right := f.value(s.Condition.Right)
		cond := ast.NewCondition(s.Condition.Operator, left, right)
		return ast.NewIfStatement(cond, f.statement(s.Consequent))
	case *ast.ExitStatement:
		return ast.NewExitStatement()
	case *ast.Comment:
		return ast.NewComment()
	default:
		panic(fmt.Sprintf("resolve: unhandled statement %T", stmt))
	}
}
