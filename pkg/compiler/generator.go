package compiler

import (
	"fmt"
	"sort"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
)

type generator struct {
	opts     Options
	mangler  *nameMangler
	idents   map[ast.Variable]string
	order    []ast.Variable
	labels   []int
	defined  map[int]bool
	jumped   map[int]bool
	dispatch bool
	warnings []string
}

func newGenerator(opts Options) *generator {
	return &generator{
		opts:    opts,
		mangler: newNameMangler(),
		idents:  make(map[ast.Variable]string),
		defined: make(map[int]bool),
		jumped:  make(map[int]bool),
	}
}

// collect assigns Go identifiers to every variable and works out which labels
// are jump targets, since Go rejects unused labels.
func (g *generator) collect(prog *ir.Program, vars *ir.VariableSet) {
	names := make(map[ast.Variable]struct{})
	for _, name := range vars.Sorted() {
		names[name] = struct{}{}
	}
	for i := range prog.Instructions {
		g.scan(&prog.Instructions[i], names)
	}
	for name := range names {
		g.order = append(g.order, name)
	}
	sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
	for _, name := range g.order {
		g.idents[name] = g.mangler.unique(variableIdent(name))
	}

	sort.Ints(g.labels)
	for i := range prog.Instructions {
		g.scanJumps(&prog.Instructions[i])
	}
	if g.dispatch {
		for _, label := range g.labels {
			g.jumped[label] = true
		}
	}
}

func (g *generator) scan(in *ir.Instruction, names map[ast.Variable]struct{}) {
	switch in.Op {
	case ir.OpLabel:
		if !g.defined[in.Label] {
			g.defined[in.Label] = true
			g.labels = append(g.labels, in.Label)
		}
	case ir.OpAssign, ir.OpAdd, ir.OpSub, ir.OpPrintNumber, ir.OpPrintText, ir.OpInput:
		names[in.Var] = struct{}{}
	}
	for _, e := range []ir.Expression{in.Expr, in.Cond.Left, in.Cond.Right} {
		if e.Kind == ir.ExprVariable {
			names[e.Name] = struct{}{}
		}
	}
	if in.Op == ir.OpIf && in.Then != nil {
		g.scan(in.Then, names)
	}
}

func (g *generator) scanJumps(in *ir.Instruction) {
	switch in.Op {
	case ir.OpGoto:
		if in.Expr.Kind == ir.ExprVariable {
			g.dispatch = true
			return
		}
		if label, ok := g.literalLabel(in.Expr); ok {
			g.jumped[label] = true
			return
		}
		g.warnings = append(g.warnings, fmt.Sprintf("compiler: goto %s targets no paragraph", in.Expr))
	case ir.OpIf:
		if in.Then != nil {
			g.scanJumps(in.Then)
		}
	}
}

// literalLabel reports the label a literal goto lands on, if it exists.
func (g *generator) literalLabel(e ir.Expression) (int, bool) {
	if e.Number == nil {
		return 0, g.defined[0]
	}
	if !e.Number.IsInt64() {
		return 0, false
	}
	n := e.Number.Int64()
	if int64(int(n)) != n {
		return 0, false
	}
	return int(n), g.defined[int(n)]
}
