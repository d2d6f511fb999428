package lower

import (
	"fmt"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
)

// Lower flattens a resolved program into IR. Each block is introduced by a
// label carrying its index.
func Lower(prog *ast.Program, vars *ir.VariableSet) *ir.Program {
	l := &lowerer{vars: vars}
	out := &ir.Program{}
	for i, block := range prog.Blocks {
		out.Instructions = append(out.Instructions, ir.Instruction{Op: ir.OpLabel, Label: i})
		for _, stmt := range block.Statements {
			if in, ok := l.statement(stmt); ok {
				out.Instructions = append(out.Instructions, in)
			}
		}
	}
	return out
}

type lowerer struct {
	vars *ir.VariableSet
}

// expression turns a value slot into a variable reference when it names a
// declared variable and into a decoded literal otherwise.
func (l *lowerer) expression(v ast.Value) ir.Expression {
	if name, ok := l.vars.Lookup(v); ok {
		return ir.Ref(name)
	}
	return ir.Num(DecodePoetic(string(v)))
}

func (l *lowerer) statement(stmt ast.Statement) (ir.Instruction, bool) {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		return ir.Instruction{Op: ir.OpAssign, Var: s.Target, Expr: l.expression(s.Value)}, true
	case *ast.AddStatement:
		return ir.Instruction{Op: ir.OpAdd, Var: s.Target, Expr: l.expression(s.Value)}, true
	case *ast.SubStatement:
		return ir.Instruction{Op: ir.OpSub, Var: s.Target, Expr: l.expression(s.Value)}, true
	case *ast.PrintNumberStatement:
		return ir.Instruction{Op: ir.OpPrintNumber, Var: s.Target}, true
	case *ast.PrintTextStatement:
		return ir.Instruction{Op: ir.OpPrintText, Var: s.Target}, true
	case *ast.InputStatement:
		return ir.Instruction{Op: ir.OpInput, Var: s.Target}, true
	case *ast.ExitStatement:
		return ir.Instruction{Op: ir.OpExit}, true
	case *ast.GotoStatement:
		return ir.Instruction{Op: ir.OpGoto, Expr: l.expression(s.Destination)}, true
	case *ast.IfStatement:
		then, ok := l.statement(s.Consequent)
		if !ok {
			return ir.Instruction{}, false
		}
		cond := ir.Condition{
			Op:    s.Condition.Operator,
			Left:  l.expression(s.Condition.Left),
			Right: l.expression(s.Condition.Right),
		}
		return ir.Instruction{Op: ir.OpIf, Cond: cond, Then: &then}, true
	case *ast.Comment:
		return ir.Instruction{}, false
	default:
		panic(fmt.Sprintf("lower: unhandled statement %T", stmt))
	}
}
