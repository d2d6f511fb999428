package ir

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
)

// Op identifies an instruction.
type Op int

const (
	OpAssign Op = iota
	OpAdd
	OpSub
	OpPrintNumber
	OpPrintText
	OpInput
	OpExit
	OpGoto
	OpIf
	OpLabel
)

var opNames = [...]string{
	OpAssign:      "assign",
	OpAdd:         "add",
	OpSub:         "sub",
	OpPrintNumber: "print_number",
	OpPrintText:   "print_text",
	OpInput:       "input",
	OpExit:        "exit",
	OpGoto:        "goto",
	OpIf:          "if",
	OpLabel:       "label",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// ExprKind distinguishes literals from variable references.
type ExprKind int

const (
	ExprNumber ExprKind = iota
	ExprVariable
)

// Expression is a number literal or a variable reference.
type Expression struct {
	Kind   ExprKind
	Number *big.Int
	Name   ast.Variable
}

// Num builds a literal expression. The value is copied.
func Num(n *big.Int) Expression {
	return Expression{Kind: ExprNumber, Number: new(big.Int).Set(n)}
}

// Ref builds a variable reference.
func Ref(name ast.Variable) Expression {
	return Expression{Kind: ExprVariable, Name: name}
}

func (e Expression) String() string {
	if e.Kind == ExprVariable {
		return fmt.Sprintf("$%q", string(e.Name))
	}
	if e.Number == nil {
		return "0"
	}
	return e.Number.String()
}

// Condition compares two expressions.
type Condition struct {
	Op    ast.ComparisonOperator
	Left  Expression
	Right Expression
}

// Holds reports whether the comparison succeeds for the given operand values.
func (c Condition) Holds(left, right *big.Int) bool {
	cmp := left.Cmp(right)
	switch c.Op {
	case ast.EqualTo:
		return cmp == 0
	case ast.NotEqualTo:
		return cmp != 0
	case ast.GreaterThan:
		return cmp > 0
	case ast.LessThan:
		return cmp < 0
	case ast.GreaterOrEqual:
		return cmp >= 0
	case ast.LessOrEqual:
		return cmp <= 0
	default:
		panic(fmt.Sprintf("ir: unknown comparison %q", c.Op))
	}
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// Instruction is one flat IR step. Which fields are meaningful depends on Op:
// Var for assign/add/sub/print/input, Expr for assign/add/sub/goto, Cond and
// Then for if, Label for label.
type Instruction struct {
	Op    Op
	Var   ast.Variable
	Expr  Expression
	Cond  Condition
	Then  *Instruction
	Label int
}

func (in Instruction) String() string {
	switch in.Op {
	case OpAssign, OpAdd, OpSub:
		return fmt.Sprintf("%s %q %s", in.Op, string(in.Var), in.Expr)
	case OpPrintNumber, OpPrintText, OpInput:
		return fmt.Sprintf("%s %q", in.Op, string(in.Var))
	case OpGoto:
		return fmt.Sprintf("goto %s", in.Expr)
	case OpIf:
		then := "<nil>"
		if in.Then != nil {
			then = in.Then.String()
		}
		return fmt.Sprintf("if %s then %s", in.Cond, then)
	case OpLabel:
		return fmt.Sprintf("label %d", in.Label)
	default:
		return in.Op.String()
	}
}

// Program is a flat instruction list with one label per source block.
type Program struct {
	Instructions []Instruction
}

// Labels maps each label number to the offset of its label instruction.
func (p *Program) Labels() map[int]int {
	labels := make(map[int]int)
	for i, in := range p.Instructions {
		if in.Op == OpLabel {
			labels[in.Label] = i
		}
	}
	return labels
}

// String renders the program as an indented listing.
func (p *Program) String() string {
	var b strings.Builder
	for _, in := range p.Instructions {
		if in.Op != OpLabel {
			b.WriteString("  ")
		}
		b.WriteString(in.String())
		b.WriteString("\n")
	}
	return b.String()
}
