package interpreter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
	"github.com/dhruvjimulia-sys/storyteller/pkg/runtime"
)

// Interpreter executes IR programs. Variable values persist across calls to
// Run, so a session can feed it one program fragment at a time.
type Interpreter struct {
	in  *bufio.Reader
	out io.Writer
	env *runtime.Environment
}

// New returns an interpreter reading input lines from in and writing output
// to out.
func New(in io.Reader, out io.Writer) *Interpreter {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{in: bufio.NewReader(in), out: out, env: runtime.NewEnvironment()}
}

// Environment exposes the variable bindings.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

type control int

const (
	controlNext control = iota
	controlJump
	controlHalt
)

// Run executes prog from its first instruction until an exit instruction or
// the end of the program. Runtime failures are returned as
// *diagnostics.Diagnostic; cancellation of ctx is observed at every jump.
func (i *Interpreter) Run(ctx context.Context, prog *ir.Program) error {
	if prog == nil {
		return nil
	}
	labels := prog.Labels()
	pc := 0
	for pc < len(prog.Instructions) {
		ctl, target, err := i.exec(&prog.Instructions[pc], labels)
		if err != nil {
			return err
		}
		switch ctl {
		case controlHalt:
			return nil
		case controlJump:
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("interpreter: %w", err)
			}
			pc = target
		default:
			pc++
		}
	}
	return nil
}

func (i *Interpreter) exec(in *ir.Instruction, labels map[int]int) (control, int, error) {
	switch in.Op {
	case ir.OpLabel:
		return controlNext, 0, nil
	case ir.OpAssign:
		v, err := i.eval(in.Expr)
		if err != nil {
			return controlNext, 0, err
		}
		i.env.Define(in.Var, v)
	case ir.OpAdd, ir.OpSub:
		current, err := i.lookup(in.Var)
		if err != nil {
			return controlNext, 0, err
		}
		delta, err := i.eval(in.Expr)
		if err != nil {
			return controlNext, 0, err
		}
		if in.Op == ir.OpAdd {
			current.Add(current, delta)
		} else {
			current.Sub(current, delta)
			if current.Sign() < 0 {
				return controlNext, 0, diagnostics.NegativeFeelings(string(in.Var))
			}
		}
		i.env.Define(in.Var, current)
	case ir.OpPrintNumber:
		v, err := i.lookup(in.Var)
		if err != nil {
			return controlNext, 0, err
		}
		if err := i.write(v.String()); err != nil {
			return controlNext, 0, err
		}
	case ir.OpPrintText:
		v, err := i.lookup(in.Var)
		if err != nil {
			return controlNext, 0, err
		}
		if err := i.write(runtime.UnpackText(v)); err != nil {
			return controlNext, 0, err
		}
	case ir.OpInput:
		line, err := i.readLine()
		if err != nil {
			return controlNext, 0, err
		}
		i.env.Define(in.Var, runtime.PackText(line))
	case ir.OpExit:
		return controlHalt, 0, nil
	case ir.OpGoto:
		v, err := i.eval(in.Expr)
		if err != nil {
			return controlNext, 0, err
		}
		if !v.IsInt64() || int64(int(v.Int64())) != v.Int64() {
			return controlNext, 0, diagnostics.PlaceNotFound(v.String())
		}
		offset, ok := labels[int(v.Int64())]
		if !ok {
			return controlNext, 0, diagnostics.PlaceNotFound(v.String())
		}
		return controlJump, offset, nil
	case ir.OpIf:
		holds, err := i.condition(in.Cond)
		if err != nil || !holds {
			return controlNext, 0, err
		}
		if in.Then == nil {
			return controlNext, 0, nil
		}
		return i.exec(in.Then, labels)
	default:
		panic(fmt.Sprintf("interpreter: unknown instruction %s", in.Op))
	}
	return controlNext, 0, nil
}

func (i *Interpreter) condition(c ir.Condition) (bool, error) {
	left, err := i.eval(c.Left)
	if err != nil {
		return false, err
	}
	right, err := i.eval(c.Right)
	if err != nil {
		return false, err
	}
	return c.Holds(left, right), nil
}

func (i *Interpreter) eval(e ir.Expression) (*big.Int, error) {
	if e.Kind == ir.ExprVariable {
		return i.lookup(e.Name)
	}
	if e.Number == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(e.Number), nil
}

func (i *Interpreter) lookup(name ast.Variable) (*big.Int, error) {
	if v, ok := i.env.Lookup(name); ok {
		return v, nil
	}
	return nil, diagnostics.ExistentialCrisis(string(name), suggest(name, i.env.Keys()))
}

func (i *Interpreter) write(s string) error {
	if _, err := io.WriteString(i.out, s); err != nil {
		return diagnostics.VanishingInk(err)
	}
	return nil
}

// readLine returns the next input line without surrounding whitespace. End of
// input reads as an empty line.
func (i *Interpreter) readLine() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", diagnostics.UnrulySpectator(err)
	}
	return strings.TrimSpace(line), nil
}
