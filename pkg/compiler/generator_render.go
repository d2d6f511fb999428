package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
)

var compiledImports = []string{"bufio", "fmt", "io", "math/big", "os", "strings"}

func (g *generator) render(prog *ir.Program) (map[string][]byte, error) {
	files := make(map[string][]byte)
	compiled, err := g.renderCompiled(prog)
	if err != nil {
		return nil, err
	}
	files["compiled.go"] = compiled
	if g.opts.EmitMain {
		mainSrc, err := g.renderMain()
		if err != nil {
			return nil, err
		}
		files["main.go"] = mainSrc
	}
	if g.opts.ModulePath != "" {
		files["go.mod"] = []byte(fmt.Sprintf("module %s\n\ngo 1.22\n", g.opts.ModulePath))
	}
	return files, nil
}

func (g *generator) renderCompiled(prog *ir.Program) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by storyteller. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", g.opts.PackageName)
	fmt.Fprintf(&buf, "import (\n")
	for _, imp := range compiledImports {
		fmt.Fprintf(&buf, "\t%q\n", imp)
	}
	fmt.Fprintf(&buf, ")\n\n")

	fmt.Fprintf(&buf, "// Run executes the story, reading input lines from in and writing to out.\n")
	fmt.Fprintf(&buf, "// It returns 0 on success and 1 after reporting a runtime error on stderr.\n")
	fmt.Fprintf(&buf, "func Run(in io.Reader, out io.Writer) int {\n")
	fmt.Fprintf(&buf, "\treader := bufio.NewReader(in)\n")
	fmt.Fprintf(&buf, "\t_ = reader\n")
	for _, name := range g.order {
		ident := g.idents[name]
		fmt.Fprintf(&buf, "\t%s := new(big.Int) // %s\n", ident, strconv.Quote(string(name)))
		fmt.Fprintf(&buf, "\t_ = %s\n", ident)
	}
	if g.dispatch {
		fmt.Fprintf(&buf, "\tvar target *big.Int\n")
	}
	fmt.Fprintf(&buf, "\n")

	for i := range prog.Instructions {
		g.renderInstruction(&buf, &prog.Instructions[i], 1)
	}
	fmt.Fprintf(&buf, "\treturn 0\n")
	if g.dispatch {
		g.renderDispatch(&buf)
	}
	fmt.Fprintf(&buf, "}\n\n")

	buf.WriteString(runtimeHelpers)
	return formatSource(buf.Bytes())
}

func (g *generator) renderInstruction(buf *bytes.Buffer, in *ir.Instruction, depth int) {
	indent := bytes.Repeat([]byte{'\t'}, depth)
	line := func(tmpl string, args ...any) {
		buf.Write(indent)
		fmt.Fprintf(buf, tmpl, args...)
		buf.WriteByte('\n')
	}
	switch in.Op {
	case ir.OpLabel:
		if g.jumped[in.Label] {
			fmt.Fprintf(buf, "%s:\n", labelIdent(in.Label))
		}
	case ir.OpAssign:
		line("%s.Set(%s)", g.ident(in.Var), g.expression(in.Expr))
	case ir.OpAdd:
		line("%s.Add(%s, %s)", g.ident(in.Var), g.ident(in.Var), g.expression(in.Expr))
	case ir.OpSub:
		v := g.ident(in.Var)
		line("%s.Sub(%s, %s)", v, v, g.expression(in.Expr))
		line("if %s.Sign() < 0 {", v)
		line("\treturn storyFail(%s, \"\")", strconv.Quote(diagnostics.NegativeFeelings(string(in.Var)).Error()))
		line("}")
	case ir.OpPrintNumber:
		line("if err := storyWrite(out, %s.String()); err != nil {", g.ident(in.Var))
		line("\treturn storyFail(%s, err.Error())", strconv.Quote(diagnostics.VanishingInk(nil).Error()))
		line("}")
	case ir.OpPrintText:
		line("if err := storyWrite(out, storyUnpack(%s)); err != nil {", g.ident(in.Var))
		line("\treturn storyFail(%s, err.Error())", strconv.Quote(diagnostics.VanishingInk(nil).Error()))
		line("}")
	case ir.OpInput:
		line("if line, err := storyReadLine(reader); err != nil {")
		line("\treturn storyFail(%s, err.Error())", strconv.Quote(diagnostics.UnrulySpectator(nil).Error()))
		line("} else {")
		line("\t%s.Set(storyPack(line))", g.ident(in.Var))
		line("}")
	case ir.OpExit:
		line("return 0")
	case ir.OpGoto:
		if in.Expr.Kind == ir.ExprVariable {
			line("target = %s", g.ident(in.Expr.Name))
			line("goto dispatch")
			return
		}
		if label, ok := g.literalLabel(in.Expr); ok {
			line("goto %s", labelIdent(label))
			return
		}
		line("return storyFail(%s, \"\")", strconv.Quote(diagnostics.PlaceNotFound(in.Expr.String()).Error()))
	case ir.OpIf:
		line("if %s {", g.condition(in.Cond))
		if in.Then != nil {
			g.renderInstruction(buf, in.Then, depth+1)
		}
		line("}")
	default:
		panic(fmt.Sprintf("compiler: unknown instruction %s", in.Op))
	}
}

func (g *generator) renderDispatch(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "dispatch:\n")
	fmt.Fprintf(buf, "\tswitch target.String() {\n")
	for _, label := range g.labels {
		fmt.Fprintf(buf, "\tcase %q:\n", strconv.Itoa(label))
		fmt.Fprintf(buf, "\t\tgoto %s\n", labelIdent(label))
	}
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "\treturn storyFail(%s, \"no paragraph is labelled \"+target.String())\n",
		strconv.Quote(diagnostics.PlaceNotFound("").Error()))
}

func (g *generator) ident(name ast.Variable) string {
	if ident, ok := g.idents[name]; ok {
		return ident
	}
	panic(fmt.Sprintf("compiler: undeclared variable %q", name))
}

func (g *generator) expression(e ir.Expression) string {
	if e.Kind == ir.ExprVariable {
		return g.ident(e.Name)
	}
	return fmt.Sprintf("storyNum(%q)", e.String())
}

func (g *generator) condition(c ir.Condition) string {
	var op string
	switch c.Op {
	case ast.EqualTo:
		op = "=="
	case ast.NotEqualTo:
		op = "!="
	case ast.GreaterThan:
		op = ">"
	case ast.LessThan:
		op = "<"
	case ast.GreaterOrEqual:
		op = ">="
	case ast.LessOrEqual:
		op = "<="
	default:
		panic(fmt.Sprintf("compiler: unknown comparison %q", c.Op))
	}
	return fmt.Sprintf("%s.Cmp(%s) %s 0", g.expression(c.Left), g.expression(c.Right), op)
}

func (g *generator) renderMain() ([]byte, error) {
	if g.opts.PackageName != "main" {
		return nil, fmt.Errorf("compiler: EmitMain requires package name 'main'")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by storyteller. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package main\n\n")
	fmt.Fprintf(&buf, "import %q\n\n", "os")
	fmt.Fprintf(&buf, "func main() {\n")
	fmt.Fprintf(&buf, "\tos.Exit(Run(os.Stdin, os.Stdout))\n")
	fmt.Fprintf(&buf, "}\n")
	return formatSource(buf.Bytes())
}

const runtimeHelpers = `func storyNum(digits string) *big.Int {
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		panic("story: invalid literal " + digits)
	}
	return n
}

func storyWrite(out io.Writer, s string) error {
	_, err := io.WriteString(out, s)
	return err
}

func storyReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func storyPack(s string) *big.Int {
	n := new(big.Int)
	base := big.NewInt(1000)
	for _, r := range s {
		if r >= 1000 {
			r = '?'
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(r)))
	}
	return n
}

func storyUnpack(n *big.Int) string {
	if n.Sign() <= 0 {
		return ""
	}
	var digits []rune
	rest := new(big.Int).Set(n)
	base := big.NewInt(1000)
	digit := new(big.Int)
	for rest.Sign() > 0 {
		rest.QuoRem(rest, base, digit)
		digits = append(digits, rune(digit.Int64()))
	}
	var b strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteRune(digits[i])
	}
	return b.String()
}

func storyFail(message, detail string) int {
	fmt.Fprintln(os.Stderr, message)
	if detail != "" {
		fmt.Fprintln(os.Stderr, detail)
	}
	return 1
}
`

func formatSource(src []byte) ([]byte, error) {
	formatted, err := format.Source(src)
	if err != nil {
		return src, fmt.Errorf("compiler: format generated source: %w", err)
	}
	return formatted, nil
}
