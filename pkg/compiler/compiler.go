package compiler

import (
	"fmt"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
)

type Options struct {
	PackageName string
	EmitMain    bool
	// ModulePath, when set, adds a go.mod so the output builds on its own.
	ModulePath string
}

type Result struct {
	Files    map[string][]byte
	Warnings []string
}

type Compiler struct {
	opts Options
}

func New(opts Options) *Compiler {
	if opts.PackageName == "" {
		if opts.EmitMain {
			opts.PackageName = "main"
		} else {
			opts.PackageName = "story"
		}
	}
	return &Compiler{opts: opts}
}

// Compile renders prog as Go source. vars lists the variables to declare;
// names referenced only by the program are declared as well.
func (c *Compiler) Compile(prog *ir.Program, vars *ir.VariableSet) (*Result, error) {
	if prog == nil {
		return nil, fmt.Errorf("compiler: missing program")
	}
	if !packageNamePattern.MatchString(c.opts.PackageName) {
		return nil, fmt.Errorf("compiler: invalid package name %q", c.opts.PackageName)
	}
	gen := newGenerator(c.opts)
	gen.collect(prog, vars)
	files, err := gen.render(prog)
	if err != nil {
		return nil, err
	}
	return &Result{Files: files, Warnings: gen.warnings}, nil
}

func (r *Result) Write(dir string) error {
	if r == nil {
		return fmt.Errorf("compiler: nil result")
	}
	return writeFiles(dir, r.Files)
}
