package driver

import (
	"errors"
	"unicode/utf8"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
	"github.com/dhruvjimulia-sys/storyteller/pkg/diagnostics"
	"github.com/dhruvjimulia-sys/storyteller/pkg/ir"
	"github.com/dhruvjimulia-sys/storyteller/pkg/keywords"
	"github.com/dhruvjimulia-sys/storyteller/pkg/lexer"
	"github.com/dhruvjimulia-sys/storyteller/pkg/lower"
	"github.com/dhruvjimulia-sys/storyteller/pkg/parser"
	"github.com/dhruvjimulia-sys/storyteller/pkg/resolve"
)

// ErrInvalidEncoding reports source text that is not UTF-8.
var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

// Options configures a compilation.
type Options struct {
	// Keywords overrides the built-in vocabularies when non-nil.
	Keywords *keywords.Set
	// KnownVariables are treated as declared even if the source never
	// assigns them.
	KnownVariables []ast.Variable
}

// Compilation is the result of running the front end over one source.
type Compilation struct {
	Program     *ir.Program
	Variables   *ir.VariableSet
	Tree        *ast.Program
	Diagnostics diagnostics.List
}

// Err returns the accumulated diagnostics as an error, or nil.
func (c *Compilation) Err() error {
	if c == nil {
		return nil
	}
	return c.Diagnostics.Err()
}

// Compile tokenizes, parses, resolves and lowers source. The error result is
// reserved for input that cannot be read as text; grammar and pronoun
// problems are collected on the compilation, which is always fully built.
func Compile(source []byte, opts Options) (*Compilation, error) {
	if !utf8.Valid(source) {
		return nil, diagnostics.PlotNotFound("", ErrInvalidEncoding)
	}
	kw := opts.Keywords
	if kw == nil {
		kw = keywords.Default()
	}

	blocks := lexer.Normalize(lexer.Tokenize(string(source)))
	tree, diags := parser.New(kw).ParseProgram(blocks)

	r := resolve.New(kw)
	vars := r.Variables(tree, opts.KnownVariables...)
	resolved, pronounDiags := r.Pronouns(tree, vars)
	diags = append(diags, pronounDiags...)

	return &Compilation{
		Program:     lower.Lower(resolved, vars),
		Variables:   vars,
		Tree:        resolved,
		Diagnostics: diags,
	}, nil
}
