package ir

import (
	"sort"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
)

// VariableSet is the set of variables a program declares.
type VariableSet struct {
	names map[ast.Variable]struct{}
}

func NewVariableSet(names ...ast.Variable) *VariableSet {
	vs := &VariableSet{names: make(map[ast.Variable]struct{}, len(names))}
	for _, name := range names {
		vs.Add(name)
	}
	return vs
}

// Add inserts name; the empty name is ignored.
func (vs *VariableSet) Add(name ast.Variable) {
	if name == "" {
		return
	}
	if vs.names == nil {
		vs.names = make(map[ast.Variable]struct{})
	}
	vs.names[name] = struct{}{}
}

func (vs *VariableSet) Has(name ast.Variable) bool {
	if vs == nil {
		return false
	}
	_, ok := vs.names[name]
	return ok
}

func (vs *VariableSet) Len() int {
	if vs == nil {
		return 0
	}
	return len(vs.names)
}

// Sorted returns the names in lexical order.
func (vs *VariableSet) Sorted() []ast.Variable {
	if vs == nil {
		return nil
	}
	out := make([]ast.Variable, 0, len(vs.names))
	for name := range vs.names {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup resolves a value slot to a declared variable. The raw text is tried
// before its normalized form so already-resolved names round-trip.
func (vs *VariableSet) Lookup(v ast.Value) (ast.Variable, bool) {
	if raw := ast.Variable(v); vs.Has(raw) {
		return raw, true
	}
	if name := v.Normalized(); vs.Has(name) {
		return name, true
	}
	return "", false
}
