package runtime

import (
	"math/big"
	"sort"

	"github.com/dhruvjimulia-sys/storyteller/pkg/ast"
)

// Environment holds the current value of every assigned variable. Values are
// copied on the way in and out so callers never alias stored numbers.
type Environment struct {
	values map[ast.Variable]*big.Int
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[ast.Variable]*big.Int)}
}

// Define inserts or replaces a binding.
func (e *Environment) Define(name ast.Variable, value *big.Int) {
	e.values[name] = new(big.Int).Set(value)
}

// Lookup retrieves a binding; ok is false for a variable never assigned.
func (e *Environment) Lookup(name ast.Variable) (*big.Int, bool) {
	v, ok := e.values[name]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[ast.Variable]*big.Int {
	out := make(map[ast.Variable]*big.Int, len(e.values))
	for k, v := range e.values {
		out[k] = new(big.Int).Set(v)
	}
	return out
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []ast.Variable {
	keys := make([]ast.Variable, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
