// Package registry is the Operator Registry: a closed map from operator
// name to {declared type scheme, compile callback}. Each file in this
// package registers one family of operators (constants, coercions, color,
// property access, arithmetic, comparisons, booleans, strings, control
// flow, curves).
//
// Each declaration is itself a callable: an operator is a named Lambda
// plus the code that realizes it.
package registry

import (
	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

// Thunk is a lazily-evaluated, already-compiled child expression. Operators
// that need to short-circuit (case, &&, ||) or defer realization (curve
// stops) are passed Thunks, not values, so they control when — or whether —
// a child actually evaluates.
type Thunk func(ctx *runtime.Context) (runtime.Value, error)

// CompileResult is what a Definition's Compile callback returns.
// FeatureConstant/ZoomConstant are nil unless the operator overrides the
// default (AND-of-children) constancy computed by the driver.
type CompileResult struct {
	Body            Thunk
	Errors          []error
	FeatureConstant *bool
	ZoomConstant    *bool
}

// Definition is one entry in the registry: {name, type scheme, compile
// callback}. Compile receives the checked call node (so it can inspect
// literal structure in its own arguments, as curve must) and the already-
// compiled Thunks of its children.
//
// Key and Name are usually identical, but three entries diverge: "number"
// carries Name "string", "rgba" carries Name "rgb", "linear" carries Name
// "step". Key is always what matters: it is the registry's map key, what
// the parser validates operator names against, and what serialization
// re-emits. Name is carried alongside each declaration for description
// purposes only; it is not load-bearing.
type Definition struct {
	Key     string
	Name    string
	Scheme  types.Lambda
	Compile func(node *ast.Node, args []Thunk) CompileResult
}

var registry = map[string]*Definition{}

func register(d *Definition) {
	if d.Name == "" {
		d.Name = d.Key
	}
	if _, exists := registry[d.Key]; exists {
		panic("registry: duplicate operator key " + d.Key)
	}
	registry[d.Key] = d
}

// Lookup returns the Definition registered under name, if any.
func Lookup(name string) (*Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// Names returns every registered operator name, for diagnostics/testing.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

func boolPtr(b bool) *bool { return &b }
