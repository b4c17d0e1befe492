// Package styleexpr compiles data-driven map-styling expressions: JSON
// arrays mixing literals and named operators (arithmetic, property lookup,
// color construction, interpolation curves) into a validated, typed,
// directly callable Go closure.
//
// CompileExpression is the single public operation:
//
//	c := styleexpr.CompileExpression([]interface{}{"+", 1.0, 2.0, 3.0})
//	if c.Result == styleexpr.Success {
//		v, err := c.Evaluate(nil, styleexpr.Feature{})
//	}
package styleexpr

import (
	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/check"
	"github.com/tilestyle/expr/compile"
	"github.com/tilestyle/expr/parse"
	"github.com/tilestyle/expr/registry"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

// Feature and Value are re-exported so callers never need to import the
// runtime package directly.
type (
	Feature  = runtime.Feature
	Geometry = runtime.Geometry
	Value    = runtime.Value
	Color    = runtime.Color
)

// Result is the outcome of CompileExpression.
type Result int

const (
	// Success means the expression compiled; Type, IsFeatureConstant,
	// IsZoomConstant and Evaluate are all valid.
	Success Result = iota
	// Error means compilation failed; Errors holds every diagnostic.
	Error
)

// Diagnostic is one compile-time error, keyed to the dotted path of the
// node that produced it.
type Diagnostic struct {
	Key   string
	Error string
}

// CompiledExpression is the artifact produced by CompileExpression: either
// a callable of declared Type plus constancy metadata, or a list of
// diagnostics.
type CompiledExpression struct {
	Result            Result
	Type              types.Type
	IsFeatureConstant bool
	IsZoomConstant    bool
	Errors            []Diagnostic

	body registry.Thunk
}

// CompileExpression parses, type-checks and compiles expr. expr must be a
// JSON-shaped Go value: nil, string, float64, bool, or []interface{} whose
// first element is an operator name.
func CompileExpression(expr interface{}) *CompiledExpression {
	node, diag := parse.Parse(expr)
	if diag != nil {
		return &CompiledExpression{Result: Error, Errors: []Diagnostic{{Key: diag.Key, Error: diag.Error}}}
	}

	checked, diags := check.Check(naturalExpected(node), node)
	if len(diags) > 0 {
		return &CompiledExpression{Result: Error, Errors: toDiagnostics(diags)}
	}

	body, diags := compile.Compile(checked)
	if len(diags) > 0 {
		return &CompiledExpression{Result: Error, Errors: toDiagnostics(diags)}
	}

	return &CompiledExpression{
		Result:            Success,
		Type:              body.Type,
		IsFeatureConstant: body.FeatureConstant,
		IsZoomConstant:    body.ZoomConstant,
		body:              body.Thunk,
	}
}

// Evaluate runs the compiled expression against the given runtime inputs.
// feature.Properties, feature.Geometry and feature.ID default to {}, {}
// and nil respectively if unset; mapProperties defaults to {}. Evaluate
// panics if Result is not Success — check Result first.
func (c *CompiledExpression) Evaluate(mapProperties map[string]Value, feature Feature) (Value, error) {
	if c.Result != Success {
		panic("styleexpr: Evaluate called on a CompiledExpression with Result != Success")
	}
	ctx := runtime.NewContext(mapProperties, feature)
	return c.body(ctx)
}

// naturalExpected is the type a freshly-parsed node checks against at the
// root: a literal's own inferred type, or a call's own declared (possibly
// still generic) result type. Checking a node against its own natural
// type is an identity match that still forces generic resolution — if the
// root call's result remains an unresolved Typename, the checker reports
// the "Could not resolve" diagnostic rather than silently widening the
// declared type to the top type Value.
func naturalExpected(node *ast.Node) types.Type {
	if node.IsLiteral {
		return node.Type
	}
	if lambda, ok := node.Type.(types.Lambda); ok {
		return lambda.Result
	}
	return node.Type
}

func toDiagnostics(diags []ast.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{Key: d.Key, Error: d.Error}
	}
	return out
}
