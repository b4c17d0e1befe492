// Package compile is the Evaluator/Compiler driver: given an already
// type-checked tree, it assembles a lazily-evaluating callable per node (a
// direct tree interpreter rather than generated host-runtime code) and
// computes the isFeatureConstant/isZoomConstant flags bottom-up.
package compile

import (
	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/registry"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

// Body is the compiled form of one node: its realized Thunk, its resolved
// type, and its constancy flags.
type Body struct {
	Thunk           registry.Thunk
	Type            types.Type
	FeatureConstant bool
	ZoomConstant    bool
}

// Compile walks a checked tree bottom-up, invoking each node's registry
// Definition to assemble its Thunk.
func Compile(node *ast.Node) (*Body, []ast.Diagnostic) {
	if node.IsLiteral {
		v := node.Value
		return &Body{
			Thunk:           func(ctx *runtime.Context) (runtime.Value, error) { return v, nil },
			Type:            node.Type,
			FeatureConstant: true,
			ZoomConstant:    true,
		}, nil
	}

	def, ok := registry.Lookup(node.Name)
	if !ok {
		return nil, []ast.Diagnostic{{Key: node.Key, Error: "unknown function " + node.Name}}
	}

	childThunks := make([]registry.Thunk, len(node.Args))
	featureConstant := true
	zoomConstant := true
	for i, arg := range node.Args {
		child, diags := Compile(arg)
		if len(diags) > 0 {
			return nil, diags
		}
		childThunks[i] = child.Thunk
		featureConstant = featureConstant && child.FeatureConstant
		zoomConstant = zoomConstant && child.ZoomConstant
	}

	result := def.Compile(node, childThunks)
	if len(result.Errors) > 0 {
		diags := make([]ast.Diagnostic, len(result.Errors))
		for i, err := range result.Errors {
			diags[i] = ast.Diagnostic{Key: node.Key, Error: err.Error()}
		}
		return nil, diags
	}

	if result.FeatureConstant != nil {
		featureConstant = featureConstant && *result.FeatureConstant
	}
	if result.ZoomConstant != nil {
		zoomConstant = zoomConstant && *result.ZoomConstant
	}

	return &Body{
		Thunk:           result.Body,
		Type:            node.Type,
		FeatureConstant: featureConstant,
		ZoomConstant:    zoomConstant,
	}, nil
}
