package compile_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/compile"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func TestCompileLiteralIsConstant(t *testing.T) {
	is := is.New(t)

	node := ast.NewLiteral(float64(1), types.Number, "")
	body, diags := compile.Compile(node)
	is.True(diags == nil)
	is.True(body.FeatureConstant)
	is.True(body.ZoomConstant)

	v, err := body.Thunk(nil)
	is.NoErr(err)
	is.Equal(v, float64(1))
}

func TestCompileUnknownFunction(t *testing.T) {
	is := is.New(t)

	node := ast.NewCall("bogus", types.Lambda{Result: types.Number}, nil, "")
	_, diags := compile.Compile(node)
	is.Equal(len(diags), 1)
	is.Equal(diags[0].Error, "unknown function bogus")
}

// Compiling "+" over two constant literals must AND their constancy (both
// true) and produce a thunk that folds to their sum.
func TestCompileConstancyAndFold(t *testing.T) {
	is := is.New(t)

	node := ast.NewCall("+", types.Lambda{Result: types.Number, Args: []types.Type{types.Number, types.Number}}, []*ast.Node{
		ast.NewLiteral(float64(2), types.Number, "1"),
		ast.NewLiteral(float64(3), types.Number, "2"),
	}, "")

	body, diags := compile.Compile(node)
	is.True(diags == nil)
	is.True(body.FeatureConstant)
	is.True(body.ZoomConstant)

	v, err := body.Thunk(runtime.NewContext(nil, runtime.Feature{}))
	is.NoErr(err)
	is.Equal(v, float64(5))
}

// "zoom" overrides ZoomConstant to false regardless of its (empty) children.
func TestCompileZoomOverridesConstancy(t *testing.T) {
	is := is.New(t)

	node := ast.NewCall("zoom", types.Lambda{Result: types.Number}, nil, "")
	body, diags := compile.Compile(node)
	is.True(diags == nil)
	is.True(!body.ZoomConstant)
	is.True(body.FeatureConstant)

	v, err := body.Thunk(runtime.NewContext(map[string]runtime.Value{"zoom": float64(7)}, runtime.Feature{}))
	is.NoErr(err)
	is.Equal(v, float64(7))
}

// A compile-time error from a node's own Definition.Compile (here a curve
// whose stop keys are not strictly ascending) is lifted into a diagnostic.
func TestCompileLiftsDefinitionErrors(t *testing.T) {
	is := is.New(t)

	badCurve := ast.NewCall("curve", types.Lambda{Result: types.Number}, []*ast.Node{
		ast.NewCall("exponential", types.Lambda{Result: types.Interpolation, Args: []types.Type{types.Number}}, []*ast.Node{
			ast.NewLiteral(float64(2), types.Number, "1"),
		}, "1"),
		ast.NewCall("zoom", types.Lambda{Result: types.Number}, nil, "2"),
		ast.NewLiteral(float64(0), types.Number, "3"),
		ast.NewLiteral(float64(0), types.Number, "4"),
		ast.NewLiteral(float64(0), types.Number, "5"),
		ast.NewLiteral(float64(1), types.Number, "6"),
	}, "")

	_, diags := compile.Compile(badCurve)
	is.Equal(len(diags), 1)
}
