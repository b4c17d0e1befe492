package registry

import (
	"github.com/pkg/errors"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	register(&Definition{
		Key:    "color",
		Scheme: types.Lambda{Result: types.Color, Args: []types.Type{types.String}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				s, _ := v.(string)
				col, err := ctx.ParseColor(s)
				if err != nil {
					return nil, err
				}
				return col, nil
			}}
		},
	})

	register(&Definition{
		Key:    "rgb",
		Scheme: types.Lambda{Result: types.Color, Args: []types.Type{types.Number, types.Number, types.Number}},
		Compile: compileRGBA(false),
	})

	// "rgba" carries the Name "rgb", since both share one compile helper.
	// The registry key stays "rgba"; only the cosmetic Name is borrowed.
	register(&Definition{
		Key:    "rgba",
		Name:   "rgb",
		Scheme: types.Lambda{Result: types.Color, Args: []types.Type{types.Number, types.Number, types.Number, types.NArgs{Types: []types.Type{types.Number}}}},
		Compile: compileRGBA(true),
	})

	register(&Definition{
		Key:    "color_to_array",
		Scheme: types.Lambda{Result: types.Array{Of: types.Number, N: 4}, Args: []types.Type{types.Color}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				col, _ := v.(runtime.Color)
				return []runtime.Value{col.R, col.G, col.B, col.A}, nil
			}}
		},
	})
}

// compileRGBA implements both "rgb" (optionalAlpha=false, exactly 3 args, a=1)
// and "rgba" (optionalAlpha=true, an optional trailing Number arg, defaulting
// a to 1 when absent).
func compileRGBA(optionalAlpha bool) func(node *ast.Node, args []Thunk) CompileResult {
	return func(node *ast.Node, args []Thunk) CompileResult {
		if optionalAlpha && len(args) > 4 {
			return CompileResult{Errors: []error{
				errors.Errorf("Expected 4 arguments, but found %d instead.", len(args)),
			}}
		}
		r, g, b := args[0], args[1], args[2]
		var a Thunk
		if optionalAlpha && len(args) > 3 {
			a = args[3]
		}
		return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
			rv, err := r(ctx)
			if err != nil {
				return nil, err
			}
			gv, err := g(ctx)
			if err != nil {
				return nil, err
			}
			bv, err := b(ctx)
			if err != nil {
				return nil, err
			}
			alpha := 1.0
			if a != nil {
				av, err := a(ctx)
				if err != nil {
					return nil, err
				}
				alpha, _ = av.(float64)
			}
			rf, _ := rv.(float64)
			gf, _ := gv.(float64)
			bf, _ := bv.(float64)
			return ctx.RGBA(rf, gf, bf, alpha), nil
		}}
	}
}
