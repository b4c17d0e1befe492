package registry

import (
	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	register(&Definition{
		Key: "&&",
		Scheme: types.Lambda{
			Result: types.Boolean,
			Args:   []types.Type{types.Boolean, types.NArgs{Types: []types.Type{types.Boolean}}},
		},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				for _, a := range args {
					v, err := a(ctx)
					if err != nil {
						return nil, err
					}
					b, _ := v.(bool)
					if !b {
						return false, nil
					}
				}
				return true, nil
			}}
		},
	})

	register(&Definition{
		Key: "||",
		Scheme: types.Lambda{
			Result: types.Boolean,
			Args:   []types.Type{types.Boolean, types.NArgs{Types: []types.Type{types.Boolean}}},
		},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				for _, a := range args {
					v, err := a(ctx)
					if err != nil {
						return nil, err
					}
					b, _ := v.(bool)
					if b {
						return true, nil
					}
				}
				return false, nil
			}}
		},
	})

	register(&Definition{
		Key:    "!",
		Scheme: types.Lambda{Result: types.Boolean, Args: []types.Type{types.Boolean}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				b, _ := v.(bool)
				return !b, nil
			}}
		},
	})
}
