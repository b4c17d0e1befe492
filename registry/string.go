package registry

import (
	"strings"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	register(&Definition{
		Key: "concat",
		Scheme: types.Lambda{
			Result: types.String,
			Args:   []types.Type{types.Value, types.NArgs{Types: []types.Type{types.Value}}},
		},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				var b strings.Builder
				for _, a := range args {
					v, err := a(ctx)
					if err != nil {
						return nil, err
					}
					b.WriteString(coerceToString(v))
				}
				return b.String(), nil
			}}
		},
	})

	register(&Definition{
		Key:    "upcase",
		Scheme: types.Lambda{Result: types.String, Args: []types.Type{types.String}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				s, _ := v.(string)
				return strings.ToUpper(s), nil
			}}
		},
	})

	register(&Definition{
		Key:    "downcase",
		Scheme: types.Lambda{Result: types.String, Args: []types.Type{types.String}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				s, _ := v.(string)
				return strings.ToLower(s), nil
			}}
		},
	})
}
