package registry

import (
	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	t := types.Typename{Ident: "T"}
	register(&Definition{
		Key: "case",
		Scheme: types.Lambda{
			Result: t,
			Args: []types.Type{
				types.NArgs{Types: []types.Type{types.Boolean, t}},
				t,
			},
		},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			// args is (cond, value) pairs followed by a trailing fallback:
			// len is always odd.
			pairs := args[:len(args)-1]
			fallback := args[len(args)-1]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				for i := 0; i+1 < len(pairs); i += 2 {
					cv, err := pairs[i](ctx)
					if err != nil {
						return nil, err
					}
					b, _ := cv.(bool)
					if b {
						return pairs[i+1](ctx)
					}
				}
				return fallback(ctx)
			}}
		},
	})
}
