package registry

import (
	"math"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	registerConstant("ln2", math.Ln2)
	registerConstant("pi", math.Pi)
	registerConstant("e", math.E)
}

func registerConstant(name string, value float64) {
	register(&Definition{
		Key:    name,
		Scheme: types.Lambda{Result: types.Number},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{
				Body: func(ctx *runtime.Context) (runtime.Value, error) {
					return value, nil
				},
			}
		},
	})
}
