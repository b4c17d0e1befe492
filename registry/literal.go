package registry

import (
	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

// literal embeds a raw JSON value — scalar, array or object — as a
// constant, with no further checking of its contents. It exists as an
// escape from the ordinary rule that every JSON array in an expression is
// itself a call: the parser gives literal's single argument its own
// wholesale natural type instead of recursing into it, so ["literal",
// [1,2,3]] and ["literal", {"a":1}] can appear anywhere an Array/Object
// value is legal without their elements being parsed as operator calls.
func init() {
	t := types.Typename{Ident: "T"}
	register(&Definition{
		Key:    "literal",
		Scheme: types.Lambda{Result: t, Args: []types.Type{t}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				return arg(ctx)
			}}
		},
	})
}
