package registry

import (
	"github.com/pkg/errors"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	register(&Definition{
		Key:     "step",
		Scheme:  types.Lambda{Result: types.Interpolation},
		Compile: compileInterpolationToken,
	})

	// "linear" carries the Name "step" — the third Key/Name divergence in
	// this registry, alongside number/string and rgba/rgb. Key is what's
	// authoritative; Name is cosmetic.
	register(&Definition{
		Key:     "linear",
		Name:    "step",
		Scheme:  types.Lambda{Result: types.Interpolation},
		Compile: compileInterpolationToken,
	})

	register(&Definition{
		Key:     "exponential",
		Scheme:  types.Lambda{Result: types.Interpolation, Args: []types.Type{types.Number}},
		Compile: compileInterpolationToken,
	})

	t := types.Typename{Ident: "T"}
	register(&Definition{
		Key: "curve",
		Scheme: types.Lambda{
			Result: t,
			Args: []types.Type{
				types.Interpolation,
				types.Number,
				types.NArgs{Types: []types.Type{types.Number, t}},
			},
		},
		Compile: compileCurve,
	})
}

// compileInterpolationToken backs step/linear/exponential. These nodes
// never evaluate standalone: curve inspects their ast.Node shape directly
// rather than invoking their compiled body, so this closure is only
// reached if an interpolation token somehow escapes into a non-curve
// position, which the type checker should already prevent.
func compileInterpolationToken(node *ast.Node, args []Thunk) CompileResult {
	return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
		return nil, runtime.Errorf("interpolation tokens do not evaluate standalone")
	}}
}

func compileCurve(node *ast.Node, args []Thunk) CompileResult {
	interp := node.Args[0]
	kind, base, err := interpolationKindAndBase(interp)
	if err != nil {
		return CompileResult{Errors: []error{err}}
	}

	if lambda, ok := node.Type.(types.Lambda); ok {
		if !types.Equal(lambda.Result, types.Number) && !types.Equal(lambda.Result, types.Color) {
			return CompileResult{Errors: []error{errors.Errorf("Type %s is not interpolatable, curve stops must be Number or Color", lambda.Result.Name())}}
		}
	}

	stopNodes := node.Args[2:]
	stopThunks := args[2:]
	keys := make([]float64, 0, len(stopNodes)/2)
	for i := 0; i < len(stopNodes); i += 2 {
		keyNode := stopNodes[i]
		if !keyNode.IsLiteral {
			return CompileResult{Errors: []error{errors.New("curve stop keys must be literal numbers")}}
		}
		k, ok := keyNode.Value.(float64)
		if !ok {
			return CompileResult{Errors: []error{errors.New("curve stop keys must be literal numbers")}}
		}
		if len(keys) > 0 && k <= keys[len(keys)-1] {
			return CompileResult{Errors: []error{errors.New("curve stop keys must be strictly ascending")}}
		}
		keys = append(keys, k)
	}

	input := args[1]
	return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
		iv, err := input(ctx)
		if err != nil {
			return nil, err
		}
		inputNum, _ := iv.(float64)

		stops := make([]runtime.Stop, len(keys))
		for i, k := range keys {
			valueThunk := stopThunks[i*2+1]
			stops[i] = runtime.Stop{
				Key: k,
				Value: func() (runtime.Value, error) {
					return valueThunk(ctx)
				},
			}
		}
		return ctx.EvaluateCurve(kind, base, inputNum, stops)
	}}
}

func interpolationKindAndBase(interp *ast.Node) (string, float64, error) {
	if interp == nil || interp.IsLiteral {
		return "", 0, errors.New("Invalid interpolation type")
	}
	switch interp.Name {
	case "step", "linear":
		return interp.Name, 1, nil
	case "exponential":
		if len(interp.Args) != 1 || !interp.Args[0].IsLiteral {
			return "", 0, errors.New("Invalid interpolation type")
		}
		base, ok := interp.Args[0].Value.(float64)
		if !ok {
			return "", 0, errors.New("Invalid interpolation type")
		}
		return "exponential", base, nil
	default:
		return "", 0, errors.New("Invalid interpolation type")
	}
}
