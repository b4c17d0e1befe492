package registry

import (
	"encoding/json"
	"strconv"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	// "number" carries the Name "string" below. The registry key — the
	// externally observed, serialized name — is what matters; Name is
	// purely informational.
	register(&Definition{
		Key:    "string",
		Scheme: types.Lambda{Result: types.String, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				return coerceToString(v), nil
			}}
		},
	})

	register(&Definition{
		Key:    "number",
		Name:   "string",
		Scheme: types.Lambda{Result: types.Number, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				return coerceToNumber(v)
			}}
		},
	})

	register(&Definition{
		Key:    "boolean",
		Scheme: types.Lambda{Result: types.Boolean, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				return coerceToBoolean(v), nil
			}}
		},
	})

	register(&Definition{
		Key:    "json_array",
		Scheme: types.Lambda{Result: types.Vector{Of: types.Value}, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				arr, err := ctx.AsArray(v)
				if err != nil {
					return nil, err
				}
				return arr, nil
			}}
		},
	})

	register(&Definition{
		Key:    "object",
		Scheme: types.Lambda{Result: types.Object, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				obj, err := ctx.AsObject(v)
				if err != nil {
					return nil, err
				}
				return obj, nil
			}}
		},
	})
}

// coerceToString implements the default string form shared by the
// "string" operator and "concat": null → "", booleans → "true"/"false",
// numbers → their shortest decimal form, everything else (objects,
// vectors, colors) → a JSON rendering as the language-standard fallback.
func coerceToString(v runtime.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func coerceToNumber(v runtime.Value) (runtime.Value, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, runtime.Errorf("Could not convert value '%s' to number", val)
		}
		return f, nil
	default:
		return nil, runtime.Errorf("Could not convert value to number")
	}
}

func coerceToBoolean(v runtime.Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}
