package registry

import (
	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	register(&Definition{
		Key:    "get",
		Scheme: types.Lambda{Result: types.Value, Args: []types.Type{types.Object, types.String}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			obj, key := args[0], args[1]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				ov, err := obj(ctx)
				if err != nil {
					return nil, err
				}
				kv, err := key(ctx)
				if err != nil {
					return nil, err
				}
				o, err := ctx.AsObject(ov)
				if err != nil {
					return nil, err
				}
				ks, _ := kv.(string)
				return ctx.Get(o, ks)
			}}
		},
	})

	register(&Definition{
		Key:    "has",
		Scheme: types.Lambda{Result: types.Boolean, Args: []types.Type{types.Object, types.String}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			obj, key := args[0], args[1]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				ov, err := obj(ctx)
				if err != nil {
					return nil, err
				}
				kv, err := key(ctx)
				if err != nil {
					return nil, err
				}
				o, err := ctx.AsObject(ov)
				if err != nil {
					return nil, err
				}
				ks, _ := kv.(string)
				_, exists := o[ks]
				return exists, nil
			}}
		},
	})

	register(&Definition{
		Key: "at",
		Scheme: types.Lambda{
			Result: types.Typename{Ident: "T"},
			Args: []types.Type{
				types.Variant{Members: []types.Type{
					types.Vector{Of: types.Typename{Ident: "T"}},
					types.AnyArray{Of: types.Typename{Ident: "T"}},
				}},
				types.Number,
			},
		},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arr, idx := args[0], args[1]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				av, err := arr(ctx)
				if err != nil {
					return nil, err
				}
				iv, err := idx(ctx)
				if err != nil {
					return nil, err
				}
				a, err := ctx.AsArray(av)
				if err != nil {
					return nil, err
				}
				i, _ := iv.(float64)
				n := int(i)
				if n < 0 || n >= len(a) {
					return nil, runtime.Errorf("Index %d out of range for array of length %d", n, len(a))
				}
				return a[n], nil
			}}
		},
	})

	register(&Definition{
		Key: "length",
		Scheme: types.Lambda{
			Result: types.Number,
			Args: []types.Type{
				types.Variant{Members: []types.Type{types.Vector{Of: types.Value}, types.String}},
			},
		},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				switch val := v.(type) {
				case string:
					return float64(len(val)), nil
				default:
					a, err := ctx.AsArray(val)
					if err != nil {
						return nil, err
					}
					return float64(len(a)), nil
				}
			}}
		},
	})

	register(&Definition{
		Key:    "properties",
		Scheme: types.Lambda{Result: types.Object},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{
				Body: func(ctx *runtime.Context) (runtime.Value, error) {
					out := make(map[string]runtime.Value, len(ctx.Feature.Properties))
					for k, v := range ctx.Feature.Properties {
						out[k] = v
					}
					return out, nil
				},
				FeatureConstant: boolPtr(false),
			}
		},
	})

	register(&Definition{
		Key:    "geometry_type",
		Scheme: types.Lambda{Result: types.String},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{
				Body: func(ctx *runtime.Context) (runtime.Value, error) {
					return ctx.Feature.Geometry.Type, nil
				},
				FeatureConstant: boolPtr(false),
			}
		},
	})

	register(&Definition{
		Key:    "id",
		Scheme: types.Lambda{Result: types.Value},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{
				Body: func(ctx *runtime.Context) (runtime.Value, error) {
					return ctx.Feature.ID, nil
				},
				FeatureConstant: boolPtr(false),
			}
		},
	})

	register(&Definition{
		Key:    "zoom",
		Scheme: types.Lambda{Result: types.Number},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{
				Body: func(ctx *runtime.Context) (runtime.Value, error) {
					z, _ := ctx.MapProperties["zoom"].(float64)
					return z, nil
				},
				ZoomConstant: boolPtr(false),
			}
		},
	})

	register(&Definition{
		Key:    "typeof",
		Scheme: types.Lambda{Result: types.String, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				return ctx.TypeOf(v), nil
			}}
		},
	})
}
