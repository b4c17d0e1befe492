package registry

import (
	"reflect"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	registerEquality("==", func(a, b runtime.Value) bool { return valuesEqual(a, b) })
	registerEquality("!=", func(a, b runtime.Value) bool { return !valuesEqual(a, b) })

	registerOrdering(">", func(c int) bool { return c > 0 })
	registerOrdering("<", func(c int) bool { return c < 0 })
	registerOrdering(">=", func(c int) bool { return c >= 0 })
	registerOrdering("<=", func(c int) bool { return c <= 0 })
}

func genericPairScheme() types.Lambda {
	t := types.Typename{Ident: "T"}
	return types.Lambda{Result: types.Boolean, Args: []types.Type{t, t}}
}

func registerEquality(key string, f func(a, b runtime.Value) bool) {
	register(&Definition{
		Key:    key,
		Scheme: genericPairScheme(),
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			lhs, rhs := args[0], args[1]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				lv, err := lhs(ctx)
				if err != nil {
					return nil, err
				}
				rv, err := rhs(ctx)
				if err != nil {
					return nil, err
				}
				return f(lv, rv), nil
			}}
		},
	})
}

// valuesEqual is value equality: primitives compare by Go equality, colors
// componentwise, objects and arrays by reference identity rather than deep
// structural equality.
func valuesEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case runtime.Color:
		bv, ok := b.(runtime.Color)
		return ok && av.R == bv.R && av.G == bv.G && av.B == bv.B && av.A == bv.A
	case map[string]runtime.Value, []runtime.Value:
		return sameIdentity(av, b)
	default:
		return a == b
	}
}

// sameIdentity compares maps and slices by their underlying reference, the
// way the source this spec formalizes treats container equality: two
// separately-constructed objects with identical contents are NOT equal.
func sameIdentity(a, b runtime.Value) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	if va.IsNil() || vb.IsNil() {
		return va.IsNil() && vb.IsNil()
	}
	return va.Pointer() == vb.Pointer()
}

func registerOrdering(key string, accept func(cmp int) bool) {
	t := types.Typename{Ident: "T"}
	register(&Definition{
		Key:    key,
		Scheme: types.Lambda{Result: types.Boolean, Args: []types.Type{t, t}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			lhs, rhs := args[0], args[1]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				lv, err := lhs(ctx)
				if err != nil {
					return nil, err
				}
				rv, err := rhs(ctx)
				if err != nil {
					return nil, err
				}
				cmp, err := compareValues(lv, rv)
				if err != nil {
					return nil, err
				}
				return accept(cmp), nil
			}}
		},
	})
}

func compareValues(a, b runtime.Value) (int, error) {
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, runtime.Errorf("Type %T is not ordered", a)
	}
}
