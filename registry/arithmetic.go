package registry

import (
	"math"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/runtime"
	"github.com/tilestyle/expr/types"
)

func init() {
	registerVariadicFold("+", 0, func(acc, v float64) float64 { return acc + v })
	registerVariadicFold("*", 1, func(acc, v float64) float64 { return acc * v })
	registerFoldFromFirst("-", func(acc, v float64) float64 { return acc - v })
	registerFoldFromFirst("/", func(acc, v float64) float64 { return acc / v })
	registerFoldFromFirst("%", func(acc, v float64) float64 { return math.Mod(acc, v) })

	register(&Definition{
		Key:    "^",
		Scheme: types.Lambda{Result: types.Number, Args: []types.Type{types.Number, types.Number}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			base, exp := args[0], args[1]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				bv, err := base(ctx)
				if err != nil {
					return nil, err
				}
				ev, err := exp(ctx)
				if err != nil {
					return nil, err
				}
				b, _ := bv.(float64)
				e, _ := ev.(float64)
				return math.Pow(b, e), nil
			}}
		},
	})

	registerUnaryMath("ln", math.Log)
	registerUnaryMath("log2", math.Log2)
	registerUnaryMath("log10", math.Log10)
	registerUnaryMath("sin", math.Sin)
	registerUnaryMath("cos", math.Cos)
	registerUnaryMath("tan", math.Tan)
	registerUnaryMath("asin", math.Asin)
	registerUnaryMath("acos", math.Acos)
	registerUnaryMath("atan", math.Atan)
}

// variadicNumberScheme is Lambda(Number, Number, NArgs(Number)) — every
// arithmetic fold operator takes at least one Number and repeats over zero
// or more further Numbers.
func variadicNumberScheme() types.Lambda {
	return types.Lambda{
		Result: types.Number,
		Args:   []types.Type{types.Number, types.NArgs{Types: []types.Type{types.Number}}},
	}
}

// registerVariadicFold registers an operator that folds f left-to-right over
// all arguments, starting the accumulator at identity (0 for +, 1 for *) so
// that a single argument returns itself unchanged.
func registerVariadicFold(key string, identity float64, f func(acc, v float64) float64) {
	register(&Definition{
		Key:    key,
		Scheme: variadicNumberScheme(),
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				acc := identity
				for _, a := range args {
					v, err := a(ctx)
					if err != nil {
						return nil, err
					}
					n, _ := v.(float64)
					acc = f(acc, n)
				}
				return acc, nil
			}}
		},
	})
}

// registerFoldFromFirst registers an operator that folds f over the
// arguments with the first argument itself as the seed (subtraction,
// division, modulo have no fold identity that leaves a single operand
// unchanged other than starting from it directly).
func registerFoldFromFirst(key string, f func(acc, v float64) float64) {
	register(&Definition{
		Key:    key,
		Scheme: variadicNumberScheme(),
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				first, err := args[0](ctx)
				if err != nil {
					return nil, err
				}
				acc, _ := first.(float64)
				for _, a := range args[1:] {
					v, err := a(ctx)
					if err != nil {
						return nil, err
					}
					n, _ := v.(float64)
					acc = f(acc, n)
				}
				return acc, nil
			}}
		},
	})
}

func registerUnaryMath(key string, f func(float64) float64) {
	register(&Definition{
		Key:    key,
		Scheme: types.Lambda{Result: types.Number, Args: []types.Type{types.Number}},
		Compile: func(node *ast.Node, args []Thunk) CompileResult {
			arg := args[0]
			return CompileResult{Body: func(ctx *runtime.Context) (runtime.Value, error) {
				v, err := arg(ctx)
				if err != nil {
					return nil, err
				}
				n, _ := v.(float64)
				return f(n), nil
			}}
		},
	})
}
