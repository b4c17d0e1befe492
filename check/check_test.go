package check_test

import (
	"strings"
	"testing"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/check"
	"github.com/tilestyle/expr/types"
)

func literal(v interface{}, t types.Type, key string) *ast.Node {
	return ast.NewLiteral(v, t, key)
}

func TestCheckLiteralMatch(t *testing.T) {
	node := literal(float64(42), types.Number, "")
	checked, diags := check.Check(types.Number, node)
	if diags != nil {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if checked.Value != float64(42) {
		t.Errorf("expected 42, got %v", checked.Value)
	}
}

func TestCheckLiteralMismatch(t *testing.T) {
	node := literal("oops", types.String, "")
	_, diags := check.Check(types.Number, node)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", diags)
	}
	if diags[0].Error != "Expected Number but found String instead." {
		t.Errorf("unexpected message: %q", diags[0].Error)
	}
}

// plus mirrors the registry's variadic "+" scheme: Lambda(Number, [Number,
// NArgs{Number}]).
func plusScheme() types.Lambda {
	return types.Lambda{Result: types.Number, Args: []types.Type{types.Number, types.NArgs{Types: []types.Type{types.Number}}}}
}

func TestCheckVariadicExpansionSuccess(t *testing.T) {
	node := ast.NewCall("+", plusScheme(), []*ast.Node{
		literal(float64(1), types.Number, "1"),
		literal(float64(2), types.Number, "2"),
		literal(float64(3), types.Number, "3"),
	}, "")

	checked, diags := check.Check(types.Number, node)
	if diags != nil {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	lambda := checked.Type.(types.Lambda)
	if !types.Equal(lambda.Result, types.Number) {
		t.Errorf("expected Number result, got %s", lambda.Result.Name())
	}
	if len(lambda.Args) != 3 {
		t.Errorf("expected 3 expanded args, got %d", len(lambda.Args))
	}
}

// Scenario 6: a trailing type mismatch inside an NArgs run is reported as a
// mismatch at that argument's own key, never folded into an arity error.
func TestCheckVariadicTypeMismatchNotArity(t *testing.T) {
	node := ast.NewCall("+", plusScheme(), []*ast.Node{
		literal(float64(1), types.Number, "1"),
		literal("two", types.String, "2"),
	}, "")

	_, diags := check.Check(types.Number, node)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %+v", diags)
	}
	if diags[0].Key != "2" {
		t.Errorf("expected key \"2\", got %q", diags[0].Key)
	}
	if diags[0].Error != "Expected Number but found String instead." {
		t.Errorf("unexpected message: %q", diags[0].Error)
	}
}

func TestCheckArityMismatch(t *testing.T) {
	scheme := types.Lambda{Result: types.Boolean, Args: []types.Type{types.Number, types.Number}}
	node := ast.NewCall("==", scheme, []*ast.Node{
		literal(float64(1), types.Number, "1"),
	}, "")

	_, diags := check.Check(types.Boolean, node)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %+v", diags)
	}
	if diags[0].Error != "Expected 2 arguments, but found 1 instead." {
		t.Errorf("unexpected message: %q", diags[0].Error)
	}
}

// caseScheme mirrors the registry's "case": Lambda(T, [NArgs{Boolean,T}, T]).
func caseScheme() types.Lambda {
	tv := types.Typename{Ident: "T"}
	return types.Lambda{
		Result: tv,
		Args:   []types.Type{types.NArgs{Types: []types.Type{types.Boolean, tv}}, tv},
	}
}

// Scenario 2: a root-level generic-result call resolves its own generic
// from a literal argument and succeeds, rather than hitting the
// unresolved-generic diagnostic.
func TestCheckGenericRootResolvedByLiteral(t *testing.T) {
	scheme := caseScheme()
	node := ast.NewCall("case", scheme, []*ast.Node{
		literal(true, types.Boolean, "1"),
		literal("a", types.String, "2"),
		literal("b", types.String, "3"),
	}, "")

	checked, diags := check.Check(scheme.Result, node)
	if diags != nil {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	lambda := checked.Type.(types.Lambda)
	if !types.Equal(lambda.Result, types.String) {
		t.Errorf("expected String result, got %s", lambda.Result.Name())
	}
}

// atScheme mirrors the registry's "at": Lambda(T, [Variant{Vector<T>,
// AnyArray<T>}, Number]).
func atScheme() types.Lambda {
	tv := types.Typename{Ident: "T"}
	return types.Lambda{
		Result: tv,
		Args: []types.Type{
			types.Variant{Members: []types.Type{types.Vector{Of: tv}, types.AnyArray{Of: tv}}},
			types.Number,
		},
	}
}

// A nested call's generic binding happens in its own Bindings scope; its
// concrete resolved result must still be able to resolve the parent call's
// own, distinctly-scoped generic of the same name.
func TestCheckGenericResolvedThroughNestedCall(t *testing.T) {
	// A stand-in array-producing call, "literal_array", yielding Vector<Number>.
	arrayNode := ast.NewCall("literal_array", types.Lambda{Result: types.Vector{Of: types.Number}}, nil, "1")

	scheme := atScheme()
	node := ast.NewCall("at", scheme, []*ast.Node{
		arrayNode,
		literal(float64(0), types.Number, "2"),
	}, "")

	checked, diags := check.Check(scheme.Result, node)
	if diags != nil {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	lambda := checked.Type.(types.Lambda)
	if !types.Equal(lambda.Result, types.Number) {
		t.Errorf("expected Number result, got %s", lambda.Result.Name())
	}
}

// When nothing in the arguments pins the generic down, the checker reports
// the "must be wrapped in a type conversion" diagnostic instead of silently
// treating the result as the top type.
func TestCheckUnresolvedGenericReportsConversionHint(t *testing.T) {
	tv := types.Typename{Ident: "T"}
	scheme := types.Lambda{Result: tv, Args: []types.Type{types.Number}}
	node := ast.NewCall("identity", scheme, []*ast.Node{
		literal(float64(1), types.Number, "1"),
	}, "")

	_, diags := check.Check(scheme.Result, node)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %+v", diags)
	}
	if !strings.Contains(diags[0].Error, "Could not resolve T") {
		t.Errorf("unexpected message: %q", diags[0].Error)
	}
	if !strings.Contains(diags[0].Error, "type conversion") {
		t.Errorf("expected a type-conversion hint, got %q", diags[0].Error)
	}
}
