// Package check implements the type checker: it resolves generic
// variables, expands variadic NArgs argument patterns, validates every
// node against its expected type, and produces a fully-typed tree or a
// list of diagnostics.
package check

import (
	"encoding/json"
	"fmt"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/types"
)

// Check validates node against expected, returning either a new,
// fully-typed tree or the diagnostics explaining why checking failed.
//
// At the root, the caller should pass expected equal to the node's own
// natural type (its literal type, or its own declared — possibly still
// generic — Lambda result): that is an identity match that still forces
// generic resolution through the node's own arguments, so a
// generic-result call at the root whose arguments leave its generic open
// is caught by the unresolved-generic check below instead of silently
// widening to an unconstrained top type.
func Check(expected types.Type, node *ast.Node) (*ast.Node, []ast.Diagnostic) {
	if node.IsLiteral {
		if err := types.MatchTypeError(expected, node.Type, nil); err != nil {
			return nil, []ast.Diagnostic{{Key: node.Key, Error: err.Error()}}
		}
		return ast.NewLiteral(node.Value, node.Type, node.Key), nil
	}
	return checkCall(expected, node)
}

func checkCall(expected types.Type, node *ast.Node) (*ast.Node, []ast.Diagnostic) {
	lambda, ok := node.Type.(types.Lambda)
	if !ok {
		lambda = types.Lambda{Result: node.Type}
	}

	var expectedResult types.Type
	var expectedArgs []types.Type
	if el, ok := expected.(types.Lambda); ok {
		expectedResult = el.Result
		expectedArgs = el.Args
	} else {
		expectedResult = expected
		expectedArgs = lambda.Args
	}

	b := types.NewBindings()
	var diags []ast.Diagnostic
	if err := types.MatchTypeError(expectedResult, lambda.Result, b); err != nil {
		diags = append(diags, ast.Diagnostic{Key: node.Key, Error: err.Error()})
	}

	expandedTypes := expandArgTypes(expectedArgs, node.Args)

	if len(expandedTypes) != len(node.Args) {
		diags = append(diags, ast.Diagnostic{
			Key: node.Key,
			Error: fmt.Sprintf("Expected %d arguments, but found %d instead.",
				len(expandedTypes), len(node.Args)),
		})
	}

	// Arity errors take precedence over inner type mismatches in NArgs, and
	// any error already recorded (result mismatch, arity) short-circuits
	// before recursing into children, to avoid cascaded diagnostics from an
	// already-invalid call.
	if len(diags) > 0 {
		return nil, diags
	}

	checkedArgs := make([]*ast.Node, len(node.Args))
	resolvedArgTypes := make([]types.Type, len(expandedTypes))
	for i, argExpected := range expandedTypes {
		child := node.Args[i]
		resolved := substitute(argExpected, b)

		if child.IsLiteral {
			// Matched directly against this call's own Bindings (not a
			// fresh scope) so a literal argument can be the thing that
			// resolves a generic the result match left open — e.g.
			// case's trailing fallback literal binding T.
			if err := types.MatchTypeError(resolved, child.Type, b); err != nil {
				return nil, []ast.Diagnostic{{Key: child.Key, Error: err.Error()}}
			}
			checkedArgs[i] = ast.NewLiteral(child.Value, child.Type, child.Key)
		} else {
			// A slot still holding this call's open generic (e.g. at's
			// Vector<T> before T is bound) is not handed down: the child's
			// own T is a different variable. Such a child is checked
			// against its own declared result instead.
			childExpected := resolved
			if types.IsGeneric(resolved) {
				childExpected = child.Type
				if l, ok := child.Type.(types.Lambda); ok {
					childExpected = l.Result
				}
			}
			checkedChild, childDiags := checkCall(childExpected, child)
			if len(childDiags) > 0 {
				return nil, childDiags
			}
			// checkCall resolves generics in its OWN fresh Bindings scope —
			// the same generic name used in two different lambdas is two
			// different variables — so the checked child's result never
			// updates this call's b on its own. Match the child's
			// now-concrete result back against the slot here, in this
			// call's b, so a still-open generic in this call (e.g. "=="
			// comparing a "get" result against a literal) gets bound from
			// the call's value.
			childResult := checkedChild.Type.(types.Lambda).Result
			if err := types.MatchTypeError(resolved, childResult, b); err != nil {
				return nil, []ast.Diagnostic{{Key: child.Key, Error: err.Error()}}
			}
			checkedArgs[i] = checkedChild
		}
		resolvedArgTypes[i] = substitute(argExpected, b)
	}

	resultType := substitute(expectedResult, b)
	if tn, ok := resultType.(types.Typename); ok {
		return nil, []ast.Diagnostic{{
			Key: node.Key,
			Error: fmt.Sprintf(
				"Could not resolve %s. This expression must be wrapped in a type conversion, e.g. [\"string\", %s].",
				tn.Ident, serialize(node),
			),
		}}
	}
	return ast.NewCall(node.Name, types.Lambda{Result: resultType, Args: resolvedArgTypes}, checkedArgs, node.Key), nil
}

// expandArgTypes walks expectedArgs with an argument cursor over node.Args
// and a type cursor over expectedArgs. A plain slot is appended as-is. An
// NArgs slot greedily consumes as many full k-tuples of actual arguments as
// it can, reserving enough trailing arguments for any plain slots that
// follow it; a remainder that doesn't divide evenly into k is left
// unconsumed, which the caller reports as an arity mismatch.
//
// Expansion itself does not type-check: whether an individual actual
// argument's type fits its expanded slot is left to the ordinary recursive
// check that follows, so a type mismatch inside an otherwise
// correctly-shaped NArgs call is reported as a mismatch at that argument's
// own key, not folded into a higher-level arity diagnostic (consistent
// with the generic-binding for NArgs members coming from the call's result
// match, which every NArgs-using operator in this registry relies on).
func expandArgTypes(expectedArgs []types.Type, actualArgs []*ast.Node) []types.Type {
	var expanded []types.Type
	vi := 0
	for ti := 0; ti < len(expectedArgs); ti++ {
		t := expectedArgs[ti]
		nargs, isNArgs := t.(types.NArgs)
		if !isNArgs {
			expanded = append(expanded, t)
			vi++
			continue
		}
		k := len(nargs.Types)
		if k == 0 {
			continue
		}
		reserved := countPlainSlots(expectedArgs[ti+1:])
		available := len(actualArgs) - vi - reserved
		if available < 0 {
			available = 0
		}
		tuples := available / k
		for r := 0; r < tuples; r++ {
			expanded = append(expanded, nargs.Types...)
		}
		vi += tuples * k
	}
	return expanded
}

func countPlainSlots(rest []types.Type) int {
	n := 0
	for _, t := range rest {
		if _, ok := t.(types.NArgs); !ok {
			n++
		}
	}
	return n
}

// substitute replaces every bound Typename within t with its concrete
// binding, recursing into compound types.
func substitute(t types.Type, b *types.Bindings) types.Type {
	switch v := t.(type) {
	case types.Typename:
		if bound, ok := b.Get(v.Ident); ok {
			return bound
		}
		return v
	case types.Vector:
		return types.Vector{Of: substitute(v.Of, b)}
	case types.Array:
		return types.Array{Of: substitute(v.Of, b), N: v.N}
	case types.AnyArray:
		return types.AnyArray{Of: substitute(v.Of, b)}
	case types.Variant:
		members := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = substitute(m, b)
		}
		return types.Variant{Members: members}
	default:
		return t
	}
}

func serialize(node *ast.Node) string {
	b, err := json.Marshal(node.Serialize())
	if err != nil {
		return "..."
	}
	return string(b)
}
