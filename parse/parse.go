// Package parse lifts raw JSON-shaped expression input into an untyped
// ast.Node tree. It performs no inference; every node's Type starts out as
// the operator's declared (possibly generic) scheme, or the literal type
// inferred directly from the JSON value's own shape (a primitive, or
// Vector<Value>/Object for the array or object given to "literal").
package parse

import (
	"fmt"

	"github.com/tilestyle/expr/ast"
	"github.com/tilestyle/expr/registry"
	"github.com/tilestyle/expr/types"
)

// Parse turns expr into a Node tree, or returns a single diagnostic
// describing why it could not.
func Parse(expr interface{}) (*ast.Node, *ast.Diagnostic) {
	return parse(expr, "")
}

func parse(expr interface{}, key string) (*ast.Node, *ast.Diagnostic) {
	switch v := expr.(type) {
	case nil:
		return ast.NewLiteral(nil, types.Null, key), nil
	case string:
		return ast.NewLiteral(v, types.String, key), nil
	case float64:
		return ast.NewLiteral(v, types.Number, key), nil
	case bool:
		return ast.NewLiteral(v, types.Boolean, key), nil
	case []interface{}:
		return parseCall(v, key)
	default:
		return nil, &ast.Diagnostic{
			Key:   key,
			Error: fmt.Sprintf("expected an array, but found %s instead.", jsonTypeName(expr)),
		}
	}
}

func parseCall(items []interface{}, key string) (*ast.Node, *ast.Diagnostic) {
	if len(items) == 0 {
		return nil, &ast.Diagnostic{Key: key, Error: "expected an array, but found empty array instead."}
	}
	name, ok := items[0].(string)
	if !ok {
		return nil, &ast.Diagnostic{
			Key:   appendKey(key, "0"),
			Error: fmt.Sprintf("expected an array, but found %s instead.", jsonTypeName(items[0])),
		}
	}
	def, ok := registry.Lookup(name)
	if !ok {
		return nil, &ast.Diagnostic{Key: key, Error: "unknown function " + name}
	}

	if name == "literal" {
		return parseLiteral(def, items, key)
	}

	args := make([]*ast.Node, 0, len(items)-1)
	for i, raw := range items[1:] {
		childKey := appendKey(key, fmt.Sprintf("%d", i+1))
		child, diag := parse(raw, childKey)
		if diag != nil {
			return nil, diag
		}
		args = append(args, child)
	}
	return ast.NewCall(name, def.Scheme, args, key), nil
}

// parseLiteral handles "literal"'s one argument as a raw JSON value taken
// wholesale, never as a nested call — an array or object given to
// "literal" is the only way to embed an Array/Object value directly in an
// expression, since every other JSON array position is parsed as a call.
func parseLiteral(def *registry.Definition, items []interface{}, key string) (*ast.Node, *ast.Diagnostic) {
	if len(items) != 2 {
		return nil, &ast.Diagnostic{
			Key:   key,
			Error: fmt.Sprintf("Expected 1 arguments, but found %d instead.", len(items)-1),
		}
	}
	value, typ := naturalLiteralValue(items[1])
	arg := ast.NewLiteral(value, typ, appendKey(key, "1"))
	return ast.NewCall(def.Key, def.Scheme, []*ast.Node{arg}, key), nil
}

// naturalLiteralValue converts a raw JSON-decoded value into its runtime
// form and the type describing it wholesale: scalars keep their own
// primitive type, arrays become Vector<Value> and objects become Object,
// regardless of what they contain — literal's contents are never
// type-checked element by element.
func naturalLiteralValue(v interface{}) (interface{}, types.Type) {
	switch val := v.(type) {
	case nil:
		return nil, types.Null
	case string:
		return val, types.String
	case float64:
		return val, types.Number
	case bool:
		return val, types.Boolean
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			cv, _ := naturalLiteralValue(e)
			out[i] = cv
		}
		return out, types.Vector{Of: types.Value}
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			cv, _ := naturalLiteralValue(e)
			out[k] = cv
		}
		return out, types.Object
	default:
		return val, types.Value
	}
}

func appendKey(parent, child string) string {
	return parent + "." + child
}

func jsonTypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
