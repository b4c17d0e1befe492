package parse_test

import (
	"testing"

	"github.com/tilestyle/expr/parse"
)

func TestParseLiteral(t *testing.T) {
	node, diag := parse.Parse(float64(42))
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %+v", diag)
	}
	if !node.IsLiteral || node.Value != float64(42) {
		t.Errorf("expected literal 42, got %+v", node)
	}
}

func TestParseUnknownFunction(t *testing.T) {
	_, diag := parse.Parse([]interface{}{"nope", 1.0})
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Error != "unknown function nope" {
		t.Errorf("unexpected error: %q", diag.Error)
	}
}

func TestParseNonArray(t *testing.T) {
	_, diag := parse.Parse(map[string]interface{}{"a": 1})
	if diag == nil {
		t.Fatal("expected a diagnostic")
	}
	if diag.Error != "expected an array, but found object instead." {
		t.Errorf("unexpected error: %q", diag.Error)
	}
}

func TestParseLiteralArrayEscapesCallParsing(t *testing.T) {
	node, diag := parse.Parse([]interface{}{"literal", []interface{}{1.0, 2.0, 3.0}})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %+v", diag)
	}
	if node.Name != "literal" || len(node.Args) != 1 {
		t.Fatalf("expected a single-argument literal call, got %+v", node)
	}
	arg := node.Args[0]
	if !arg.IsLiteral {
		t.Fatalf("expected literal's argument to be a Literal node, not a nested call: %+v", arg)
	}
	vals, ok := arg.Value.([]interface{})
	if !ok || len(vals) != 3 {
		t.Fatalf("expected the raw array value preserved wholesale, got %+v", arg.Value)
	}
}

func TestParseLiteralObject(t *testing.T) {
	node, diag := parse.Parse([]interface{}{"literal", map[string]interface{}{"a": 1.0}})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %+v", diag)
	}
	arg := node.Args[0]
	obj, ok := arg.Value.(map[string]interface{})
	if !ok || obj["a"] != 1.0 {
		t.Errorf("expected the raw object value preserved wholesale, got %+v", arg.Value)
	}
}

func TestParseLiteralArity(t *testing.T) {
	_, diag := parse.Parse([]interface{}{"literal", 1.0, 2.0})
	if diag == nil {
		t.Fatal("expected an arity diagnostic")
	}
	if diag.Error != "Expected 1 arguments, but found 2 instead." {
		t.Errorf("unexpected error: %q", diag.Error)
	}
}

func TestParseNestedKeys(t *testing.T) {
	node, diag := parse.Parse([]interface{}{"+", 1.0, []interface{}{"+", 2.0, 3.0}})
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %+v", diag)
	}
	if node.Args[1].Key != ".2" {
		t.Errorf("expected nested call key \".2\", got %q", node.Args[1].Key)
	}
	if node.Args[1].Args[0].Key != ".2.1" {
		t.Errorf("expected doubly-nested key \".2.1\", got %q", node.Args[1].Args[0].Key)
	}
}
