// Package ast defines the expression tree produced by the parser and
// refined by the type checker.
package ast

import "github.com/tilestyle/expr/types"

// Node is one of two shapes: a Literal (Value holds a JSON scalar, or the
// whole array or object given to "literal"; Type is inferred from its
// form) or a Lambda call (Name is the
// operator, Type is the operator's scheme — unresolved until the checker
// runs — and Args are the parsed/checked children). Key is the dotted path
// identifying the node's position in the original input, used in every
// diagnostic.
type Node struct {
	IsLiteral bool
	Value     interface{}
	Name      string
	Type      types.Type
	Args      []*Node
	Key       string
}

// NewLiteral builds a Literal node.
func NewLiteral(value interface{}, typ types.Type, key string) *Node {
	return &Node{IsLiteral: true, Value: value, Type: typ, Key: key}
}

// NewCall builds a Lambda-call node.
func NewCall(name string, typ types.Type, args []*Node, key string) *Node {
	return &Node{Name: name, Type: typ, Args: args, Key: key}
}

// Diagnostic is a single compile-time error, keyed to the node it came
// from: {key, error}.
type Diagnostic struct {
	Key   string
	Error string
}

// Serialize re-emits the node as a plain JSON-shaped value: a literal
// becomes its raw value, a call becomes [name, ...serialized-children].
// Compiling a serialized, already-checked tree must produce the same
// result as compiling the original.
func (n *Node) Serialize() interface{} {
	if n == nil {
		return nil
	}
	if n.IsLiteral {
		return n.Value
	}
	out := make([]interface{}, 0, len(n.Args)+1)
	out = append(out, n.Name)
	for _, a := range n.Args {
		out = append(out, a.Serialize())
	}
	return out
}
