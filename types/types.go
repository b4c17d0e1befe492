// Package types implements the type algebra of the expression language: the
// set of type constructors, their structural equality, and their
// diagnostic-facing pretty names.
//
// The set is closed. A Type is one of: a Primitive (Null, Number, String,
// Boolean, Color, Object, Value, Interpolation), Vector[T], Array[T,N],
// AnyArray[T], Variant{members...}, Typename(name), NArgs{types...} or
// Lambda{result, args...}.
package types

import "fmt"

// Type is implemented by every member of the closed type sum. Name returns
// the pretty name used verbatim in diagnostics.
type Type interface {
	Name() string
}

// Primitive is a leaf type. The zero value is Null.
type Primitive int

const (
	Null Primitive = iota
	Number
	String
	Boolean
	Color
	Object
	Value
	Interpolation
)

var primitiveNames = map[Primitive]string{
	Null:          "Null",
	Number:        "Number",
	String:        "String",
	Boolean:       "Boolean",
	Color:         "Color",
	Object:        "Object",
	Value:         "Value",
	Interpolation: "Interpolation",
}

func (p Primitive) Name() string {
	if n, ok := primitiveNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// Vector is an ordered sequence of Of, length unconstrained.
type Vector struct {
	Of Type
}

func (v Vector) Name() string { return "Vector<" + v.Of.Name() + ">" }

// Array is an ordered sequence of Of with a fixed length N.
type Array struct {
	Of Type
	N  int
}

func (a Array) Name() string { return fmt.Sprintf("Array<%s,%d>", a.Of.Name(), a.N) }

// AnyArray matches an Array of Of for any N.
type AnyArray struct {
	Of Type
}

func (a AnyArray) Name() string { return "Array<" + a.Of.Name() + ">" }

// Variant is a union type; it matches if any member matches.
type Variant struct {
	Members []Type
}

func (v Variant) Name() string {
	s := "("
	for i, m := range v.Members {
		if i > 0 {
			s += " | "
		}
		s += m.Name()
	}
	return s + ")"
}

// Typename is a universally-quantified generic placeholder, resolved during
// type checking. Two Typenames are equal iff their Ident fields match; the
// same Name used in two different lambdas refers to two different
// variables, resolved independently by each call's Bindings.
type Typename struct {
	Ident string
}

func (t Typename) Name() string { return t.Ident }

// NArgs is a variadic argument pattern: it consumes repeating k-tuples of
// Types from an operator's argument list. NArgs is only meaningful inside
// Lambda.Args; it is never a legal result type or legal actual argument
// type.
type NArgs struct {
	Types []Type
}

func (n NArgs) Name() string {
	s := "NArgs<"
	for i, t := range n.Types {
		if i > 0 {
			s += ","
		}
		s += t.Name()
	}
	return s + ">"
}

// Lambda is an operator's type scheme: a declared Result type given Args.
// Matching treats a Lambda actual as its Result: an operator call,
// wherever it is used as a value, stands for the value it produces.
type Lambda struct {
	Result Type
	Args   []Type
}

func (l Lambda) Name() string {
	s := "("
	for i, a := range l.Args {
		if i > 0 {
			s += ", "
		}
		s += a.Name()
	}
	return s + ") -> " + l.Result.Name()
}

// Equal reports structural equality of two types. Typenames compare equal
// only by their Ident; every other kind compares its fields recursively.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av == bv
	case Vector:
		bv, ok := b.(Vector)
		return ok && Equal(av.Of, bv.Of)
	case Array:
		bv, ok := b.(Array)
		return ok && av.N == bv.N && Equal(av.Of, bv.Of)
	case AnyArray:
		bv, ok := b.(AnyArray)
		return ok && Equal(av.Of, bv.Of)
	case Variant:
		bv, ok := b.(Variant)
		if !ok || len(av.Members) != len(bv.Members) {
			return false
		}
		for i := range av.Members {
			if !Equal(av.Members[i], bv.Members[i]) {
				return false
			}
		}
		return true
	case Typename:
		bv, ok := b.(Typename)
		return ok && av.Ident == bv.Ident
	case NArgs:
		bv, ok := b.(NArgs)
		if !ok || len(av.Types) != len(bv.Types) {
			return false
		}
		for i := range av.Types {
			if !Equal(av.Types[i], bv.Types[i]) {
				return false
			}
		}
		return true
	case Lambda:
		bv, ok := b.(Lambda)
		if !ok || len(av.Args) != len(bv.Args) || !Equal(av.Result, bv.Result) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// maxGenericDepth bounds the recursion in IsGeneric so that a
// self-referential type (one built, in error, to contain itself) cannot
// hang the checker. Ordinary types built by the parser and registry are a
// few levels deep at most.
const maxGenericDepth = 64

// IsGeneric reports whether a Typename occurs anywhere within t.
func IsGeneric(t Type) bool {
	return isGeneric(t, 0)
}

func isGeneric(t Type, depth int) bool {
	if depth > maxGenericDepth {
		return true
	}
	switch v := t.(type) {
	case Typename:
		return true
	case Vector:
		return isGeneric(v.Of, depth+1)
	case Array:
		return isGeneric(v.Of, depth+1)
	case AnyArray:
		return isGeneric(v.Of, depth+1)
	case Variant:
		for _, m := range v.Members {
			if isGeneric(m, depth+1) {
				return true
			}
		}
		return false
	case NArgs:
		for _, m := range v.Types {
			if isGeneric(m, depth+1) {
				return true
			}
		}
		return false
	case Lambda:
		if isGeneric(v.Result, depth+1) {
			return true
		}
		for _, a := range v.Args {
			if isGeneric(a, depth+1) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// valueMatches reports whether actual is one of the types the top type
// Value matches: any Primitive except Interpolation, or Vector<Value>.
func valueMatches(actual Type) bool {
	if p, ok := actual.(Primitive); ok {
		return p != Interpolation
	}
	if v, ok := actual.(Vector); ok {
		return Equal(v.Of, Value)
	}
	return false
}
