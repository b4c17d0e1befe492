// Package runtime provides the Evaluation Context: the per-callable record
// of helper functions an operator's compiled body calls into at evaluation
// time: asArray, asObject, get, typeOf, color, rgba, evaluateCurve. It also
// defines the two runtime input shapes (Feature, map properties) and the
// evaluation-time error type.
//
// Two collaborators are consumed here only through small interfaces:
// parsing a CSS-style color string (ColorParser) and linearly interpolating
// a number or color between two endpoints at a factor t∈[0,1]
// (Interpolator). The curve stop lookup itself — the binary search and the
// exponential-base factor computation — is core and lives in
// Context.EvaluateCurve.
package runtime

import "fmt"

// Value is any runtime value the compiler manipulates: nil, float64,
// string, bool, Color, map[string]interface{}, or []interface{}.
type Value = interface{}

// Geometry is the feature's geometry, reduced to the one field the
// language's geometry_type operator reads.
type Geometry struct {
	Type string
}

// Feature is the second runtime input to a compiled expression.
// Properties, Geometry and ID all default to their zero value
// ({}, {}, nil) when not supplied.
type Feature struct {
	Properties map[string]Value
	Geometry   Geometry
	ID         Value
}

// Color is the runtime representation of the Color primitive: four
// components in [0,1], in RGBA order.
type Color struct {
	R, G, B, A float64
}

// ColorParser parses a CSS-style color string into RGBA, consumed as a
// black box by the core. defaultColorParser below is a small,
// self-contained stand-in, not a CSS color-spec implementation.
type ColorParser interface {
	Parse(s string) (Color, error)
}

// Interpolator linearly interpolates numbers and colors at a factor
// t∈[0,1], consumed as a black box by the core. The default implementation
// (defaultInterpolator) is ordinary linear/componentwise interpolation.
type Interpolator interface {
	Number(a, b, t float64) float64
	Color(a, b Color, t float64) Color
}

// Context is the Evaluation Context, built from the runtime inputs for each
// evaluation. It is read-only once constructed and safe for concurrent
// evaluation by reentrant callers.
type Context struct {
	MapProperties map[string]Value
	Feature       Feature
	ColorParser   ColorParser
	Interpolator  Interpolator
}

// NewContext builds a Context, defaulting MapProperties/Feature fields to
// their empty forms and wiring in the default black-box collaborators.
func NewContext(mapProperties map[string]Value, feature Feature) *Context {
	if mapProperties == nil {
		mapProperties = map[string]Value{}
	}
	if feature.Properties == nil {
		feature.Properties = map[string]Value{}
	}
	return &Context{
		MapProperties: mapProperties,
		Feature:       feature,
		ColorParser:   defaultColorParser{},
		Interpolator:  defaultInterpolator{},
	}
}

// EvaluationError is the evaluation-time error type. Its Error() string is
// always prefixed "ExpressionEvaluationError: " so callers can detect it
// reliably.
type EvaluationError struct {
	Message string
}

func (e *EvaluationError) Error() string {
	return "ExpressionEvaluationError: " + e.Message
}

// Errorf builds an *EvaluationError with a formatted message.
func Errorf(format string, args ...interface{}) error {
	return &EvaluationError{Message: fmt.Sprintf(format, args...)}
}

// AsArray coerces v to a []Value, raising an evaluation error if v's shape
// doesn't match. Backs the json_array operator.
func (c *Context) AsArray(v Value) ([]Value, error) {
	arr, ok := v.([]Value)
	if !ok {
		return nil, Errorf("Expected value to be an array, but found %s instead.", c.TypeOf(v))
	}
	return arr, nil
}

// AsObject coerces v to a map[string]Value, raising an evaluation error if
// v's shape doesn't match. Backs the object operator.
func (c *Context) AsObject(v Value) (map[string]Value, error) {
	obj, ok := v.(map[string]Value)
	if !ok {
		return nil, Errorf("Expected value to be an object, but found %s instead.", c.TypeOf(v))
	}
	return obj, nil
}

// Get looks up key in obj, raising an evaluation error if obj is nil or the
// key is absent. Backs the get operator.
func (c *Context) Get(obj map[string]Value, key string) (Value, error) {
	if obj == nil {
		return nil, Errorf("Property %s not found in object with keys: []", key)
	}
	v, ok := obj[key]
	if !ok {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		return nil, Errorf("Property %s not found in object with keys: %s", key, formatKeys(keys))
	}
	return v, nil
}

// TypeOf returns one of {"Null","Boolean","Number","String","Color",
// "Object","Vector<Value>"} describing v's runtime shape. Backs the typeof
// operator and is also used to word evaluation-error messages.
func (c *Context) TypeOf(v Value) string {
	switch v.(type) {
	case nil:
		return "Null"
	case bool:
		return "Boolean"
	case float64:
		return "Number"
	case string:
		return "String"
	case Color:
		return "Color"
	case map[string]Value:
		return "Object"
	case []Value:
		return "Vector<Value>"
	default:
		return "Null"
	}
}

// ParseColor parses s via the bound ColorParser, wrapping a parse failure
// as an evaluation error. Backs the color operator.
func (c *Context) ParseColor(s string) (Color, error) {
	col, err := c.ColorParser.Parse(s)
	if err != nil {
		return Color{}, Errorf("Could not parse color from value '%s'", s)
	}
	return col, nil
}

// RGBA builds a Color from 0-255 red/green/blue components, dividing them
// by 255 into a fresh value that never aliases caller state; alpha is
// taken as given.
func (c *Context) RGBA(r, g, b, a float64) Color {
	return Color{R: r / 255, G: g / 255, B: b / 255, A: a}
}

func formatKeys(keys []string) string {
	s := "["
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		s += k
	}
	return s + "]"
}
