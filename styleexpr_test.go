package styleexpr_test

import (
	"math"
	"testing"

	"github.com/matryer/is"

	"github.com/tilestyle/expr"
)

// Scenario 1: variadic "+" folds over three numbers; constant in both
// feature and zoom since it touches neither.
func TestScenarioSum(t *testing.T) {
	is := is.New(t)
	c := styleexpr.CompileExpression([]interface{}{"+", 1.0, 2.0, 3.0})
	is.Equal(c.Result, styleexpr.Success)
	is.True(c.IsFeatureConstant)
	is.True(c.IsZoomConstant)

	v, err := c.Evaluate(nil, styleexpr.Feature{})
	is.NoErr(err)
	is.Equal(v, 6.0)
}

// Scenario 2: case/==/get/properties select a branch by feature property;
// not feature-constant.
func TestScenarioCaseOnProperty(t *testing.T) {
	is := is.New(t)
	expr := []interface{}{
		"case",
		[]interface{}{"==", []interface{}{"get", []interface{}{"properties"}, "x"}, 1.0},
		"a",
		"b",
	}
	c := styleexpr.CompileExpression(expr)
	is.Equal(c.Result, styleexpr.Success)
	is.True(!c.IsFeatureConstant)

	v, err := c.Evaluate(nil, styleexpr.Feature{Properties: map[string]styleexpr.Value{"x": 1.0}})
	is.NoErr(err)
	is.Equal(v, "a")

	v, err = c.Evaluate(nil, styleexpr.Feature{Properties: map[string]styleexpr.Value{"x": 2.0}})
	is.NoErr(err)
	is.Equal(v, "b")
}

// Scenario 3: exponential curve keyed on zoom; not zoom-constant.
func TestScenarioExponentialCurveOnZoom(t *testing.T) {
	is := is.New(t)
	expr := []interface{}{
		"curve",
		[]interface{}{"exponential", 2.0},
		[]interface{}{"zoom"},
		0.0, 0.0,
		10.0, 100.0,
	}
	c := styleexpr.CompileExpression(expr)
	is.Equal(c.Result, styleexpr.Success)
	is.True(!c.IsZoomConstant)

	v, err := c.Evaluate(map[string]styleexpr.Value{"zoom": 5.0}, styleexpr.Feature{})
	is.NoErr(err)
	want := (math.Pow(2, 5) - 1) / (math.Pow(2, 10) - 1) * 100
	got, ok := v.(float64)
	is.True(ok)
	is.True(math.Abs(got-want) < 1e-6)
}

// Scenario 4: rgba divides components by 255 and defaults nothing since
// alpha is supplied explicitly.
func TestScenarioRGBA(t *testing.T) {
	is := is.New(t)
	c := styleexpr.CompileExpression([]interface{}{"rgba", 255.0, 0.0, 0.0, 1.0})
	is.Equal(c.Result, styleexpr.Success)

	v, err := c.Evaluate(nil, styleexpr.Feature{})
	is.NoErr(err)
	col, ok := v.(styleexpr.Color)
	is.True(ok)
	is.Equal(col.R, 1.0)
	is.Equal(col.G, 0.0)
	is.Equal(col.B, 0.0)
	is.Equal(col.A, 1.0)
}

// Scenario 5: get on a missing key raises an evaluation error with the
// fixed ExpressionEvaluationError name and exact message.
func TestScenarioGetMissingKey(t *testing.T) {
	is := is.New(t)
	expr := []interface{}{"get", []interface{}{"properties"}, "missing"}
	c := styleexpr.CompileExpression(expr)
	is.Equal(c.Result, styleexpr.Success)

	_, err := c.Evaluate(nil, styleexpr.Feature{Properties: map[string]styleexpr.Value{}})
	is.True(err != nil)
	is.Equal(err.Error(), "ExpressionEvaluationError: Property missing not found in object with keys: []")
}

// Scenario 6: mixing a string into "+" fails compilation with a type
// mismatch keyed on the offending argument.
func TestScenarioPlusTypeMismatch(t *testing.T) {
	is := is.New(t)
	c := styleexpr.CompileExpression([]interface{}{"+", 1.0, "two"})
	is.Equal(c.Result, styleexpr.Error)
	is.Equal(len(c.Errors), 1)
	is.Equal(c.Errors[0].Key, ".2")
	is.Equal(c.Errors[0].Error, "Expected Number but found String instead.")
}

// "literal" embeds a raw array directly, bypassing the rule that every
// JSON array is itself a call, and "at" indexes into it.
func TestLiteralArrayIndexedByAt(t *testing.T) {
	is := is.New(t)
	expr := []interface{}{"at", []interface{}{"literal", []interface{}{10.0, 20.0, 30.0}}, 1.0}
	c := styleexpr.CompileExpression(expr)
	is.Equal(c.Result, styleexpr.Success)

	v, err := c.Evaluate(nil, styleexpr.Feature{})
	is.NoErr(err)
	is.Equal(v, 20.0)
}

// Report renders a readable box for both a successful compile and one with
// diagnostics, exercising the box-cli-maker/simpletable-backed formatter.
func TestReportRendersBothOutcomes(t *testing.T) {
	is := is.New(t)
	ok := styleexpr.CompileExpression([]interface{}{"+", 1.0, 2.0})
	is.Equal(ok.Result, styleexpr.Success)
	is.True(len(ok.Report(`["+",1,2]`)) > 0)

	bad := styleexpr.CompileExpression([]interface{}{"+", 1.0, "two"})
	is.Equal(bad.Result, styleexpr.Error)
	report := bad.Report(`["+",1,"two"]`)
	is.True(len(report) > 0)
}
