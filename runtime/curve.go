package runtime

import "math"

// Stop is one (key, lazily-evaluated value) pair of a curve. Value is a
// thunk so that evaluating a curve only ever realizes the (at most two)
// stops bracketing the input.
type Stop struct {
	Key   float64
	Value func() (Value, error)
}

// EvaluateCurve brackets input between the nearest two stops by binary
// search, computes the exponential-base interpolation factor between them,
// then delegates the final two-point lerp of the bracketing stops' realized
// values to c.Interpolator.
//
// kind is one of "step", "linear", "exponential"; base is only meaningful
// for "exponential". stops must be sorted by ascending Key (curve's compile
// callback enforces strict ascent at compile time) and contain at least
// one stop.
func (c *Context) EvaluateCurve(kind string, base float64, input float64, stops []Stop) (Value, error) {
	n := len(stops)
	if n == 1 {
		return stops[0].Value()
	}
	if input <= stops[0].Key {
		return stops[0].Value()
	}
	if input >= stops[n-1].Key {
		return stops[n-1].Value()
	}

	i := bracketIndex(stops, input)
	if kind == "step" {
		return stops[i].Value()
	}

	lo, err := stops[i].Value()
	if err != nil {
		return nil, err
	}
	hi, err := stops[i+1].Value()
	if err != nil {
		return nil, err
	}

	t := interpolationFactor(kind, base, input, stops[i].Key, stops[i+1].Key)
	return c.interpolateValues(lo, hi, t)
}

// bracketIndex returns the largest index i such that stops[i].Key <= input,
// via binary search. Callers have already handled input <= stops[0].Key and
// input >= stops[n-1].Key, so the search always terminates strictly inside
// the slice.
func bracketIndex(stops []Stop, input float64) int {
	lo, hi := 0, len(stops)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if stops[mid].Key <= input {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func interpolationFactor(kind string, base, input, k0, k1 float64) float64 {
	if kind != "exponential" || base == 1 {
		return (input - k0) / (k1 - k0)
	}
	progress := input - k0
	difference := k1 - k0
	return (math.Pow(base, progress) - 1) / (math.Pow(base, difference) - 1)
}

func (c *Context) interpolateValues(lo, hi Value, t float64) (Value, error) {
	switch l := lo.(type) {
	case float64:
		h, ok := hi.(float64)
		if !ok {
			return nil, Errorf("curve stops must share a type")
		}
		return c.Interpolator.Number(l, h, t), nil
	case Color:
		h, ok := hi.(Color)
		if !ok {
			return nil, Errorf("curve stops must share a type")
		}
		return c.Interpolator.Color(l, h, t), nil
	default:
		return nil, Errorf("Type %s is not interpolatable", c.TypeOf(lo))
	}
}
