package runtime

// defaultInterpolator linearly interpolates numbers and, componentwise,
// colors. Like defaultColorParser, this exists only so the library runs
// without an external collaborator supplying the Interpolator interface.
type defaultInterpolator struct{}

func (defaultInterpolator) Number(a, b, t float64) float64 {
	return a + (b-a)*t
}

func (defaultInterpolator) Color(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
