package core

// Color is a linear RGBA value. Pixels and preview colours both use it.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a colour
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common preview colours with opaque alpha
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

// WithAlpha returns c with its alpha replaced
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Add adds all four channels
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale multiplies the colour channels, leaving alpha alone
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// ScaleAll multiplies all four channels
func (c Color) ScaleAll(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Premultiply multiplies the colour channels by alpha
func (c Color) Premultiply() Color {
	return Color{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// Over composites the premultiplied colour under c (c over under)
func (c Color) Over(under Color) Color {
	k := 1 - c.A
	return Color{
		R: c.R + k*under.R,
		G: c.G + k*under.G,
		B: c.B + k*under.B,
		A: c.A + k*under.A,
	}
}

// MaxChannel returns the largest of R, G and B
func (c Color) MaxChannel() float64 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}
