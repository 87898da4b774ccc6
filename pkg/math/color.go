package math

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Named colors used by the viewer.
var (
	White     = Color{1, 1, 1, 1}
	Black     = Color{0, 0, 0, 1}
	Red       = Color{1, 0, 0, 1}
	Green     = Color{0, 1, 0, 1}
	Blue      = Color{0, 0, 1, 1}
	Yellow    = Color{1, 1, 0, 1}
	DimGray   = Color{0.2, 0.2, 0.2, 1}
	RoyalBlue = RGB255(65, 105, 255)
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// RGB255 returns an opaque color from 8-bit components.
func RGB255(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// Scale multiplies every component, alpha included, by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mul returns the component-wise product.
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Add returns the component-wise sum.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Vec4 returns the color as an RGBA vector.
func (c Color) Vec4() Vec4 {
	return Vec4{c.R, c.G, c.B, c.A}
}
