package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float32
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Color3 is a linear RGB color.
type Color3 struct {
	R, G, B float32
}

// Gray returns a color with all channels set to v.
func Gray(v float32) Color3 {
	return Color3{v, v, v}
}

// Add returns c + other.
func (c Color3) Add(other Color3) Color3 {
	return Color3{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Scale returns c * s.
func (c Color3) Scale(s float32) Color3 {
	return Color3{c.R * s, c.G * s, c.B * s}
}

// IsGray reports whether the color is achromatic (r == g == b).
func (c Color3) IsGray() bool {
	return c.R == c.G && c.R == c.B
}
