// Package core provides fundamental types and utilities shared by the
// simulation and its frontends. It has no external dependencies (especially
// no Bubble Tea or Ebiten) to keep the simulation pure and testable.
package core

// Point is a position in field units.
type Point struct {
	X, Y float64
}

// Rect represents an axis-aligned rectangle in field units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// ContainsPoint reports whether p lies inside r.
// All four edges are inclusive, so a point exactly on the border collides.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Remap maps val from [inMin, inMax] to [outMin, outMax], clamping to the
// output range.
func Remap(val, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	t := ClampF((val-inMin)/(inMax-inMin), 0, 1)
	return Lerp(outMin, outMax, t)
}
