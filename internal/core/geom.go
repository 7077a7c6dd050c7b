// Package core provides fundamental types shared by the round logic and the
// presentation layer. It has no dependency on Bubble Tea so the round core
// stays pure and testable.
package core

// Rect represents an axis-aligned box on the screen grid.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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

// ProjectPercent maps a field coordinate expressed in percent of the field
// (0..100) onto a cell index in [0, cells).
func ProjectPercent(pct float64, cells int) int {
	if cells <= 0 {
		return 0
	}
	return Clamp(int(pct/100*float64(cells)), 0, cells-1)
}
