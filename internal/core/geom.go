// Package core provides fundamental types shared by the simulation and the
// platform layer: geometry, input frames, runtime configuration and the
// character screen buffer. It has no dependency on Bubble Tea so game logic
// stays pure and testable.
package core

// Rect is an axis-aligned bounding box in world units (pixels for the tank
// simulation, cells for the screen buffer).
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects reports whether the two rectangles share any area.
// Touching edges do not count as an intersection.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Within reports whether r lies entirely inside bounds.
func (r Rect) Within(bounds Rect) bool {
	return r.X >= bounds.X && r.Y >= bounds.Y && r.Right() <= bounds.Right() && r.Bottom() <= bounds.Bottom()
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Mod returns the non-negative remainder of a divided by m.
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
