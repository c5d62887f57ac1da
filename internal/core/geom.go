// Package core provides fundamental types and utilities shared by the game
// and its hosts. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
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

// Box is an axis-aligned bounding box in world units.
// The box spans [X, X+W] horizontally and [Y, Y+H] vertically; the vertical
// axis direction is up to the caller since overlap tests are symmetric.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// MaxX returns the far horizontal edge.
func (b Box) MaxX() float64 {
	return b.X + b.W
}

// MaxY returns the far vertical edge.
func (b Box) MaxY() float64 {
	return b.Y + b.H
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 {
	return b.X + b.W/2
}

// Valid reports whether the box has positive dimensions.
func (b Box) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Overlaps reports whether a and b overlap once b is inflated by margin on
// every side. A negative margin shrinks b, so touching or barely grazing
// boxes do not count; a positive margin makes near misses count.
// Boxes without positive dimensions never overlap anything.
func Overlaps(a, b Box, margin float64) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.X < b.MaxX()+margin &&
		a.MaxX() > b.X-margin &&
		a.Y < b.MaxY()+margin &&
		a.MaxY() > b.Y-margin
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
