// Package core provides the screen buffer, input actions and shared types
// the duel and the terminal platform exchange. It has no external
// dependencies (especially no Bubble Tea) so game logic stays testable.
package core

import "math"

// Rect is an axis-aligned cell rectangle, used for boxes and overlays.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Span maps the world interval [Lo, Hi] linearly onto Cells screen cells,
// Lo onto cell 0 and Hi onto cell Cells-1.
type Span struct {
	Lo, Hi float64
	Cells  int
}

// Cell returns the cell nearest to v. Values outside the interval map
// outside [0, Cells).
func (s Span) Cell(v float64) int {
	if s.Hi == s.Lo || s.Cells <= 1 {
		return 0
	}
	return int(math.Round((v - s.Lo) / (s.Hi - s.Lo) * float64(s.Cells-1)))
}

// Length converts a world length into a cell count, never less than 1.
func (s Span) Length(l float64) int {
	if s.Hi == s.Lo {
		return 1
	}
	return Max(1, int(math.Round(math.Abs(l)/(s.Hi-s.Lo)*float64(s.Cells-1))))
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
