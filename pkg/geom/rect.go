// Package geom holds the grid-cell geometry shared by the layout engine:
// rectangles in cell units, their overlap tests and the packing order.
package geom

import "fmt"

// Rect is a widget position and span in grid cells (not pixels).
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the first column past the rect.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rect.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of cells covered, 0 for empty rects.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%d y:%d w:%d h:%d}", r.X, r.Y, r.W, r.H)
}

// Intersects reports whether a and b share at least one cell. Ranges are
// half-open, so rects that only touch along an edge do not intersect.
func Intersects(a, b Rect) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	if a.Right() <= b.X || b.Right() <= a.X {
		return false
	}
	if a.Bottom() <= b.Y || b.Bottom() <= a.Y {
		return false
	}
	return true
}

// Touching reports whether a and b overlap or share an edge or corner.
// It tests a against b grown by half a cell on every side, done in
// doubled coordinates to stay in integers.
func Touching(a, b Rect) bool {
	if a.Empty() || b.Empty() {
		return false
	}
	a2 := Rect{X: a.X * 2, Y: a.Y * 2, W: a.W * 2, H: a.H * 2}
	b2 := Rect{X: b.X*2 - 1, Y: b.Y*2 - 1, W: b.W*2 + 2, H: b.H*2 + 2}
	return Intersects(a2, b2)
}

// AreaIntercept returns how many cells a and b have in common.
func AreaIntercept(a, b Rect) int {
	if a.Empty() || b.Empty() {
		return 0
	}
	x0, x1 := max(a.X, b.X), min(a.Right(), b.Right())
	if x1 <= x0 {
		return 0
	}
	y0, y1 := max(a.Y, b.Y), min(a.Bottom(), b.Bottom())
	if y1 <= y0 {
		return 0
	}
	return (x1 - x0) * (y1 - y0)
}

// SamePos reports whether a and b have the same position and size.
func SamePos(a, b Rect) bool {
	return a == b
}

// CopyPos copies position and size from src into dst.
func CopyPos(dst *Rect, src Rect) {
	*dst = src
}

// Swap exchanges the positions of a and b, keeping each one's size.
func Swap(a, b *Rect) {
	a.X, b.X = b.X, a.X
	a.Y, b.Y = b.Y, a.Y
}

// Constraints bounds the size a widget may be resized to. Zero means
// unconstrained.
type Constraints struct {
	MinW, MaxW int
	MinH, MaxH int
}

// Sanitize drops negative bounds and any max that is smaller than its min.
func (c Constraints) Sanitize() Constraints {
	c.MinW, c.MaxW = max(c.MinW, 0), max(c.MaxW, 0)
	c.MinH, c.MaxH = max(c.MinH, 0), max(c.MaxH, 0)
	if c.MaxW != 0 && c.MaxW < c.MinW {
		c.MaxW = 0
	}
	if c.MaxH != 0 && c.MaxH < c.MinH {
		c.MaxH = 0
	}
	return c
}

// Clamp returns r with its size forced inside the constraints.
func (c Constraints) Clamp(r Rect) Rect {
	c = c.Sanitize()
	if c.MinW > 0 && r.W < c.MinW {
		r.W = c.MinW
	}
	if c.MaxW > 0 && r.W > c.MaxW {
		r.W = c.MaxW
	}
	if c.MinH > 0 && r.H < c.MinH {
		r.H = c.MinH
	}
	if c.MaxH > 0 && r.H > c.MaxH {
		r.H = c.MaxH
	}
	return r
}
