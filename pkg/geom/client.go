package geom

// ClientRect is an element's border box in viewport pixels.
type ClientRect struct {
	Top, Bottom float64
	Left, Right float64
	Height      float64
}

// NewClientRect builds a ClientRect from an origin and size.
func NewClientRect(left, top, width, height float64) ClientRect {
	return ClientRect{
		Top:    top,
		Bottom: top + height,
		Left:   left,
		Right:  left + width,
		Height: height,
	}
}

// Width returns the horizontal extent.
func (r ClientRect) Width() float64 {
	return r.Right - r.Left
}

// Offset returns the rect moved by dx, dy.
func (r ClientRect) Offset(dx, dy float64) ClientRect {
	r.Left += dx
	r.Right += dx
	r.Top += dy
	r.Bottom += dy
	return r
}

// VisibleIn reports whether the rect lies fully inside [0, viewportHeight].
func (r ClientRect) VisibleIn(viewportHeight float64) bool {
	return r.Top >= 0 && r.Bottom <= viewportHeight
}
