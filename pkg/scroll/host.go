// Package scroll keeps a dragged widget visible by scrolling its nearest
// scrollable ancestor, and reports how far the container actually moved
// so the grid engine can correct the widget's logical position.
package scroll

import (
	"gridkit/pkg/css"
	"gridkit/pkg/dom"
	"gridkit/pkg/geom"
)

// Host is the geometry and scroll state the coordinator reads and writes.
// Elements are opaque handles; *dom.Document implements Host.
type Host interface {
	Attached(el *dom.Element) bool
	Parent(el *dom.Element) *dom.Element
	BoundingRect(el *dom.Element) geom.ClientRect
	Overflow(el *dom.Element) (x, y css.Overflow)
	ScrollTop(el *dom.Element) float64
	SetScrollTop(el *dom.Element, top float64, smooth bool)
	ClientHeight(el *dom.Element) float64
	ViewportHeight() float64
	ScrollingElement() *dom.Element
}

var _ Host = (*dom.Document)(nil)

// Position is the caller's logical top of the dragged element.
type Position struct {
	Top float64
}

// State is a snapshot of a scroll container's offset.
type State struct {
	ContainerTop float64
}

// FindScrollAncestor returns the nearest element, starting with start
// itself, whose overflow on either axis is auto or scroll. It falls back
// to the host's scrolling element when nothing qualifies or start is nil
// or detached.
func FindScrollAncestor(h Host, start *dom.Element) *dom.Element {
	if !h.Attached(start) {
		return h.ScrollingElement()
	}
	for el := start; el != nil; el = h.Parent(el) {
		x, y := h.Overflow(el)
		if x.Scrollable() || y.Scrollable() {
			return el
		}
	}
	return h.ScrollingElement()
}
