package scroll

import "gridkit/pkg/dom"

// Gesture caches the scroll container for a single drag. It is discarded
// when the drag ends; there is nothing to cancel.
type Gesture struct {
	c         *Coordinator
	el        *dom.Element
	container *dom.Element
}

// Container returns the cached scroll container.
func (g *Gesture) Container() *dom.Element {
	return g.container
}

// State reports the container's current offset.
func (g *Gesture) State() State {
	return State{ContainerTop: g.c.host.ScrollTop(g.container)}
}

// EnsureVisible is Coordinator.EnsureVisible against the cached container.
func (g *Gesture) EnsureVisible(pos *Position, dragDeltaY float64) float64 {
	return g.c.ensureVisible(g.container, g.el, pos, dragDeltaY)
}

// AutoScroll is Coordinator.AutoScrollOnEdgeApproach against the cached
// container.
func (g *Gesture) AutoScroll(pointerY, edgeDistance float64) float64 {
	return g.c.autoScroll(g.container, pointerY, g.el, edgeDistance)
}
