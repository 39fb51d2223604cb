package scroll

import (
	"math"

	"go.uber.org/zap"

	"gridkit/pkg/dom"
)

// Coordinator computes drag-time scrolling against a Host. It holds no
// per-gesture state; use Begin to cache the container for one gesture.
type Coordinator struct {
	host   Host
	logger *zap.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Coordinator over host.
func New(host Host, opts ...Option) *Coordinator {
	c := &Coordinator{
		host:   host,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("scroll")
	return c
}

// EnsureVisible scrolls el's scroll container by at most dragDeltaY so a
// partly hidden element comes back into the viewport, then adds the
// distance the container actually moved to pos.Top. It returns that
// distance, which may be smaller than requested if the container clamps.
func (c *Coordinator) EnsureVisible(el *dom.Element, pos *Position, dragDeltaY float64) float64 {
	return c.ensureVisible(nil, el, pos, dragDeltaY)
}

// AutoScrollOnEdgeApproach nudges el's scroll container when pointerY
// (viewport pixels) is within edgeDistance of the container's top or
// bottom edge. It scrolls once per call and returns the distance the
// container actually moved, which the host may clamp.
func (c *Coordinator) AutoScrollOnEdgeApproach(pointerY float64, el *dom.Element, edgeDistance float64) float64 {
	return c.autoScroll(nil, pointerY, el, edgeDistance)
}

// Begin locates el's scroll container once and returns a Gesture that
// reuses it until the drag ends.
func (c *Coordinator) Begin(el *dom.Element) *Gesture {
	container := FindScrollAncestor(c.host, el)
	c.logger.Debug("drag started",
		zap.String("container", describe(container)),
		zap.Float64("scrollTop", c.host.ScrollTop(container)))
	return &Gesture{c: c, el: el, container: container}
}

func (c *Coordinator) ensureVisible(container, el *dom.Element, pos *Position, dragDeltaY float64) float64 {
	rect := c.host.BoundingRect(el)
	viewport := c.host.ViewportHeight()
	if rect.VisibleIn(viewport) {
		return 0
	}

	offsetUp := rect.Top
	offsetDown := rect.Bottom - viewport
	taller := rect.Height > viewport

	var delta float64
	switch {
	case dragDeltaY < 0 && offsetUp < 0:
		if taller {
			delta = dragDeltaY
		} else {
			delta = -math.Min(math.Abs(offsetUp), math.Abs(dragDeltaY))
		}
	case dragDeltaY > 0 && offsetDown > 0:
		if taller {
			delta = dragDeltaY
		} else {
			delta = math.Min(math.Abs(offsetDown), math.Abs(dragDeltaY))
		}
	default:
		return 0
	}

	if container == nil {
		container = FindScrollAncestor(c.host, el)
	}
	prevScroll := c.host.ScrollTop(container)
	c.host.SetScrollTop(container, prevScroll+delta, false)
	actual := c.host.ScrollTop(container) - prevScroll
	if pos != nil {
		pos.Top += actual
	}

	c.logger.Debug("scrolled to keep element visible",
		zap.String("container", describe(container)),
		zap.Float64("requested", delta),
		zap.Float64("applied", actual))
	return actual
}

func (c *Coordinator) autoScroll(container *dom.Element, pointerY float64, el *dom.Element, edgeDistance float64) float64 {
	if container == nil {
		container = FindScrollAncestor(c.host, el)
	}
	height := c.host.ClientHeight(container)
	if container != c.host.ScrollingElement() {
		pointerY -= c.host.BoundingRect(container).Top
	}

	var delta float64
	switch {
	case pointerY < edgeDistance:
		delta = pointerY - edgeDistance
	case pointerY > height-edgeDistance:
		delta = edgeDistance - (height - pointerY)
	default:
		return 0
	}
	prev := c.host.ScrollTop(container)
	c.host.SetScrollTop(container, prev+delta, true)
	actual := c.host.ScrollTop(container) - prev

	c.logger.Debug("edge auto-scroll",
		zap.String("container", describe(container)),
		zap.Float64("pointerY", pointerY),
		zap.Float64("delta", delta),
		zap.Float64("applied", actual))
	return actual
}

func describe(el *dom.Element) string {
	if el == nil {
		return "<nil>"
	}
	if id := el.ID(); id != "" {
		return el.TagName + "#" + id
	}
	return el.TagName
}
