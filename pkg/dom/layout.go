package dom

import (
	"gridkit/pkg/css"
)

// baseFontSize resolves em and rem lengths.
const baseFontSize = 16.0

// Layout assigns every element a border box from its computed style.
// Boxes use a simple block model: width defaults to the parent's width,
// height to the extent of the children, and elements without an explicit
// top stack below their previous in-flow sibling. position: absolute takes
// an element out of the flow.
func (d *Document) Layout() {
	sheets := d.Stylesheets()
	d.root.Top, d.root.Left = 0, 0
	d.root.Width = d.viewportWidth
	d.root.Height = 0
	d.layoutChildren(d.root, sheets)
	d.root.Height = childrenExtent(d.root)
}

func (d *Document) layoutChildren(parent *Element, sheets []*css.Stylesheet) {
	flowY := 0.0
	for _, c := range parent.Children {
		if !rendered(c) {
			c.Top, c.Left, c.Width, c.Height = 0, 0, 0, 0
			continue
		}
		style := computeStyle(c, sheets)
		if v, _ := style.Get("display"); v == "none" {
			c.Top, c.Left, c.Width, c.Height = 0, 0, 0, 0
			continue
		}

		c.Width = parent.Width
		if w, ok := d.resolveLength(style, "width", parent.Width); ok {
			c.Width = w
		}
		c.Left, _ = d.resolveLength(style, "left", parent.Width)

		h, hasHeight := d.resolveLength(style, "height", parent.Height)
		c.Height = h
		d.layoutChildren(c, sheets)
		if !hasHeight {
			c.Height = childrenExtent(c)
		}

		absolute := false
		if v, _ := style.Get("position"); v == "absolute" {
			absolute = true
		}
		if top, ok := d.resolveLength(style, "top", parent.Height); ok {
			c.Top = top
		} else if absolute {
			c.Top = 0
		} else {
			c.Top = flowY
		}
		if !absolute {
			flowY = max(flowY, c.Top+c.Height)
		}
	}
}

// resolveLength converts a length property to pixels. basis is the
// parent dimension percentages refer to.
func (d *Document) resolveLength(style *css.Style, property string, basis float64) (float64, bool) {
	val, ok := style.Get(property)
	if !ok || val == "auto" {
		return 0, false
	}
	hd, err := css.ParseHeight(val)
	if err != nil {
		return 0, false
	}
	switch hd.Unit {
	case css.UnitEm, css.UnitRem:
		return hd.H * baseFontSize, true
	case css.UnitVh:
		return hd.H * d.viewportHeight / 100, true
	case css.UnitVw:
		return hd.H * d.viewportWidth / 100, true
	case css.UnitPercent:
		return hd.H * basis / 100, true
	}
	return hd.H, true
}

func rendered(e *Element) bool {
	switch e.TagName {
	case "head", "style", "script", "meta", "link", "title":
		return false
	}
	return true
}

func childrenExtent(e *Element) float64 {
	h := 0.0
	for _, c := range e.Children {
		h = max(h, c.Top+c.Height)
	}
	return h
}
