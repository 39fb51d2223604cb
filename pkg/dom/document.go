package dom

import (
	"fmt"
	"sort"
	"strings"

	"gridkit/pkg/css"
	"gridkit/pkg/geom"
)

// Document owns an element tree and the viewport it is shown in. The root
// <html> element is the scrolling element: its ScrollTop is the viewport's
// scroll position.
//
// A Document is not safe for concurrent use.
type Document struct {
	root *Element
	head *Element
	body *Element

	viewportWidth  float64
	viewportHeight float64
}

// NewDocument creates an empty <html><head/><body/></html> document.
func NewDocument(viewportWidth, viewportHeight float64) *Document {
	root := NewElement("html", nil)
	head := root.AppendChild(NewElement("head", nil))
	body := root.AppendChild(NewElement("body", nil))
	return &Document{
		root:           root,
		head:           head,
		body:           body,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// Parse builds a document from body markup and lays it out. <style>
// elements may appear anywhere in the markup.
func Parse(markup string, viewportWidth, viewportHeight float64) (*Document, error) {
	doc := NewDocument(viewportWidth, viewportHeight)
	if err := ParseFragment(doc.body, markup); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc.Layout()
	return doc, nil
}

func (d *Document) Root() *Element { return d.root }
func (d *Document) Head() *Element { return d.head }
func (d *Document) Body() *Element { return d.body }

// Attached reports whether e is part of this document's tree.
func (d *Document) Attached(e *Element) bool {
	return e != nil && d.root.Contains(e)
}

// Stylesheets parses every <style> element in tree order.
func (d *Document) Stylesheets() []*css.Stylesheet {
	var sheets []*css.Stylesheet
	d.root.Walk(func(e *Element) bool {
		if e.TagName == "style" {
			if sheet, err := css.ParseStylesheet(e.Text); err == nil {
				sheets = append(sheets, sheet)
			}
		}
		return false
	})
	return sheets
}

// Scripts returns the bodies of every <script> element in tree order.
func (d *Document) Scripts() []string {
	var scripts []string
	d.root.Walk(func(e *Element) bool {
		if e.TagName == "script" && strings.TrimSpace(e.Text) != "" {
			scripts = append(scripts, e.Text)
		}
		return false
	})
	return scripts
}

// ComputedStyle runs the cascade for e: matching rules by ascending
// specificity (source order breaks ties), then the inline style.
func (d *Document) ComputedStyle(e *Element) *css.Style {
	return computeStyle(e, d.Stylesheets())
}

func computeStyle(e *Element, sheets []*css.Stylesheet) *css.Style {
	style := css.NewStyle()
	if e == nil {
		return style
	}
	var matched []css.Rule
	for _, sheet := range sheets {
		for _, rule := range sheet.Rules {
			if Matches(e, rule.Selector) {
				matched = append(matched, rule)
			}
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Selector.Specificity < matched[j].Selector.Specificity
	})
	for _, rule := range matched {
		for k, v := range rule.Declarations {
			style.Set(k, v)
		}
	}
	style.Merge(e.InlineStyle())
	return style
}

// Parent returns e's parent, nil at the root or for detached elements.
func (d *Document) Parent(e *Element) *Element {
	if e == nil {
		return nil
	}
	return e.Parent
}

// BoundingRect returns e's border box in viewport coordinates. Detached
// elements report an empty rect at the origin.
func (d *Document) BoundingRect(e *Element) geom.ClientRect {
	if !d.Attached(e) {
		return geom.ClientRect{}
	}
	top, left := e.Top, e.Left
	if e == d.root {
		top -= e.ScrollTop
	}
	for a := e.Parent; a != nil; a = a.Parent {
		top += a.Top - a.ScrollTop
		left += a.Left
	}
	return geom.NewClientRect(left, top, e.Width, e.Height)
}

// Overflow returns e's computed overflow modes.
func (d *Document) Overflow(e *Element) (x, y css.Overflow) {
	if e == nil {
		return css.OverflowVisible, css.OverflowVisible
	}
	return d.ComputedStyle(e).GetOverflow()
}

// ScrollTop returns e's vertical scroll offset.
func (d *Document) ScrollTop(e *Element) float64 {
	if e == nil {
		return 0
	}
	return e.ScrollTop
}

// SetScrollTop scrolls e, clamping to [0, content height - client height]
// the way a browser does.
func (d *Document) SetScrollTop(e *Element, top float64, smooth bool) {
	if e == nil {
		return
	}
	maxTop := max(d.contentHeight(e)-d.ClientHeight(e), 0)
	e.ScrollTop = min(max(top, 0), maxTop)
	e.LastScrollSmooth = smooth
}

// ScrollBy scrolls e by dy pixels.
func (d *Document) ScrollBy(e *Element, dy float64, smooth bool) {
	d.SetScrollTop(e, d.ScrollTop(e)+dy, smooth)
}

// ClientHeight is the height of e's scrollport. For the scrolling element
// that is the viewport.
func (d *Document) ClientHeight(e *Element) float64 {
	if e == nil {
		return 0
	}
	if e == d.root {
		return d.viewportHeight
	}
	return e.Height
}

// ViewportHeight returns the effective viewport height.
func (d *Document) ViewportHeight() float64 { return d.viewportHeight }

// ViewportWidth returns the viewport width.
func (d *Document) ViewportWidth() float64 { return d.viewportWidth }

// SetViewport resizes the viewport. Call Layout afterwards if any length
// depends on it.
func (d *Document) SetViewport(width, height float64) {
	d.viewportWidth, d.viewportHeight = width, height
}

// ScrollingElement returns the root element.
func (d *Document) ScrollingElement() *Element {
	return d.root
}

func (d *Document) contentHeight(e *Element) float64 {
	if e.ScrollHeight > 0 {
		return e.ScrollHeight
	}
	return childrenExtent(e)
}
