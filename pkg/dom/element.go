// Package dom is a small element tree with just enough layout and scroll
// state to answer the geometry questions the grid engine asks: bounding
// rects, computed overflow, scroll offsets and selector lookups.
package dom

import (
	"sort"
	"strings"

	"gridkit/pkg/css"
)

// Element is a node in the document tree. Geometry fields are the laid out
// border box relative to the parent's content origin, in pixels.
type Element struct {
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Element
	Parent     *Element

	Top, Left     float64
	Width, Height float64

	// ScrollTop is the vertical scroll offset of the element's content.
	ScrollTop float64
	// ScrollHeight overrides the content height used to clamp ScrollTop.
	// Zero means "derive from children".
	ScrollHeight float64
	// LastScrollSmooth records whether the last SetScrollTop asked for
	// smooth scrolling.
	LastScrollSmooth bool
}

// NewElement creates a detached element.
func NewElement(tag string, attrs map[string]string) *Element {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Element{
		TagName:    strings.ToLower(tag),
		Attributes: attrs,
		Children:   make([]*Element, 0),
	}
}

func (e *Element) GetAttribute(name string) (string, bool) {
	if e.Attributes == nil {
		return "", false
	}
	val, ok := e.Attributes[name]
	return val, ok
}

func (e *Element) SetAttribute(name, value string) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[name] = value
}

func (e *Element) RemoveAttribute(name string) {
	delete(e.Attributes, name)
}

// ID returns the id attribute or "".
func (e *Element) ID() string {
	id, _ := e.GetAttribute("id")
	return id
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	cls, _ := e.GetAttribute("class")
	return strings.Fields(cls)
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class list if it is not already present.
func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.SetAttribute("class", strings.TrimSpace(strings.Join(append(e.Classes(), name), " ")))
}

// RemoveClass drops every occurrence of name from the class list.
func (e *Element) RemoveClass(name string) {
	if !e.HasClass(name) {
		return
	}
	kept := e.Classes()[:0]
	for _, c := range e.Classes() {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

// AppendChild adds a child, detaching it from any previous parent. It
// returns nil and leaves the tree unchanged when child is e or one of e's
// ancestors.
func (e *Element) AppendChild(child *Element) *Element {
	if !e.CanAdopt(child) {
		return nil
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = e
	e.Children = append(e.Children, child)
	return child
}

// RemoveChild detaches child and returns it, or nil if it is not a child.
func (e *Element) RemoveChild(child *Element) *Element {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// InsertBefore inserts newChild before refChild. A nil or unknown refChild
// appends. Like AppendChild it refuses to create a cycle.
func (e *Element) InsertBefore(newChild, refChild *Element) *Element {
	if !e.CanAdopt(newChild) {
		return nil
	}
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	for i, c := range e.Children {
		if c == refChild {
			e.Children = append(e.Children, nil)
			copy(e.Children[i+1:], e.Children[i:])
			e.Children[i] = newChild
			newChild.Parent = e
			return newChild
		}
	}
	return e.AppendChild(newChild)
}

// CanAdopt reports whether child may be inserted under e without making
// e its own ancestor.
func (e *Element) CanAdopt(child *Element) bool {
	return child != nil && !child.Contains(e)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	if e.Parent != nil {
		e.Parent.RemoveChild(e)
	}
}

// FirstChild returns the first child or nil.
func (e *Element) FirstChild() *Element {
	if len(e.Children) == 0 {
		return nil
	}
	return e.Children[0]
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.Parent {
		if n == e {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor.
func (e *Element) Root() *Element {
	n := e
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Walk visits e and its descendants depth first. fn returns true to stop.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if fn(e) {
		return true
	}
	for _, child := range e.Children {
		if child.Walk(fn) {
			return true
		}
	}
	return false
}

// SerializeOuter returns the element as markup with sorted attributes.
func (e *Element) SerializeOuter() string {
	var sb strings.Builder
	serialize(&sb, e)
	return sb.String()
}

func serialize(sb *strings.Builder, e *Element) {
	sb.WriteByte('<')
	sb.WriteString(e.TagName)
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(e.Attributes[k]))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	sb.WriteString(escapeText(e.Text))
	for _, child := range e.Children {
		serialize(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(e.TagName)
	sb.WriteByte('>')
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// InlineStyle parses the style attribute.
func (e *Element) InlineStyle() *css.Style {
	attr, _ := e.GetAttribute("style")
	return css.ParseInlineStyle(attr)
}

// AddStyles merges properties into the inline style attribute.
func (e *Element) AddStyles(styles map[string]string) {
	style := e.InlineStyle()
	for k, v := range styles {
		style.Set(strings.ToLower(k), v)
	}
	e.setInlineStyle(style)
}

// RemovePositioningStyles clears the inline properties a drag leaves
// behind (position, left, top, width, height), keeping everything else.
func (e *Element) RemovePositioningStyles() {
	style := e.InlineStyle()
	for _, p := range []string{"position", "left", "top", "width", "height"} {
		style.Delete(p)
	}
	e.setInlineStyle(style)
}

func (e *Element) setInlineStyle(style *css.Style) {
	if len(style.Properties) == 0 {
		e.RemoveAttribute("style")
		return
	}
	e.SetAttribute("style", style.String())
}
