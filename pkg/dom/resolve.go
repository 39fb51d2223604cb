package dom

import (
	"gridkit/pkg/css"
)

// QuerySelector returns the first descendant of scope (excluding scope)
// matching the selector group, or nil. Invalid selectors match nothing.
func QuerySelector(scope *Element, group string) *Element {
	if scope == nil {
		return nil
	}
	selectors := parseGroup(group)
	var found *Element
	scope.Walk(func(e *Element) bool {
		if e != scope && matchesParsed(e, selectors) {
			found = e
			return true
		}
		return false
	})
	return found
}

// QuerySelectorAll returns every matching descendant of scope in tree order.
func QuerySelectorAll(scope *Element, group string) []*Element {
	if scope == nil {
		return nil
	}
	selectors := parseGroup(group)
	var out []*Element
	scope.Walk(func(e *Element) bool {
		if e != scope && matchesParsed(e, selectors) {
			out = append(out, e)
		}
		return false
	})
	return out
}

func parseGroup(group string) []css.Selector {
	var out []css.Selector
	for _, raw := range css.SplitSelectorGroup(group) {
		out = append(out, css.ParseSelector(raw))
	}
	return out
}

func matchesParsed(e *Element, selectors []css.Selector) bool {
	for _, sel := range selectors {
		if Matches(e, sel) {
			return true
		}
	}
	return false
}

// GetElementByID returns the first element whose id is exactly id. Unlike
// a "#id" selector it accepts ids that are not valid CSS identifiers.
func (d *Document) GetElementByID(id string) *Element {
	var found *Element
	d.root.Walk(func(e *Element) bool {
		if e.ID() == id {
			found = e
			return true
		}
		return false
	})
	return found
}

// Resolve turns an element reference into an element. "#id", ".class" and
// "[attr]" are selectors; a leading digit is an id; any other bare name is
// tried as a selector, then an id, then a class. No match returns nil.
func (d *Document) Resolve(ref string) *Element {
	if ref == "" {
		return nil
	}
	switch ref[0] {
	case '#':
		return d.GetElementByID(ref[1:])
	case '.', '[':
		return QuerySelector(d.root, ref)
	}
	if isDigit(ref[0]) {
		return d.GetElementByID(ref)
	}
	if el := QuerySelector(d.root, ref); el != nil {
		return el
	}
	if el := d.GetElementByID(ref); el != nil {
		return el
	}
	return QuerySelector(d.root, "."+ref)
}

// ResolveAll is Resolve for every match. A bare name that matches nothing
// as a selector is retried as a class, then as an id.
func (d *Document) ResolveAll(ref string) []*Element {
	if ref == "" {
		return nil
	}
	if isDigit(ref[0]) {
		if el := d.GetElementByID(ref); el != nil {
			return []*Element{el}
		}
		return nil
	}
	list := QuerySelectorAll(d.root, ref)
	if len(list) == 0 && ref[0] != '.' && ref[0] != '#' {
		list = QuerySelectorAll(d.root, "."+ref)
		if len(list) == 0 {
			list = QuerySelectorAll(d.root, "#"+ref)
		}
	}
	return list
}

// ClosestByClass returns the nearest strict ancestor of e carrying the
// class, or nil.
func ClosestByClass(e *Element, name string) *Element {
	if e == nil {
		return nil
	}
	for a := e.Parent; a != nil; a = a.Parent {
		if a.HasClass(name) {
			return a
		}
	}
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
