package dom

import (
	"strings"

	"gridkit/pkg/css"
)

// Matches reports whether e matches the complex selector.
func Matches(e *Element, sel css.Selector) bool {
	if e == nil || !sel.Valid() {
		return false
	}
	return matchesFrom(e, sel, len(sel.Parts)-1)
}

// MatchesAny reports whether e matches any member of a selector group.
func MatchesAny(e *Element, group string) bool {
	for _, raw := range css.SplitSelectorGroup(group) {
		if Matches(e, css.ParseSelector(raw)) {
			return true
		}
	}
	return false
}

// matchesFrom matches right to left starting at Parts[idx].
func matchesFrom(e *Element, sel css.Selector, idx int) bool {
	if !matchesPart(e, sel.Parts[idx]) {
		return false
	}
	if idx == 0 {
		return true
	}
	switch sel.Combinators[idx-1] {
	case css.ChildCombinator:
		return e.Parent != nil && matchesFrom(e.Parent, sel, idx-1)
	default:
		for a := e.Parent; a != nil; a = a.Parent {
			if matchesFrom(a, sel, idx-1) {
				return true
			}
		}
		return false
	}
}

func matchesPart(e *Element, part css.SelectorPart) bool {
	if part.Element != "" && part.Element != "*" && e.TagName != part.Element {
		return false
	}
	if part.ID != "" && e.ID() != part.ID {
		return false
	}
	for _, cls := range part.Classes {
		if !e.HasClass(cls) {
			return false
		}
	}
	for _, attr := range part.Attributes {
		if !matchesAttribute(e, attr) {
			return false
		}
	}
	return true
}

func matchesAttribute(e *Element, attr css.AttributeSelector) bool {
	value, ok := e.GetAttribute(strings.ToLower(attr.Name))
	if !ok {
		return false
	}
	switch attr.Operator {
	case "":
		return true
	case "=":
		return value == attr.Value
	case "^=":
		return strings.HasPrefix(value, attr.Value)
	case "$=":
		return strings.HasSuffix(value, attr.Value)
	case "*=":
		return strings.Contains(value, attr.Value)
	case "~=":
		for _, word := range strings.Fields(value) {
			if word == attr.Value {
				return true
			}
		}
		return false
	case "|=":
		return value == attr.Value || strings.HasPrefix(value, attr.Value+"-")
	}
	return false
}
