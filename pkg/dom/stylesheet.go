package dom

import (
	"gridkit/pkg/css"

	"github.com/google/uuid"
)

// styleIDAttr tags <style> elements created by CreateStylesheet.
const styleIDAttr = "gs-style-id"

// Sheet is an injected stylesheet backed by a <style> element.
type Sheet struct {
	ID    string
	Node  *Element
	rules *css.Stylesheet
}

// SheetOption configures CreateStylesheet.
type SheetOption func(*Element)

// WithNonce sets the CSP nonce on the created <style> element.
func WithNonce(nonce string) SheetOption {
	return func(e *Element) {
		if nonce != "" {
			e.SetAttribute("nonce", nonce)
		}
	}
}

// CreateStylesheet inserts an empty <style> element as the first child of
// parent, or at the end of <head> when parent is nil. An empty id is
// replaced with a generated one.
func (d *Document) CreateStylesheet(id string, parent *Element, opts ...SheetOption) *Sheet {
	if id == "" {
		id = "gs-" + uuid.NewString()
	}
	node := NewElement("style", map[string]string{
		"type":      "text/css",
		styleIDAttr: id,
	})
	for _, opt := range opts {
		opt(node)
	}
	if parent == nil {
		d.head.AppendChild(node)
	} else {
		parent.InsertBefore(node, parent.FirstChild())
	}
	return &Sheet{ID: id, Node: node, rules: &css.Stylesheet{}}
}

// AddRule appends "selector { declarations }" and refreshes the element
// text so the cascade sees it.
func (s *Sheet) AddRule(selector, declarations string) error {
	if err := s.rules.AddRule(selector, declarations); err != nil {
		return err
	}
	s.Node.Text = s.rules.String()
	return nil
}

// Rules returns the parsed rules added so far.
func (s *Sheet) Rules() []css.Rule {
	return s.rules.Rules
}

// RemoveStylesheet detaches the <style> element created with id. When
// scope is nil the whole document is searched.
func (d *Document) RemoveStylesheet(id string, scope *Element) {
	if scope == nil {
		scope = d.root
	}
	for _, e := range QuerySelectorAll(scope, "style") {
		if v, _ := e.GetAttribute(styleIDAttr); v == id {
			e.Remove()
			return
		}
	}
}
