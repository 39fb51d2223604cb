package dom

import (
	"fmt"
	gohtml "html"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenStartTag tokenType = iota
	tokenEndTag
	tokenText
	tokenEOF
)

type token struct {
	typ         tokenType
	tagName     string
	attributes  map[string]string
	text        string
	selfClosing bool
}

type tokenizer struct {
	input string
	pos   int
}

func (t *tokenizer) next() (token, error) {
	if t.pos >= len(t.input) {
		return token{typ: tokenEOF}, nil
	}
	if t.input[t.pos] == '<' {
		return t.readTag()
	}
	return t.readText()
}

func (t *tokenizer) readTag() (token, error) {
	t.pos++

	// <!-- comments -->
	if strings.HasPrefix(t.input[t.pos:], "!--") {
		end := strings.Index(t.input[t.pos+3:], "-->")
		if end < 0 {
			t.pos = len(t.input)
		} else {
			t.pos += 3 + end + 3
		}
		return t.next()
	}

	// <!DOCTYPE ...> and <?xml ...?>
	if t.pos < len(t.input) && (t.input[t.pos] == '!' || t.input[t.pos] == '?') {
		if err := t.skipTo('>'); err != nil {
			return token{}, err
		}
		t.pos++
		return t.next()
	}

	isEndTag := false
	if t.pos < len(t.input) && t.input[t.pos] == '/' {
		isEndTag = true
		t.pos++
	}
	tagName := t.readName(isTagNameChar)
	if tagName == "" {
		return token{}, fmt.Errorf("expected tag name at position %d", t.pos)
	}
	if isEndTag {
		if err := t.skipTo('>'); err != nil {
			return token{}, err
		}
		t.pos++
		return token{typ: tokenEndTag, tagName: tagName}, nil
	}

	attributes := make(map[string]string)
	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			return token{}, fmt.Errorf("unexpected EOF in <%s>", tagName)
		}
		switch t.input[t.pos] {
		case '>':
			t.pos++
			return token{typ: tokenStartTag, tagName: tagName, attributes: attributes}, nil
		case '/':
			t.pos++
			t.skipWhitespace()
			if t.pos < len(t.input) && t.input[t.pos] == '>' {
				t.pos++
				return token{typ: tokenStartTag, tagName: tagName, attributes: attributes, selfClosing: true}, nil
			}
			continue
		}
		name, value, err := t.readAttribute()
		if err != nil {
			return token{}, err
		}
		attributes[name] = value
	}
}

func (t *tokenizer) readName(ok func(byte) bool) string {
	start := t.pos
	for t.pos < len(t.input) && ok(t.input[t.pos]) {
		t.pos++
	}
	return strings.ToLower(t.input[start:t.pos])
}

func (t *tokenizer) readAttribute() (string, string, error) {
	name := t.readName(isAttributeNameChar)
	if name == "" {
		return "", "", fmt.Errorf("expected attribute name at position %d", t.pos)
	}
	t.skipWhitespace()
	if t.pos >= len(t.input) || t.input[t.pos] != '=' {
		return name, "", nil
	}
	t.pos++
	t.skipWhitespace()
	if t.pos >= len(t.input) {
		return "", "", fmt.Errorf("expected attribute value at position %d", t.pos)
	}
	if quote := t.input[t.pos]; quote == '"' || quote == '\'' {
		t.pos++
		end := strings.IndexByte(t.input[t.pos:], quote)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated value for attribute %q", name)
		}
		value := t.input[t.pos : t.pos+end]
		t.pos += end + 1
		return name, gohtml.UnescapeString(value), nil
	}
	start := t.pos
	for t.pos < len(t.input) && !unicode.IsSpace(rune(t.input[t.pos])) && t.input[t.pos] != '>' {
		t.pos++
	}
	return name, t.input[start:t.pos], nil
}

func (t *tokenizer) readText() (token, error) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	raw := t.input[start:t.pos]
	if strings.TrimSpace(raw) == "" {
		return t.next()
	}
	return token{typ: tokenText, text: gohtml.UnescapeString(strings.Join(strings.Fields(raw), " "))}, nil
}

// readRawUntil returns everything up to </endTag>, for <style> bodies.
func (t *tokenizer) readRawUntil(endTag string) string {
	needle := "</" + endTag
	idx := strings.Index(strings.ToLower(t.input[t.pos:]), needle)
	if idx < 0 {
		content := t.input[t.pos:]
		t.pos = len(t.input)
		return content
	}
	content := t.input[t.pos : t.pos+idx]
	t.pos += idx
	return content
}

func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && unicode.IsSpace(rune(t.input[t.pos])) {
		t.pos++
	}
}

func (t *tokenizer) skipTo(target byte) error {
	idx := strings.IndexByte(t.input[t.pos:], target)
	if idx < 0 {
		t.pos = len(t.input)
		return fmt.Errorf("expected '%c' but reached EOF", target)
	}
	t.pos += idx
	return nil
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isAttributeNameChar(c byte) bool {
	return isTagNameChar(c) || c == ':' || c == '.'
}

// ParseFragment parses markup and appends the resulting elements to parent.
// Text is collected into the enclosing element's Text field. <style> and
// <script> bodies are kept verbatim.
func ParseFragment(parent *Element, markup string) error {
	t := &tokenizer{input: markup}
	stack := []*Element{parent}
	current := func() *Element { return stack[len(stack)-1] }

	for {
		tok, err := t.next()
		if err != nil {
			return fmt.Errorf("tokenizer error: %w", err)
		}
		switch tok.typ {
		case tokenEOF:
			return nil

		case tokenStartTag:
			el := NewElement(tok.tagName, tok.attributes)
			current().AppendChild(el)
			if (tok.tagName == "style" || tok.tagName == "script") && !tok.selfClosing {
				el.Text = t.readRawUntil(tok.tagName)
				continue
			}
			if !tok.selfClosing && !isVoidElement(tok.tagName) {
				stack = append(stack, el)
			}

		case tokenText:
			cur := current()
			if cur.Text != "" {
				cur.Text += " "
			}
			cur.Text += tok.text

		case tokenEndTag:
			for i := len(stack) - 1; i >= 1; i-- {
				if stack[i].TagName == tok.tagName {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}
