package css

import "strings"

// Combinator joins two compound selectors.
type Combinator int

const (
	DescendantCombinator Combinator = iota // A B
	ChildCombinator                        // A > B
)

// AttributeSelector matches [name], [name=value], [name^=value], ...
type AttributeSelector struct {
	Name     string
	Operator string
	Value    string
}

// SelectorPart is one compound selector: tag#id.class[attr].
type SelectorPart struct {
	Element    string
	ID         string
	Classes    []string
	Attributes []AttributeSelector
}

// Selector is a complex selector. Combinators[i] sits between Parts[i]
// and Parts[i+1].
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Combinators []Combinator
	Specificity int
}

// Valid reports whether parsing produced anything to match.
func (s Selector) Valid() bool {
	return len(s.Parts) > 0
}

// SplitSelectorGroup splits "a, b > c" into its comma separated members,
// ignoring commas inside attribute brackets.
func SplitSelectorGroup(group string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(group); i++ {
		switch group[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				if s := strings.TrimSpace(group[start:i]); s != "" {
					out = append(out, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(group[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// ParseSelector parses a single complex selector. Malformed input yields
// a selector with no parts, which never matches.
func ParseSelector(raw string) Selector {
	sel := Selector{Raw: strings.TrimSpace(raw)}
	s := sel.Raw
	pendingChild := false

	for len(s) > 0 {
		trimmed := strings.TrimLeft(s, " \t\n")
		sawSpace := len(trimmed) != len(s)
		s = trimmed
		if s == "" {
			break
		}
		if s[0] == '>' {
			pendingChild = true
			s = s[1:]
			continue
		}

		part, rest, ok := parseCompound(s)
		if !ok {
			return Selector{Raw: sel.Raw}
		}
		if len(sel.Parts) > 0 {
			switch {
			case pendingChild:
				sel.Combinators = append(sel.Combinators, ChildCombinator)
			case sawSpace:
				sel.Combinators = append(sel.Combinators, DescendantCombinator)
			default:
				return Selector{Raw: sel.Raw}
			}
		} else if pendingChild {
			return Selector{Raw: sel.Raw}
		}
		pendingChild = false
		sel.Parts = append(sel.Parts, part)
		sel.Specificity += part.specificity()
		s = rest
	}
	if pendingChild {
		return Selector{Raw: sel.Raw}
	}
	return sel
}

func (p SelectorPart) specificity() int {
	n := len(p.Classes)*10 + len(p.Attributes)*10
	if p.ID != "" {
		n += 100
	}
	if p.Element != "" && p.Element != "*" {
		n++
	}
	return n
}

// parseCompound consumes one compound selector from the front of s.
func parseCompound(s string) (SelectorPart, string, bool) {
	var part SelectorPart
	consumed := false

	if name, rest := readName(s); name != "" {
		part.Element = strings.ToLower(name)
		s, consumed = rest, true
	} else if strings.HasPrefix(s, "*") {
		part.Element = "*"
		s, consumed = s[1:], true
	}

	for len(s) > 0 {
		switch s[0] {
		case '#':
			name, rest := readName(s[1:])
			if name == "" {
				return part, s, false
			}
			part.ID = name
			s = rest
		case '.':
			name, rest := readName(s[1:])
			if name == "" {
				return part, s, false
			}
			part.Classes = append(part.Classes, name)
			s = rest
		case '[':
			end := strings.IndexByte(s, ']')
			if end < 0 {
				return part, s, false
			}
			attr, ok := parseAttributeSelector(s[1:end])
			if !ok {
				return part, s, false
			}
			part.Attributes = append(part.Attributes, attr)
			s = s[end+1:]
		default:
			return part, s, consumed
		}
		consumed = true
	}
	return part, s, consumed
}

func parseAttributeSelector(body string) (AttributeSelector, bool) {
	for _, op := range []string{"^=", "$=", "*=", "~=", "|=", "="} {
		if name, value, found := strings.Cut(body, op); found {
			name = strings.TrimSpace(name)
			if name == "" {
				return AttributeSelector{}, false
			}
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			return AttributeSelector{Name: name, Operator: op, Value: value}, true
		}
	}
	name := strings.TrimSpace(body)
	return AttributeSelector{Name: name}, name != ""
}

func readName(s string) (string, string) {
	i := 0
	for i < len(s) && isNameChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c >= 0x80
}
