package css

import (
	"fmt"
	"sort"
	"strings"
)

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations map[string]string // property -> value
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS stylesheet content into rules. Selector
// groups ("a, b { }") become one rule per member. Malformed rules are
// skipped.
func ParseStylesheet(css string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}

	css = stripComments(strings.TrimSpace(css))
	if css == "" {
		return stylesheet, nil
	}

	for _, ruleStr := range splitRules(css) {
		rules, err := parseRule(ruleStr)
		if err != nil {
			continue
		}
		stylesheet.Rules = append(stylesheet.Rules, rules...)
	}
	return stylesheet, nil
}

// AddRule appends "selector { declarations }" to the sheet. It reports
// an error when the selector does not parse.
func (s *Stylesheet) AddRule(selector, declarations string) error {
	rules, err := parseRule(selector + "{" + declarations + "}")
	if err != nil {
		return err
	}
	s.Rules = append(s.Rules, rules...)
	return nil
}

// String serializes the sheet in rule order with sorted declarations.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	for _, rule := range s.Rules {
		keys := make([]string, 0, len(rule.Declarations))
		for k := range rule.Declarations {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(rule.Selector.Raw)
		sb.WriteString(" {")
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(rule.Declarations[k])
			sb.WriteString(";")
		}
		sb.WriteString(" }\n")
	}
	return sb.String()
}

// splitRules splits CSS into individual rules
func splitRules(css string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range css {
		if ch == '{' {
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 {
				ruleStr := css[start : i+1]
				if strings.TrimSpace(ruleStr) != "" {
					rules = append(rules, ruleStr)
				}
				start = i + 1
			}
		}
	}

	return rules
}

func parseRule(ruleStr string) ([]Rule, error) {
	bracePos := strings.Index(ruleStr, "{")
	if bracePos == -1 {
		return nil, fmt.Errorf("no opening brace found")
	}
	declEnd := strings.LastIndex(ruleStr, "}")
	if declEnd < bracePos {
		declEnd = len(ruleStr)
	}
	declarations := parseDeclarations(ruleStr[bracePos+1 : declEnd])

	var rules []Rule
	for _, raw := range SplitSelectorGroup(ruleStr[:bracePos]) {
		sel := ParseSelector(raw)
		if !sel.Valid() {
			return nil, fmt.Errorf("invalid selector %q", raw)
		}
		rules = append(rules, Rule{Selector: sel, Declarations: declarations})
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	return rules, nil
}

func stripComments(css string) string {
	var sb strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start < 0 {
			sb.WriteString(css)
			return sb.String()
		}
		sb.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end < 0 {
			return sb.String()
		}
		css = css[start+2+end+2:]
	}
}
