package css

import (
	"sort"
	"strconv"
	"strings"
)

// Style is a flat set of CSS declarations, either parsed from an inline
// style attribute or produced by the cascade.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Delete removes a property. Missing properties are ignored.
func (s *Style) Delete(property string) {
	delete(s.Properties, property)
}

// Merge copies every property of other over s.
func (s *Style) Merge(other *Style) {
	if other == nil {
		return
	}
	for k, v := range other.Properties {
		s.Properties[k] = v
	}
}

// GetLength returns a pixel length. Unitless numbers count as pixels.
func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// GetOverflow returns the computed horizontal and vertical overflow modes.
// The longhands win over the shorthand; both default to visible.
func (s *Style) GetOverflow() (x, y Overflow) {
	x, y = OverflowVisible, OverflowVisible
	if v, ok := s.Get("overflow"); ok {
		x, y = parseOverflowPair(v)
	}
	if v, ok := s.Get("overflow-x"); ok {
		x = ParseOverflow(v)
	}
	if v, ok := s.Get("overflow-y"); ok {
		y = ParseOverflow(v)
	}
	return x, y
}

// String serializes the style back to inline form with sorted properties.
func (s *Style) String() string {
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(s.Properties[k])
		sb.WriteByte(';')
	}
	return sb.String()
}

func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for property, value := range parseDeclarations(styleAttr) {
		style.Set(property, value)
	}
	return style
}

// parseDeclarations splits "a: b; c: d" into a property map. Property
// names are lowercased and the overflow shorthand is expanded.
func parseDeclarations(declStr string) map[string]string {
	declarations := make(map[string]string)
	for _, part := range strings.Split(declStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		property, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)
		if property == "" || value == "" {
			continue
		}
		expandShorthand(declarations, property, value)
	}
	return declarations
}

func expandShorthand(decls map[string]string, property, value string) {
	switch property {
	case "overflow":
		// overflow: auto hidden -> overflow-x: auto; overflow-y: hidden
		x, y := parseOverflowPair(value)
		decls["overflow-x"] = string(x)
		decls["overflow-y"] = string(y)
	default:
		decls[property] = value
	}
}
