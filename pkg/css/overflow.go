package css

import "strings"

// Overflow is a computed overflow mode.
type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowAuto    Overflow = "auto"
	OverflowScroll  Overflow = "scroll"
)

// ParseOverflow maps a keyword to its mode. Unknown keywords compute to
// visible. "clip" behaves as hidden and "overlay" as auto.
func ParseOverflow(val string) Overflow {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "hidden", "clip":
		return OverflowHidden
	case "auto", "overlay":
		return OverflowAuto
	case "scroll":
		return OverflowScroll
	}
	return OverflowVisible
}

// Scrollable reports whether the mode lets the user scroll the box.
func (o Overflow) Scrollable() bool {
	return o == OverflowAuto || o == OverflowScroll
}

// parseOverflowPair handles the one and two value shorthand forms.
func parseOverflowPair(val string) (x, y Overflow) {
	fields := strings.Fields(val)
	switch len(fields) {
	case 0:
		return OverflowVisible, OverflowVisible
	case 1:
		o := ParseOverflow(fields[0])
		return o, o
	default:
		return ParseOverflow(fields[0]), ParseOverflow(fields[1])
	}
}
