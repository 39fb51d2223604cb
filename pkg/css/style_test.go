package css

import "testing"

func TestParseInlineStyle_MultipleProperties(t *testing.T) {
	style := ParseInlineStyle("Color: red; width: 100px;; bogus")
	color, _ := style.Get("color")
	width, _ := style.Get("width")
	if color != "red" || width != "100px" {
		t.Error("expected both properties to parse")
	}
	if len(style.Properties) != 2 {
		t.Errorf("expected 2 properties, got %v", style.Properties)
	}
}

func TestGetLength_PixelValue(t *testing.T) {
	style := ParseInlineStyle("top: 100px; left: 3")
	top, ok := style.GetLength("top")
	if !ok || top != 100.0 {
		t.Errorf("expected top=100.0, got %f", top)
	}
	left, ok := style.GetLength("left")
	if !ok || left != 3 {
		t.Errorf("expected left=3, got %f", left)
	}
}

func TestGetOverflow(t *testing.T) {
	tests := []struct {
		inline string
		x, y   Overflow
	}{
		{"", OverflowVisible, OverflowVisible},
		{"overflow: auto", OverflowAuto, OverflowAuto},
		{"overflow: hidden scroll", OverflowHidden, OverflowScroll},
		{"overflow: hidden; overflow-y: auto", OverflowHidden, OverflowAuto},
		{"overflow-x: clip", OverflowHidden, OverflowVisible},
		{"overflow: nonsense", OverflowVisible, OverflowVisible},
	}
	for _, tt := range tests {
		x, y := ParseInlineStyle(tt.inline).GetOverflow()
		if x != tt.x || y != tt.y {
			t.Errorf("%q: got (%s, %s), want (%s, %s)", tt.inline, x, y, tt.x, tt.y)
		}
	}

	s := NewStyle()
	s.Set("overflow", "scroll")
	if x, y := s.GetOverflow(); !x.Scrollable() || !y.Scrollable() {
		t.Error("expected the raw shorthand to be honored")
	}
}

func TestStyleString(t *testing.T) {
	style := ParseInlineStyle("top: 10px; left: 5px")
	style.Delete("top")
	style.Set("width", "50%")
	if got := style.String(); got != "left: 5px; width: 50%;" {
		t.Errorf("unexpected serialization %q", got)
	}
}
