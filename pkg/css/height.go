package css

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a height does not match
// number(px|em|rem|vh|vw|%)?.
var ErrInvalidFormat = errors.New("invalid height format")

// Unit is a CSS length unit accepted for cell heights.
type Unit string

const (
	UnitPx      Unit = "px"
	UnitEm      Unit = "em"
	UnitRem     Unit = "rem"
	UnitVh      Unit = "vh"
	UnitVw      Unit = "vw"
	UnitPercent Unit = "%"
)

// HeightData is a parsed height magnitude and unit.
type HeightData struct {
	H    float64
	Unit Unit
}

func (h HeightData) String() string {
	return strconv.FormatFloat(h.H, 'f', -1, 64) + string(h.Unit)
}

var heightPattern = regexp.MustCompile(`^(-[0-9]+\.[0-9]+|[0-9]*\.[0-9]+|-[0-9]+|[0-9]+)(px|em|rem|vh|vw|%)?$`)

// ParseHeight parses a height such as "10", "10.5em" or "50%". A missing
// unit means px; "auto" and "" parse as 0px.
func ParseHeight(val string) (HeightData, error) {
	val = strings.TrimSpace(val)
	if val == "" || val == "auto" {
		return HeightData{H: 0, Unit: UnitPx}, nil
	}
	m := heightPattern.FindStringSubmatch(val)
	if m == nil {
		return HeightData{}, fmt.Errorf("%w: %q", ErrInvalidFormat, val)
	}
	h, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return HeightData{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, val, err)
	}
	unit := UnitPx
	if m[2] != "" {
		unit = Unit(m[2])
	}
	return HeightData{H: h, Unit: unit}, nil
}

// HeightFromNumber wraps a bare number as a pixel height.
func HeightFromNumber(h float64) HeightData {
	return HeightData{H: h, Unit: UnitPx}
}
