package geom

import "sort"

// Direction selects the packing order of Order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// ParseDirection maps "desc"/"descending"/"-1" to Descending and anything
// else to Ascending.
func ParseDirection(s string) Direction {
	switch s {
	case "desc", "descending", "-1":
		return Descending
	}
	return Ascending
}

// ColumnWidth returns the tightest width containing every rect's right edge.
func ColumnWidth(nodes []Rect) int {
	width := 0
	for _, n := range nodes {
		width = max(width, n.Right())
	}
	return width
}

// Order sorts nodes in place by row-major position (x + y*columnWidth)
// and returns the same slice. A columnWidth <= 0 is computed from the
// nodes. Equal keys keep their input order.
func Order(nodes []Rect, dir Direction, columnWidth int) []Rect {
	return OrderFunc(nodes, func(r Rect) Rect { return r }, dir, columnWidth)
}

// OrderFunc is Order for any item that carries a Rect.
func OrderFunc[T any](items []T, rect func(T) Rect, dir Direction, columnWidth int) []T {
	if len(items) < 2 {
		return items
	}
	if columnWidth <= 0 {
		for _, it := range items {
			columnWidth = max(columnWidth, rect(it).Right())
		}
	}
	key := func(r Rect) int { return r.X + r.Y*columnWidth }
	sort.SliceStable(items, func(i, j int) bool {
		ki, kj := key(rect(items[i])), key(rect(items[j]))
		if dir == Descending {
			return ki > kj
		}
		return ki < kj
	})
	return items
}
