package rtree

// Envelope is an axis-aligned integer rectangle (x1,y1)-(x2,y2), with
// x1 <= x2 and y1 <= y2. It is the minimum bounding rectangle (MBR) used
// to index both entries and internal nodes.
type Envelope struct {
	X1, Y1, X2, Y2 int
}

// emptyEnvelope returns the identity element for Extend: extending it by
// any envelope R yields exactly R.
func emptyEnvelope() Envelope {
	return Envelope{
		X1: maxInt,
		Y1: maxInt,
		X2: minInt,
		Y2: minInt,
	}
}

// NewEnvelope builds an Envelope, normalizing reversed corners.
func NewEnvelope(x1, y1, x2, y2 int) Envelope {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Envelope{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func (e Envelope) valid() bool {
	return e.X1 <= e.X2 && e.Y1 <= e.Y2
}

func (e Envelope) isEmpty() bool {
	return e.X1 > e.X2 || e.Y1 > e.Y2
}

// Area returns (x2-x1)*(y2-y1). The identity/empty envelope has area 0.
func (e Envelope) Area() int {
	if e.isEmpty() {
		return 0
	}
	return (e.X2 - e.X1) * (e.Y2 - e.Y1)
}

// Margin returns the half-perimeter (x2-x1)+(y2-y1).
func (e Envelope) Margin() int {
	if e.isEmpty() {
		return 0
	}
	return (e.X2 - e.X1) + (e.Y2 - e.Y1)
}

// Extend returns the smallest envelope covering both e and other.
func (e Envelope) Extend(other Envelope) Envelope {
	if e.isEmpty() {
		return other
	}
	if other.isEmpty() {
		return e
	}
	return Envelope{
		X1: minI(e.X1, other.X1),
		Y1: minI(e.Y1, other.Y1),
		X2: maxI(e.X2, other.X2),
		Y2: maxI(e.Y2, other.Y2),
	}
}

// Intersects reports non-strict overlap: touching edges count.
func (e Envelope) Intersects(other Envelope) bool {
	return e.X1 <= other.X2 && e.X2 >= other.X1 &&
		e.Y1 <= other.Y2 && e.Y2 >= other.Y1
}

// Contains reports non-strict containment: equal edges count as contained.
func (e Envelope) Contains(other Envelope) bool {
	return e.X1 <= other.X1 && e.X2 >= other.X2 &&
		e.Y1 <= other.Y1 && e.Y2 >= other.Y2
}

// enlargedArea is the area of the rectangle covering bbox and newChild,
// computed the way spec.md §4.3/§9 requires: via the same max/min union
// construction as Extend, not via a separately-maintained "enlarged" type.
func enlargedArea(bbox, newChild Envelope) int {
	x1, y1 := minI(bbox.X1, newChild.X1), minI(bbox.Y1, newChild.Y1)
	x2, y2 := maxI(bbox.X2, newChild.X2), maxI(bbox.Y2, newChild.Y2)
	return (x2 - x1) * (y2 - y1)
}

// intersectionArea is the area of the region shared by a and b (0 when
// they do not overlap). The split-index heuristic uses it as its overlap
// metric.
func intersectionArea(a, b Envelope) int {
	x1, y1 := maxI(a.X1, b.X1), maxI(a.Y1, b.Y1)
	x2, y2 := minI(a.X2, b.X2), minI(a.Y2, b.Y2)
	return maxI(0, x2-x1) * maxI(0, y2-y1)
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)
