package vmath

// Rect is an axis-aligned box [X, X+W) x [Y, Y+H) in cell units
type Rect struct {
	X, Y Frac
	W, H int
}

// NewRect places a w x h box at c
func NewRect(c Coord, w, h int) Rect {
	return Rect{X: c.X, Y: c.Y, W: w, H: h}
}

func (r Rect) Right() Frac  { return r.X.Add(I(r.W)) }
func (r Rect) Bottom() Frac { return r.Y.Add(I(r.H)) }

// Empty reports a box with no area; empty boxes never overlap anything
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps is the strict AABB test: touching edges do not overlap
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	// r entirely right of or below o
	if o.Right().LessEq(r.X) || o.Bottom().LessEq(r.Y) {
		return false
	}
	// r entirely left of or above o
	if r.Right().LessEq(o.X) || r.Bottom().LessEq(o.Y) {
		return false
	}
	return true
}

// ContainsCell checks if the integer cell (x, y) intersects the box
func (r Rect) ContainsCell(x, y int) bool {
	return r.Overlaps(Rect{X: I(x), Y: I(y), W: 1, H: 1})
}
