package engine

import (
	"iter"

	"github.com/lixenwraith/termsprite/vmath"
)

// Edge is a stateless viewport boundary sentinel
// An edge overlaps a footprint that sticks out past it
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// Screen is the set of all four viewport edges
var Screen = Set{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight}

func (e Edge) Overlaps(q Query) bool {
	w, h := q.Surface.Size()
	switch e {
	case EdgeTop:
		return q.At.Y.Sign() < 0
	case EdgeBottom:
		return vmath.I(q.Viewport.H).Less(q.At.Y.Add(vmath.I(h)))
	case EdgeLeft:
		return q.At.X.Sign() < 0
	case EdgeRight:
		return vmath.I(q.Viewport.W).Less(q.At.X.Add(vmath.I(w)))
	}
	return false
}

func (e Edge) Collidables() iter.Seq[Collidable] {
	return func(yield func(Collidable) bool) {
		yield(e)
	}
}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	}
	return "edge?"
}
