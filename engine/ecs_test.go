package engine

import (
	"testing"

	"github.com/lixenwraith/termsprite/surface"
	"github.com/lixenwraith/termsprite/vmath"
)

func TestArenaHandles(t *testing.T) {
	var a arena
	s1, s2 := &Sprite{}, &Sprite{}

	h1 := a.alloc(s1)
	if h1 == NoEntity {
		t.Fatal("Expected a non-zero handle")
	}
	if got, ok := a.get(h1); !ok || got != s1 {
		t.Error("Expected handle to resolve")
	}

	a.release(h1)
	if _, ok := a.get(h1); ok {
		t.Error("Expected released handle not to resolve")
	}

	h2 := a.alloc(s2)
	if h2.index() != h1.index() {
		t.Errorf("Expected slot reuse, got index %d and %d", h1.index(), h2.index())
	}
	if h2 == h1 {
		t.Error("Expected a new generation on reuse")
	}
	if _, ok := a.get(h1); ok {
		t.Error("Expected stale handle not to resolve to the new occupant")
	}
	if a.live != 1 {
		t.Errorf("Expected 1 live slot, got %d", a.live)
	}

	// Double release is ignored
	a.release(h1)
	if a.live != 1 {
		t.Errorf("Expected stale release ignored, got %d live", a.live)
	}
}

func TestEdgeOverlaps(t *testing.T) {
	vp := Size{W: 10, H: 5}
	box := surface.Blank(2, 1)
	q := func(x, y vmath.Frac) Query {
		return Query{At: vmath.PtF(x, y), Surface: box, Viewport: vp}
	}

	tests := []struct {
		name string
		edge Edge
		q    Query
		want bool
	}{
		{"top inside", EdgeTop, q(vmath.I(0), vmath.I(0)), false},
		{"top past", EdgeTop, q(vmath.I(0), vmath.F(-1, 2)), true},
		{"bottom flush", EdgeBottom, q(vmath.I(0), vmath.I(4)), false},
		{"bottom past", EdgeBottom, q(vmath.I(0), vmath.F(9, 2)), true},
		{"left past", EdgeLeft, q(vmath.I(-1), vmath.I(2)), true},
		{"right flush", EdgeRight, q(vmath.I(8), vmath.I(2)), false},
		{"right past", EdgeRight, q(vmath.I(9), vmath.I(2)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.Overlaps(tt.q); got != tt.want {
				t.Errorf("%s.Overlaps: expected %v, got %v", tt.edge, tt.want, got)
			}
		})
	}

	n := 0
	for range Screen.Collidables() {
		n++
	}
	if n != 4 {
		t.Errorf("Expected 4 screen edges, got %d", n)
	}
}
