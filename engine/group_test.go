package engine

import (
	"errors"
	"slices"
	"testing"

	"github.com/lixenwraith/termsprite/vmath"
)

func TestGroupMembership(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	g := NewGroup(sc, "tiles")
	a := place(t, sc, "a", 0, 0, WithGroup(g))
	b := place(t, sc, "b", 2, 0)

	if !g.Has(a) || g.Has(b) {
		t.Error("Expected only the declared member")
	}
	if err := g.Add(b, b); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("Expected 2 members, got %d", g.Len())
	}
	if !slices.Contains(b.Groups(), g) {
		t.Error("Expected membership recorded on the sprite")
	}

	if err := g.Remove(a); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if g.Has(a) || len(a.Groups()) != 0 {
		t.Error("Expected both directions unlinked")
	}
	if !a.Placed() {
		t.Error("Expected removal not to destroy the sprite")
	}
}

func TestGroupErrors(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	other, _ := newRecordScene(20, 5)
	g := NewGroup(sc, "g")
	foreign := place(t, other, "f", 0, 0)
	dead := place(t, sc, "d", 1, 0)
	dead.Kill()
	live := place(t, sc, "l", 2, 0)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"abstract", g.Add(NewSprite(WithText("x"))), ErrNotPlaced},
		{"zombie", g.Add(dead), ErrZombie},
		{"foreign", g.Add(foreign), ErrForeignScene},
		{"not member", g.Remove(live), ErrNotMember},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.err)
		}
	}

	g.Freeze()
	if err := g.Add(live); !errors.Is(err, ErrFrozen) {
		t.Errorf("Expected ErrFrozen, got %v", err)
	}
}

func TestGroupForeignHandleCollision(t *testing.T) {
	scA, _ := newRecordScene(20, 5)
	scB, _ := newRecordScene(20, 5)
	g := NewGroup(scA, "g")
	a := place(t, scA, "a", 0, 0, WithGroup(g))
	b := place(t, scB, "b", 0, 0)

	if a.Entity() != b.Entity() {
		t.Fatalf("Expected equal handles across scenes, got %d and %d", a.Entity(), b.Entity())
	}
	if g.Has(b) {
		t.Error("Expected sprite from another scene not to be a member")
	}
	if err := g.Remove(b); !errors.Is(err, ErrNotMember) {
		t.Errorf("Expected ErrNotMember, got %v", err)
	}
	if !g.Has(a) {
		t.Error("Expected the real member to stay in the group")
	}
	if !slices.Contains(a.Groups(), g) {
		t.Error("Expected the real member to keep its group link")
	}
}

func TestGroupSpritesZOrdered(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	g := NewGroup(sc, "g")
	a := place(t, sc, "a", 0, 0)
	b := place(t, sc, "b", 2, 0)
	c := place(t, sc, "c", 4, 0)
	g.Add(c, a, b)

	if got := g.Sprites(); !slices.Equal(got, []*Sprite{a, b, c}) {
		t.Error("Expected members sorted by z")
	}
	var seen []Collidable
	for col := range g.Collidables() {
		seen = append(seen, col)
	}
	if !slices.Equal(seen, []Collidable{a, b, c}) {
		t.Errorf("Expected collidables in z order, got %v", seen)
	}
}

func TestGroupUpdateSkipsKilled(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	g := NewGroup(sc, "g")

	var victim *Sprite
	calls := 0
	killer := UpdateFunc(func(s *Sprite) {
		calls++
		if victim != nil && victim != s {
			victim.Kill()
		}
	})
	place(t, sc, "k", 0, 0, WithGroup(g), WithHooks(killer))
	victim = place(t, sc, "v", 2, 0, WithGroup(g), WithHooks(killer))

	g.Update()
	if calls != 1 {
		t.Errorf("Expected the killed member skipped, got %d calls", calls)
	}
	if g.Len() != 1 {
		t.Errorf("Expected 1 live member, got %d", g.Len())
	}
}

func TestGroupRender(t *testing.T) {
	sc, out := newRecordScene(20, 5)
	g := NewGroup(sc, "g")
	place(t, sc, "a", 0, 0, WithGroup(g))
	place(t, sc, "b", 2, 0, WithGroup(g))
	place(t, sc, "c", 4, 0)

	g.Render(false)
	want := []call{
		{op: "write", col: 1, row: 1, text: "a"},
		{op: "write", col: 3, row: 1, text: "b"},
	}
	if got := out.writes(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if out.flushes != 1 {
		t.Errorf("Expected one flush, got %d", out.flushes)
	}
}

func TestGroupAsTarget(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	g := NewGroup(sc, "walls")
	wall := place(t, sc, "###", 3, 0, WithGroup(g))
	probe := place(t, sc, "p", 0, 0)

	if probe.IsColliding(g) {
		t.Error("Expected no collision yet")
	}
	probe.Goto(vmath.Pt(4, 0))
	if got := probe.Collisions(g); len(got) != 1 || got[0] != Collidable(wall) {
		t.Errorf("Expected [wall], got %v", got)
	}
	if g.String() != `group "walls"` {
		t.Errorf("Expected quoted name, got %s", g)
	}
}
