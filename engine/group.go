package engine

import (
	"fmt"
	"iter"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Group is an unordered, non-owning collection of sprites in one scene
// Members are stored as handles; zombies stay members until the scene
// detaches them but are invisible to every query
type Group struct {
	scene   *Scene
	name    string
	members mapset.Set[Entity]
	frozen  bool
}

// NewGroup creates an empty group bound to sc
func NewGroup(sc *Scene, name string) *Group {
	return &Group{
		scene:   sc,
		name:    name,
		members: mapset.New[Entity](),
	}
}

func (g *Group) Name() string { return g.name }

func (g *Group) String() string {
	if g.name == "" {
		return "group"
	}
	return fmt.Sprintf("group %q", g.name)
}

// Freeze makes membership read-only
func (g *Group) Freeze() { g.frozen = true }

// Add inserts placed, live sprites of the group's scene
func (g *Group) Add(sprites ...*Sprite) error {
	if g.frozen {
		return ErrFrozen
	}
	for _, s := range sprites {
		switch {
		case s.state == stateAbstract:
			return fmt.Errorf("add to %s: %w", g, ErrNotPlaced)
		case s.Zombie():
			return fmt.Errorf("add to %s: %w", g, ErrZombie)
		case s.scene != g.scene:
			return fmt.Errorf("add to %s: %w", g, ErrForeignScene)
		}
		if g.members.Has(s.handle) {
			continue
		}
		g.members.Put(s.handle)
		s.groups = append(s.groups, g)
	}
	return nil
}

// Remove drops sprites from the group without destroying them
func (g *Group) Remove(sprites ...*Sprite) error {
	if g.frozen {
		return ErrFrozen
	}
	for _, s := range sprites {
		if !g.member(s) {
			return fmt.Errorf("remove from %s: %w", g, ErrNotMember)
		}
		g.unlink(s)
	}
	return nil
}

// member matches s by handle and scene; handles are only unique per scene
func (g *Group) member(s *Sprite) bool {
	return s.state != stateAbstract && s.scene == g.scene && g.members.Has(s.handle)
}

// unlink removes both directions of membership
func (g *Group) unlink(s *Sprite) {
	g.members.Remove(s.handle)
	if i := slices.Index(s.groups, g); i >= 0 {
		s.groups = slices.Delete(s.groups, i, i+1)
	}
}

// Has reports live membership; zombies are never members
func (g *Group) Has(s *Sprite) bool {
	return s.state == statePlaced && g.member(s)
}

// Len counts live members
func (g *Group) Len() int {
	n := 0
	g.members.Each(func(e Entity) {
		if s, ok := g.scene.Lookup(e); ok && s.state == statePlaced {
			n++
		}
	})
	return n
}

// Sprites returns a z-ordered snapshot of live members
func (g *Group) Sprites() []*Sprite {
	out := make([]*Sprite, 0, g.members.Size())
	g.members.Each(func(e Entity) {
		if s, ok := g.scene.Lookup(e); ok && s.state == statePlaced {
			out = append(out, s)
		}
	})
	slices.SortFunc(out, func(a, b *Sprite) int { return a.z - b.z })
	return out
}

// Collidables implements Targets over live members
func (g *Group) Collidables() iter.Seq[Collidable] {
	return func(yield func(Collidable) bool) {
		for _, s := range g.Sprites() {
			if !yield(s) {
				return
			}
		}
	}
}

// Update calls each live member's Update hook. Members killed by an
// earlier hook in the same pass are skipped
func (g *Group) Update() {
	for _, s := range g.Sprites() {
		if s.state == statePlaced {
			s.hooks.Update(s)
		}
	}
}

// Render renders every live member individually, flushing once
func (g *Group) Render(erase bool) {
	for _, s := range g.Sprites() {
		s.Render(erase)
	}
	g.scene.out.Flush()
}
