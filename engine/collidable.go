package engine

import (
	"iter"

	"github.com/lixenwraith/termsprite/surface"
	"github.com/lixenwraith/termsprite/vmath"
	"github.com/zyedidia/generic/mapset"
)

// Size is a viewport size in cells, sampled once per tick
type Size struct {
	W, H int
}

// Query describes a footprint to test: a surface-sized box at a coordinate
type Query struct {
	At      vmath.Coord
	Surface *surface.Surface

	// Source is the sprite asking, nil for free probes. A sprite never matches its own query
	Source *Sprite

	Viewport Size
}

// Rect returns the query footprint
func (q Query) Rect() vmath.Rect {
	w, h := q.Surface.Size()
	return vmath.NewRect(q.At, w, h)
}

// Collidable answers whether a footprint overlaps it
// Implementations must be comparable: results are deduplicated by identity
type Collidable interface {
	Targets
	Overlaps(q Query) bool
}

// Targets is anything that enumerates collidables: a single collidable,
// a Group, a Scene or a nested Set of those
type Targets interface {
	Collidables() iter.Seq[Collidable]
}

// Set nests targets, e.g. Set{tiles, pad, Screen}
type Set []Targets

func (s Set) Collidables() iter.Seq[Collidable] {
	return func(yield func(Collidable) bool) {
		for _, t := range s {
			if t == nil {
				continue
			}
			for c := range t.Collidables() {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Flatten enumerates each distinct collidable reachable from targets once, in first-seen order
func Flatten(targets ...Targets) iter.Seq[Collidable] {
	return func(yield func(Collidable) bool) {
		seen := mapset.New[Collidable]()
		for c := range Set(targets).Collidables() {
			if seen.Has(c) {
				continue
			}
			seen.Put(c)
			if !yield(c) {
				return
			}
		}
	}
}

// Overlapping returns every distinct collidable in targets that overlaps q
func Overlapping(q Query, targets ...Targets) []Collidable {
	var hits []Collidable
	for c := range Flatten(targets...) {
		if c.Overlaps(q) {
			hits = append(hits, c)
		}
	}
	return hits
}

// hitSet accumulates collisions across probes without duplicates
type hitSet struct {
	seen  mapset.Set[Collidable]
	order []Collidable
}

func newHitSet() *hitSet {
	return &hitSet{seen: mapset.New[Collidable]()}
}

func (h *hitSet) add(cs ...Collidable) {
	for _, c := range cs {
		if h.seen.Has(c) {
			continue
		}
		h.seen.Put(c)
		h.order = append(h.order, c)
	}
}

func (h *hitSet) list() []Collidable { return h.order }
