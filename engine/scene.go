package engine

import (
	"iter"
	"log"
	"slices"

	"github.com/lixenwraith/termsprite/vmath"
	"github.com/zyedidia/generic/mapset"
)

// Scene owns every placed sprite, ordered back to front by z, and turns
// per-tick mutations into a minimal erase-then-draw pass
type Scene struct {
	out      Output
	viewport Size
	offset   vmath.Coord

	sprites arena
	order   []*Sprite // ascending z
	nextZ   int
	zombies []*Sprite

	// VirtualGuard panics in Render when a sprite is left virtual
	VirtualGuard bool
}

// NewScene creates an empty scene writing to out with the given viewport size
func NewScene(out Output, width, height int) *Scene {
	return &Scene{
		out:          out,
		viewport:     Size{W: width, H: height},
		VirtualGuard: true,
	}
}

// attach registers a newly placed sprite at the top of the z order
func (sc *Scene) attach(s *Sprite) {
	s.handle = sc.sprites.alloc(s)
	s.z = sc.nextZ
	sc.nextZ++
	sc.order = append(sc.order, s)
}

// detach frees a zombie from groups and the scene
func (sc *Scene) detach(s *Sprite) {
	for _, g := range slices.Clone(s.groups) {
		g.unlink(s)
	}
	if i := slices.Index(sc.order, s); i >= 0 {
		sc.order = slices.Delete(sc.order, i, i+1)
	}
	sc.sprites.release(s.handle)
	s.state = stateDetached
	s.dirty = false
}

// Lookup resolves a handle; detached sprites do not resolve
func (sc *Scene) Lookup(e Entity) (*Sprite, bool) {
	return sc.sprites.get(e)
}

// Output returns the terminal the scene writes to
func (sc *Scene) Output() Output { return sc.out }

// --- Viewport and scroll ---

// SetViewport records the viewport size for this tick
func (sc *Scene) SetViewport(width, height int) {
	sc.viewport = Size{W: width, H: height}
}

// SampleViewport reads the size from vp
func (sc *Scene) SampleViewport(vp Viewport) {
	sc.SetViewport(vp.Size())
}

func (sc *Scene) Viewport() Size { return sc.viewport }

func (sc *Scene) Offset() vmath.Coord { return sc.offset }

// Scroll shifts the view; every sprite moves on screen so every sprite is dirtied
func (sc *Scene) Scroll(dx, dy int) {
	sc.SetScroll(sc.offset.Add(vmath.Pt(dx, dy)))
}

func (sc *Scene) SetScroll(offset vmath.Coord) {
	if offset == sc.offset {
		return
	}
	sc.offset = offset
	sc.invalidate()
}

// invalidate marks every placed sprite dirty without cascading
func (sc *Scene) invalidate() {
	for _, s := range sc.order {
		if s.state == statePlaced {
			s.dirty = true
		}
	}
}

// --- Enumeration ---

// Len counts live sprites
func (sc *Scene) Len() int {
	n := 0
	for _, s := range sc.order {
		if s.state == statePlaced {
			n++
		}
	}
	return n
}

// Sprites returns a z-ordered snapshot of live sprites
func (sc *Scene) Sprites() []*Sprite {
	out := make([]*Sprite, 0, len(sc.order))
	for _, s := range sc.order {
		if s.state == statePlaced {
			out = append(out, s)
		}
	}
	return out
}

// Collidables implements Targets over every live sprite
func (sc *Scene) Collidables() iter.Seq[Collidable] {
	return func(yield func(Collidable) bool) {
		for _, s := range sc.Sprites() {
			if !yield(s) {
				return
			}
		}
	}
}

// Update calls every live sprite's Update hook in z order
func (sc *Scene) Update() {
	for _, s := range sc.Sprites() {
		if s.state == statePlaced {
			s.hooks.Update(s)
		}
	}
}

// --- Z order ---

// Reorder moves s to position index in the back-to-front order. Only
// sprites between the old and new positions receive new z values
func (sc *Scene) Reorder(s *Sprite, index int) error {
	if s.scene != sc {
		return ErrForeignScene
	}
	if s.state != statePlaced {
		return ErrZombie
	}
	from := slices.Index(sc.order, s)
	to := max(0, min(index, len(sc.order)-1))
	if from == to {
		return nil
	}
	lo, hi := min(from, to), max(from, to)

	zs := make([]int, 0, hi-lo+1)
	for _, sp := range sc.order[lo : hi+1] {
		zs = append(zs, sp.z)
	}
	sc.order = slices.Delete(sc.order, from, from+1)
	sc.order = slices.Insert(sc.order, to, s)
	for i, sp := range sc.order[lo : hi+1] {
		if sp.z != zs[i] {
			sp.z = zs[i]
			sp.SetDirty()
		}
	}
	return nil
}

// RaiseToTop draws s above every other sprite
func (sc *Scene) RaiseToTop(s *Sprite) error {
	return sc.Reorder(s, len(sc.order)-1)
}

// LowerToBottom draws s below every other sprite
func (sc *Scene) LowerToBottom(s *Sprite) error {
	return sc.Reorder(s, 0)
}

// --- Rendering ---

// Dirty computes the redraw set: the transitive closure of dirty sprites
// over old-or-new footprint overlap, sorted by ascending z
func (sc *Scene) Dirty() []*Sprite {
	visited := mapset.New[*Sprite]()
	var stack []*Sprite
	for _, s := range sc.order {
		if s.dirty {
			stack = append(stack, s)
		}
	}

	var set []*Sprite
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Has(s) {
			continue
		}
		visited.Put(s)
		set = append(set, s)
		for _, o := range sc.order {
			if !visited.Has(o) && touches(s, o) {
				stack = append(stack, o)
			}
		}
	}

	slices.SortFunc(set, func(a, b *Sprite) int { return a.z - b.z })
	return set
}

// Render erases every affected sprite's previous footprint, then draws every
// affected sprite's current footprint, both passes bottom to top. Zombies
// are detached afterwards and the output is flushed once
func (sc *Scene) Render() {
	if sc.VirtualGuard {
		for _, s := range sc.order {
			if s.virtual > 0 {
				misuse("Render", ErrStillVirtual)
			}
		}
	}

	set := sc.Dirty()
	for _, s := range set {
		s.erase(sc.out)
	}
	for _, s := range set {
		s.draw(sc.out)
	}
	for _, s := range set {
		s.commit()
	}

	if len(sc.zombies) > 0 {
		for _, z := range sc.zombies {
			sc.detach(z)
		}
		log.Printf("scene: detached %d zombie sprite(s)", len(sc.zombies))
		sc.zombies = sc.zombies[:0]
	}
	sc.out.Flush()
}

// EraseAll removes every drawn sprite from the screen and marks all dirty
// so the next Render repaints them, e.g. when switching scenes
func (sc *Scene) EraseAll() {
	for _, s := range sc.order {
		s.erase(sc.out)
	}
	sc.invalidate()
	sc.out.Flush()
}

// RedrawAll repaints every live sprite
func (sc *Scene) RedrawAll() {
	sc.invalidate()
	sc.Render()
}

// RenderAll erases the whole scene when erase is set, otherwise repaints it
func (sc *Scene) RenderAll(erase bool) {
	if erase {
		sc.EraseAll()
		return
	}
	sc.RedrawAll()
}
