package engine

import (
	"iter"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termsprite/surface"
	"github.com/lixenwraith/termsprite/vmath"
)

// lifecycle of a sprite; transitions only move forward
type lifecycle uint8

const (
	stateAbstract lifecycle = iota // constructed, no scene
	statePlaced                    // attached to exactly one scene
	stateZombie                    // killed, erased, awaiting detachment
	stateDetached                  // removed from scene and groups
)

// rendered is the snapshot of what was last drawn
type rendered struct {
	pos      vmath.Coord // world coordinate at draw time
	offset   vmath.Coord // scene scroll at draw time
	surf     *surface.Surface
	onScreen bool
}

func (r rendered) screenRect() vmath.Rect {
	w, h := r.surf.Size()
	return vmath.NewRect(r.pos.Add(r.offset), w, h)
}

// Sprite is a positioned, drawable, collidable entity
type Sprite struct {
	scene  *Scene
	handle Entity
	state  lifecycle

	pos    vmath.Coord
	surf   *surface.Surface
	style  tcell.Style
	hidden bool
	z      int

	dirty   bool
	virtual int // nesting depth of Probe
	drawn   rendered

	hooks     Hooks
	joinGroup *Group   // declared group, joined at placement
	groups    []*Group // bidirectional membership
}

// Option configures a sprite before placement
type Option func(*Sprite)

// WithSurface sets the initial appearance
func WithSurface(s *surface.Surface) Option {
	return func(sp *Sprite) { sp.surf = s }
}

// WithText sets the initial appearance from text
func WithText(text string) Option {
	return func(sp *Sprite) { sp.surf = surface.New(text) }
}

// WithHooks attaches behavior
func WithHooks(h Hooks) Option {
	return func(sp *Sprite) { sp.hooks = h }
}

// WithGroup declares a group the sprite joins on placement
func WithGroup(g *Group) Option {
	return func(sp *Sprite) { sp.joinGroup = g }
}

// WithStyle sets the draw style
func WithStyle(st tcell.Style) Option {
	return func(sp *Sprite) { sp.style = st }
}

// NewSprite creates an abstract sprite; it cannot move or draw until placed
func NewSprite(opts ...Option) *Sprite {
	s := &Sprite{
		hooks: NopHooks{},
		style: tcell.StyleDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place attaches the sprite to sc at the given coordinate. A sprite is placed at most once
func (s *Sprite) Place(sc *Scene, at vmath.Coord) error {
	if s.state != stateAbstract {
		return ErrAlreadyPlaced
	}
	if s.joinGroup != nil && s.joinGroup.scene != sc {
		return ErrForeignScene
	}
	if built := s.hooks.NewSurface(s); built != nil {
		s.surf = built
	}
	if s.surf == nil {
		return ErrNoSurface
	}

	s.pos = at
	s.scene = sc
	s.state = statePlaced
	sc.attach(s)

	if s.joinGroup != nil {
		// Scene and liveness were checked above; Add cannot fail on an unfrozen group
		if err := s.joinGroup.Add(s); err != nil {
			return err
		}
	}
	s.hooks.OnPlaced(s)

	// Nothing is on screen yet; the first render only draws
	s.drawn = rendered{pos: s.pos, offset: sc.offset, surf: s.surf}
	s.dirty = true
	return nil
}

// MustPlace is Place that panics on error, for chained construction
func (s *Sprite) MustPlace(sc *Scene, at vmath.Coord) *Sprite {
	if err := s.Place(sc, at); err != nil {
		misuse("Place", err)
	}
	return s
}

// mustLive guards operations that need a placed, non-zombie sprite
func (s *Sprite) mustLive(op string) {
	switch s.state {
	case stateAbstract:
		misuse(op, ErrNotPlaced)
	case stateZombie, stateDetached:
		misuse(op, ErrZombie)
	}
}

// --- State accessors ---

func (s *Sprite) Scene() *Scene            { return s.scene }
func (s *Sprite) Entity() Entity           { return s.handle }
func (s *Sprite) Pos() vmath.Coord         { return s.pos }
func (s *Sprite) X() vmath.Frac            { return s.pos.X }
func (s *Sprite) Y() vmath.Frac            { return s.pos.Y }
func (s *Sprite) Z() int                   { return s.z }
func (s *Sprite) Surface() *surface.Surface { return s.surf }
func (s *Sprite) Style() tcell.Style       { return s.style }
func (s *Sprite) Hooks() Hooks             { return s.hooks }
func (s *Sprite) Hidden() bool             { return s.hidden }
func (s *Sprite) Dirty() bool              { return s.dirty }
func (s *Sprite) IsVirtual() bool          { return s.virtual > 0 }
func (s *Sprite) Placed() bool             { return s.state == statePlaced }
func (s *Sprite) Zombie() bool             { return s.state >= stateZombie }

// Width and Height of the current surface in cells
func (s *Sprite) Width() int  { return s.surf.Width() }
func (s *Sprite) Height() int { return s.surf.Height() }

// Groups returns the groups the sprite is a member of
func (s *Sprite) Groups() []*Group {
	out := make([]*Group, len(s.groups))
	copy(out, s.groups)
	return out
}

// --- Movement ---

// Goto moves to an absolute coordinate
func (s *Sprite) Goto(at vmath.Coord) {
	s.mustLive("Goto")
	s.pos = at
	s.SetDirty()
}

// Move translates by whole cells
func (s *Sprite) Move(dx, dy int) {
	s.mustLive("Move")
	s.pos = s.pos.Add(vmath.Pt(dx, dy))
	s.SetDirty()
}

// Shift translates by a fractional delta
func (s *Sprite) Shift(d vmath.Coord) {
	s.mustLive("Shift")
	s.pos = s.pos.Add(d)
	s.SetDirty()
}

func (s *Sprite) SetX(x vmath.Frac) {
	s.mustLive("SetX")
	s.pos = s.pos.WithX(x)
	s.SetDirty()
}

func (s *Sprite) SetY(y vmath.Frac) {
	s.mustLive("SetY")
	s.pos = s.pos.WithY(y)
	s.SetDirty()
}

func (s *Sprite) Hide() {
	s.mustLive("Hide")
	s.hidden = true
	s.SetDirty()
}

func (s *Sprite) Show() {
	s.mustLive("Show")
	s.hidden = false
	s.SetDirty()
}

// SetStyle changes the draw style
func (s *Sprite) SetStyle(st tcell.Style) {
	s.mustLive("SetStyle")
	if st == s.style {
		return
	}
	s.style = st
	s.SetDirty()
}

// SetSurface swaps the appearance
func (s *Sprite) SetSurface(surf *surface.Surface) {
	s.mustLive("SetSurface")
	if surf == nil {
		misuse("SetSurface", ErrNoSurface)
	}
	s.surf = surf
	s.SetDirty()
}

// UpdateSurface rebuilds the appearance through Hooks.NewSurface
func (s *Sprite) UpdateSurface() {
	s.mustLive("UpdateSurface")
	if built := s.hooks.NewSurface(s); built != nil {
		s.SetSurface(built)
	}
}

// BoundOnScreen clamps the sprite so its footprint stays inside the viewport
func (s *Sprite) BoundOnScreen() {
	s.mustLive("BoundOnScreen")
	vp := s.scene.viewport
	maxX := vmath.I(max(vp.W-s.Width(), 0))
	maxY := vmath.I(max(vp.H-s.Height(), 0))
	clamped := vmath.PtF(
		vmath.Clamp(s.pos.X, vmath.Frac{}, maxX),
		vmath.Clamp(s.pos.Y, vmath.Frac{}, maxY),
	)
	if clamped != s.pos {
		s.pos = clamped
		s.SetDirty()
	}
}

// --- Lifecycle ---

// Kill erases the sprite now and turns it into a zombie. Idempotent.
// The owning scene detaches it from groups during its next Render
func (s *Sprite) Kill() {
	switch s.state {
	case stateAbstract:
		misuse("Kill", ErrNotPlaced)
	case stateZombie, stateDetached:
		return
	}

	// Neighbors sharing cells must repaint what the erase blanks
	s.cascade()
	s.erase(s.scene.out)

	s.state = stateZombie
	s.hidden = true
	s.dirty = true
	s.scene.zombies = append(s.scene.zombies, s)
}

// Probe runs fn in virtual mode: dirtiness is suppressed while fn moves the
// sprite through intermediate positions, then set once at the end
func (s *Sprite) Probe(fn func()) {
	s.mustLive("Probe")
	s.virtual++
	func() {
		defer func() { s.virtual-- }()
		fn()
	}()
	if s.virtual == 0 && s.state == statePlaced {
		s.SetDirty()
	}
}

// --- Collision ---

// rect is the current footprint in world coordinates
func (s *Sprite) rect() vmath.Rect {
	w, h := s.surf.Size()
	return vmath.NewRect(s.pos, w, h)
}

// collidable reports whether the sprite takes part in collision queries
func (s *Sprite) collidable() bool {
	return s.state == statePlaced && !s.hidden
}

// Overlaps implements Collidable. Hidden sprites and zombies are never hit.
// Only the target's visibility counts: a hidden source still collides
func (s *Sprite) Overlaps(q Query) bool {
	if q.Source == s || !s.collidable() {
		return false
	}
	if q.Source != nil && q.Source.state != statePlaced {
		return false
	}
	return s.rect().Overlaps(q.Rect())
}

// Collidables implements Targets
func (s *Sprite) Collidables() iter.Seq[Collidable] {
	return func(yield func(Collidable) bool) {
		yield(s)
	}
}

// QueryAt builds a query for this sprite's surface at an arbitrary coordinate
func (s *Sprite) QueryAt(at vmath.Coord) Query {
	return Query{At: at, Surface: s.surf, Source: s, Viewport: s.scene.viewport}
}

// Collisions returns every distinct collidable in targets overlapping the sprite now
func (s *Sprite) Collisions(targets ...Targets) []Collidable {
	s.mustLive("Collisions")
	return Overlapping(s.QueryAt(s.pos), targets...)
}

// IsColliding reports whether any target overlaps the sprite now
func (s *Sprite) IsColliding(targets ...Targets) bool {
	s.mustLive("IsColliding")
	q := s.QueryAt(s.pos)
	for c := range Flatten(targets...) {
		if c.Overlaps(q) {
			return true
		}
	}
	return false
}

// CollidedBefore returns targets overlapping the footprint as last drawn,
// answering "was I colliding before my last move"
func (s *Sprite) CollidedBefore(targets ...Targets) []Collidable {
	s.mustLive("CollidedBefore")
	q := Query{At: s.drawn.pos, Surface: s.drawn.surf, Source: s, Viewport: s.scene.viewport}
	return Overlapping(q, targets...)
}

// Touching is the symmetric sprite-to-sprite overlap test
func (s *Sprite) Touching(other *Sprite) bool {
	return other.Overlaps(s.QueryAt(s.pos))
}
