package engine

import "github.com/lixenwraith/termsprite/vmath"

// SetDirty marks the sprite for redraw and cascades to every sprite whose
// current or last-drawn footprint overlaps either of ours. Idempotent, and
// suppressed entirely while the sprite is virtual
func (s *Sprite) SetDirty() {
	if s.dirty || s.virtual > 0 || s.state != statePlaced {
		return
	}
	s.dirty = true
	s.cascade()
}

// cascade dirties every neighbor sharing cells with either footprint
func (s *Sprite) cascade() {
	if s.scene == nil {
		return
	}
	for _, o := range s.scene.order {
		if o != s && touches(s, o) {
			o.SetDirty()
		}
	}
}

// footprints returns the screen-space boxes the sprite affects: where it
// is drawn now and where it will be drawn next
func (s *Sprite) footprints() (boxes [2]vmath.Rect, n int) {
	if s.drawn.onScreen {
		boxes[n] = s.drawn.screenRect()
		n++
	}
	if s.collidable() {
		w, h := s.surf.Size()
		boxes[n] = vmath.NewRect(s.pos.Add(s.scene.offset), w, h)
		n++
	}
	return boxes, n
}

// touches reports whether any old-or-new footprint of a meets one of b
func touches(a, b *Sprite) bool {
	fa, na := a.footprints()
	if na == 0 {
		return false
	}
	fb, nb := b.footprints()
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			if fa[i].Overlaps(fb[j]) {
				return true
			}
		}
	}
	return false
}
