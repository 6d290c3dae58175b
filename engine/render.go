package engine

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termsprite/surface"
	"github.com/lixenwraith/termsprite/vmath"
	"github.com/mattn/go-runewidth"
)

// Output is the terminal collaborator the engine writes to
type Output interface {
	// MoveCursor positions the write cursor, 1-based
	MoveCursor(col, row int)
	// SetStyle applies to subsequent writes
	SetStyle(st tcell.Style)
	Write(text string)
	Flush()
}

// Viewport reports the visible size in cells
type Viewport interface {
	Size() (width, height int)
}

// erase blanks the last-drawn footprint
func (s *Sprite) erase(out Output) {
	if !s.drawn.onScreen {
		return
	}
	writeSurface(out, s.scene.viewport, s.drawn.pos.Add(s.drawn.offset), s.drawn.surf.ToBlank(), tcell.StyleDefault)
	s.drawn.onScreen = false
}

// draw paints the current footprint; hidden sprites and zombies paint nothing
func (s *Sprite) draw(out Output) {
	if !s.collidable() {
		return
	}
	writeSurface(out, s.scene.viewport, s.pos.Add(s.scene.offset), s.surf, s.style)
	s.drawn.onScreen = true
}

// commit snapshots current state as rendered state
func (s *Sprite) commit() {
	s.drawn.pos = s.pos
	s.drawn.offset = s.scene.offset
	s.drawn.surf = s.surf
	s.dirty = false
}

// Render erases the previous footprint then draws the current one, for this
// sprite alone. Neighbors are not repainted; Scene.Render is the normal path
func (s *Sprite) Render(erase bool) {
	if s.state == stateAbstract {
		misuse("Render", ErrNotPlaced)
	}
	out := s.scene.out
	s.erase(out)
	if !erase {
		s.draw(out)
	}
	s.commit()
}

// writeSurface writes each row of surf at screen coordinate at, clipped to vp
func writeSurface(out Output, vp Size, at vmath.Coord, surf *surface.Surface, st tcell.Style) {
	x0, y0 := at.Cells()
	out.SetStyle(st)
	for i := 0; i < surf.Height(); i++ {
		y := y0 + i
		if y < 0 || (vp.H > 0 && y >= vp.H) {
			continue
		}
		text, x := clipRow(surf.Line(i), x0, vp.W)
		if text == "" {
			continue
		}
		out.MoveCursor(x+1, y+1)
		out.Write(text)
	}
}

// clipRow keeps the runes of line, placed at column x0, that lie fully inside
// [0, width). width <= 0 disables right clipping. Returns the kept text and its start column
func clipRow(line string, x0, width int) (string, int) {
	if x0 >= 0 && (width <= 0 || x0+runewidth.StringWidth(line) <= width) {
		return line, x0
	}
	var b strings.Builder
	start := -1
	col := x0
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if col >= 0 && (width <= 0 || col+w <= width) {
			if start < 0 {
				start = col
			}
			b.WriteRune(r)
		} else if start >= 0 {
			break
		}
		col += w
	}
	if start < 0 {
		return "", 0
	}
	return b.String(), start
}
