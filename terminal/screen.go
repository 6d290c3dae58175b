package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen adapts a tcell.Screen to engine.Output and engine.Viewport
type Screen struct {
	screen tcell.Screen
	x, y   int // 0-based write cursor
	style  tcell.Style
}

// NewScreen wraps an initialized tcell screen
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s, style: tcell.StyleDefault}
}

// Tcell exposes the wrapped screen for input polling
func (s *Screen) Tcell() tcell.Screen { return s.screen }

// MoveCursor positions the write cursor, 1-based
func (s *Screen) MoveCursor(col, row int) {
	s.x, s.y = col-1, row-1
}

func (s *Screen) SetStyle(st tcell.Style) { s.style = st }

// Write puts text at the cursor and advances it by display width
func (s *Screen) Write(text string) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.screen.SetContent(s.x, s.y, r, nil, s.style)
		s.x += w
	}
}

// Flush presents pending cells
func (s *Screen) Flush() { s.screen.Show() }

// Size returns the screen size in cells
func (s *Screen) Size() (int, int) { return s.screen.Size() }
