// @focus: #terminal { ansi }
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Pre-allocated ANSI sequence fragments
var (
	csiReset  = []byte("\x1b[0m")
	csiClear  = []byte("\x1b[2J\x1b[H")
	csiRIS    = []byte("\x1bc") // Reset to Initial State (emergency)
	csiCurPos = []byte("\x1b[") // followed by row;colH

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// ?7l keeps the cursor at the right edge so a write to the bottom-right
	// corner does not scroll the screen
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	csiFg256     = []byte("\x1b[38;5;")
	csiBg256     = []byte("\x1b[48;5;")
	csiFgRGB     = []byte("\x1b[38;2;")
	csiBgRGB     = []byte("\x1b[48;2;")
	csiDefaultFg = []byte("\x1b[39m")
	csiDefaultBg = []byte("\x1b[49m")

	csiAttrBold    = []byte("\x1b[1m")
	csiAttrDim     = []byte("\x1b[2m")
	csiAttrItalic  = []byte("\x1b[3m")
	csiAttrBlink   = []byte("\x1b[5m")
	csiAttrReverse = []byte("\x1b[7m")
)

// Fallback viewport when the output is not a terminal
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ANSI writes cursor-addressed escape sequences to an io.Writer.
// Style changes are coalesced: SGR is only emitted when a write follows a
// style that differs from the last one sent
type ANSI struct {
	w   *bufio.Writer
	fd  int // -1 when not a terminal
	old *term.State

	style   tcell.Style
	emitted tcell.Style
	dirty   bool // style changed since last emission
	plain   bool // no colors or attributes
}

// NewANSI creates an output over w. When w is an *os.File attached to a
// terminal, Size and Enter use it
func NewANSI(w io.Writer) *ANSI {
	a := &ANSI{
		w:     bufio.NewWriterSize(w, 16*1024),
		fd:    -1,
		style: tcell.StyleDefault,
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.fd = int(f.Fd())
	}
	return a
}

// Stdout creates an output over os.Stdout
func Stdout() *ANSI { return NewANSI(os.Stdout) }

// SetPlain disables color and attribute output
func (a *ANSI) SetPlain(plain bool) { a.plain = plain }

// IsTerminal reports whether the output is a real tty
func (a *ANSI) IsTerminal() bool { return a.fd >= 0 }

// Enter switches to raw mode on the alternate screen with the cursor hidden
func (a *ANSI) Enter() error {
	if a.fd >= 0 {
		old, err := term.MakeRaw(a.fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		a.old = old
	}
	a.w.Write(csiAltScreenEnter)
	a.w.Write(csiCursorHide)
	a.w.Write(csiAutoWrapOff)
	a.w.Write(csiClear)
	return a.w.Flush()
}

// Exit restores the screen and terminal mode. Safe to call multiple times
func (a *ANSI) Exit() {
	a.w.Write(csiReset)
	a.w.Write(csiAutoWrapOn)
	a.w.Write(csiCursorShow)
	a.w.Write(csiAltScreenExit)
	a.w.Flush()
	if a.old != nil {
		term.Restore(a.fd, a.old)
		a.old = nil
	}
}

// Size returns the terminal size, or 80x24 when unavailable
func (a *ANSI) Size() (int, int) {
	if a.fd >= 0 {
		if w, h, err := term.GetSize(a.fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return DefaultWidth, DefaultHeight
}

// MoveCursor positions the cursor, 1-based
func (a *ANSI) MoveCursor(col, row int) {
	writeCursorPos(a.w, col-1, row-1)
}

func (a *ANSI) SetStyle(st tcell.Style) {
	if st != a.style {
		a.style = st
		a.dirty = true
	}
}

// Write emits text at the cursor. Zero-width runes are dropped so the
// terminal cursor advances exactly by the text's display width
func (a *ANSI) Write(text string) {
	if a.dirty {
		a.emitStyle()
	}
	for _, r := range text {
		if runewidth.RuneWidth(r) == 0 {
			continue
		}
		a.w.WriteRune(r)
	}
}

// Flush writes buffered output
func (a *ANSI) Flush() {
	a.w.Flush()
}

// emitStyle resets and writes the full SGR state for the current style
func (a *ANSI) emitStyle() {
	a.dirty = false
	if a.style == a.emitted {
		return
	}
	a.emitted = a.style
	a.w.Write(csiReset)
	if a.plain {
		return
	}

	fg, bg, attrs := a.style.Decompose()
	writeColor(a.w, fg, csiFg256, csiFgRGB, csiDefaultFg)
	writeColor(a.w, bg, csiBg256, csiBgRGB, csiDefaultBg)

	if attrs&tcell.AttrBold != 0 {
		a.w.Write(csiAttrBold)
	}
	if attrs&tcell.AttrDim != 0 {
		a.w.Write(csiAttrDim)
	}
	if attrs&tcell.AttrItalic != 0 {
		a.w.Write(csiAttrItalic)
	}
	if attrs&tcell.AttrBlink != 0 {
		a.w.Write(csiAttrBlink)
	}
	if attrs&tcell.AttrReverse != 0 {
		a.w.Write(csiAttrReverse)
	}
}

// writeColor writes a truecolor, palette or default color sequence
func writeColor(w *bufio.Writer, c tcell.Color, palette, rgb, def []byte) {
	switch {
	case c == tcell.ColorDefault || !c.Valid():
		w.Write(def)
	case c.IsRGB():
		r, g, b := c.RGB()
		w.Write(rgb)
		writeInt(w, int(r))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
		w.WriteByte('m')
	default:
		w.Write(palette)
		writeInt(w, int(c-tcell.ColorValid))
		w.WriteByte('m')
	}
}

// writeInt writes a non-negative integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos writes a cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCurPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// EmergencyReset restores a usable terminal after a crash without relying
// on any saved state
func EmergencyReset(w io.Writer) {
	bw := bufio.NewWriter(w)
	bw.Write(csiReset)
	bw.Write(csiAutoWrapOn)
	bw.Write(csiCursorShow)
	bw.Write(csiAltScreenExit)
	bw.Write(csiRIS)
	bw.Flush()
}
