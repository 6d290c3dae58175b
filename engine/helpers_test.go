package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termsprite/terminal"
	"github.com/lixenwraith/termsprite/vmath"
)

// call is one recorded Output operation
type call struct {
	op       string // "move", "write"
	col, row int
	text     string
}

// recordOutput records cursor moves and writes in order
type recordOutput struct {
	calls   []call
	flushes int
}

func (r *recordOutput) MoveCursor(col, row int) {
	r.calls = append(r.calls, call{op: "move", col: col, row: row})
}

func (r *recordOutput) SetStyle(tcell.Style) {}

func (r *recordOutput) Write(text string) {
	r.calls = append(r.calls, call{op: "write", text: text})
}

func (r *recordOutput) Flush() { r.flushes++ }

func (r *recordOutput) reset() {
	r.calls = nil
	r.flushes = 0
}

// writes pairs each write with the cursor position preceding it
func (r *recordOutput) writes() []call {
	var out []call
	var at call
	for _, c := range r.calls {
		switch c.op {
		case "move":
			at = c
		case "write":
			out = append(out, call{op: "write", col: at.col, row: at.row, text: c.text})
		}
	}
	return out
}

func newRecordScene(w, h int) (*Scene, *recordOutput) {
	out := &recordOutput{}
	return NewScene(out, w, h), out
}

func newSimScene(t *testing.T, w, h int) (*Scene, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(w, h)
	return NewScene(terminal.NewScreen(sim), w, h), sim
}

// row reads screen row y as text
func row(sim tcell.SimulationScreen, y int) string {
	w, _ := sim.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func place(t *testing.T, sc *Scene, text string, x, y int, opts ...Option) *Sprite {
	t.Helper()
	s := NewSprite(append([]Option{WithText(text)}, opts...)...)
	if err := s.Place(sc, vmath.Pt(x, y)); err != nil {
		t.Fatalf("place %q: %v", text, err)
	}
	return s
}

// expectMisuse runs fn and requires a *MisuseError wrapping want
func expectMisuse(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("Expected panic with %v, got %v", want, r)
		}
		var me *MisuseError
		if !errors.As(err, &me) {
			t.Fatalf("Expected *MisuseError, got %T", r)
		}
		if !errors.Is(err, want) {
			t.Errorf("Expected %v, got %v", want, err)
		}
	}()
	fn()
}
