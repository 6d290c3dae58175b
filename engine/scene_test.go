package engine

import (
	"errors"
	"slices"
	"testing"

	"github.com/lixenwraith/termsprite/vmath"
)

func TestFirstRenderOnlyDraws(t *testing.T) {
	sc, out := newRecordScene(20, 10)
	s := place(t, sc, "ab\ncd", 2, 3)
	sc.Render()

	want := []call{
		{op: "write", col: 3, row: 4, text: "ab"},
		{op: "write", col: 3, row: 5, text: "cd"},
	}
	if got := out.writes(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if out.flushes != 1 {
		t.Errorf("Expected one flush, got %d", out.flushes)
	}
	if s.Dirty() {
		t.Error("Expected clean sprite after render")
	}
}

func TestMoveErasesBeforeDrawing(t *testing.T) {
	sc, out := newRecordScene(20, 10)
	s := place(t, sc, "ab", 2, 3)
	sc.Render()
	out.reset()

	s.Move(1, 0)
	sc.Render()

	want := []call{
		{op: "write", col: 3, row: 4, text: "  "},
		{op: "write", col: 4, row: 4, text: "ab"},
	}
	if got := out.writes(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCleanSceneWritesNothing(t *testing.T) {
	sc, out := newRecordScene(20, 10)
	place(t, sc, "ab", 2, 3)
	sc.Render()
	out.reset()

	sc.Render()
	if len(out.writes()) != 0 {
		t.Errorf("Expected no writes, got %v", out.writes())
	}
}

func TestNoGhostingWhenNeighborLeaves(t *testing.T) {
	sc, sim := newSimScene(t, 20, 5)
	place(t, sc, "AAAA", 0, 0)
	b := place(t, sc, "BB", 1, 0)
	sc.Render()
	if got := row(sim, 0); got != "ABBA" {
		t.Fatalf("Expected ABBA, got %q", got)
	}

	b.Goto(vmath.Pt(10, 0))
	sc.Render()
	if got := row(sim, 0); got != "AAAA      BB" {
		t.Errorf("Expected AAAA      BB, got %q", got)
	}
}

func TestLowerSpriteMoveKeepsTopIntact(t *testing.T) {
	sc, sim := newSimScene(t, 20, 5)
	low := place(t, sc, "LLL", 0, 0)
	place(t, sc, "T", 1, 0)
	sc.Render()

	low.Goto(vmath.Pt(0, 2))
	sc.Render()
	if got := row(sim, 0); got != " T" {
		t.Errorf("Expected top sprite redrawn over the erase, got %q", got)
	}
	if got := row(sim, 2); got != "LLL" {
		t.Errorf("Expected LLL on row 2, got %q", got)
	}
}

func TestDirtyClosureIsTransitive(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	a := place(t, sc, "AAA", 0, 0)
	b := place(t, sc, "BBB", 2, 0)
	c := place(t, sc, "CCC", 4, 0)
	d := place(t, sc, "D", 10, 0)
	sc.Render()

	a.SetDirty()
	for _, s := range []*Sprite{a, b, c} {
		if !s.Dirty() {
			t.Errorf("Expected sprite at z=%d dirty", s.Z())
		}
	}
	if d.Dirty() {
		t.Error("Expected distant sprite clean")
	}

	got := sc.Dirty()
	if want := []*Sprite{a, b, c}; !slices.Equal(got, want) {
		t.Errorf("Expected redraw set [a b c] by z, got %d sprites", len(got))
	}

	// Idempotent
	a.SetDirty()
	if n := len(sc.Dirty()); n != 3 {
		t.Errorf("Expected 3 dirty sprites, got %d", n)
	}
}

func TestZStableAcrossRemoval(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	a := place(t, sc, "a", 0, 0)
	b := place(t, sc, "b", 2, 0)
	c := place(t, sc, "c", 4, 0)

	b.Kill()
	sc.Render()
	d := place(t, sc, "d", 6, 0)

	if a.Z() != 0 || c.Z() != 2 || d.Z() != 3 {
		t.Errorf("Expected z 0,2,3, got %d,%d,%d", a.Z(), c.Z(), d.Z())
	}
	if got := sc.Sprites(); !slices.Equal(got, []*Sprite{a, c, d}) {
		t.Errorf("Expected [a c d], got %d sprites", len(got))
	}
}

func TestReorder(t *testing.T) {
	sc, _ := newRecordScene(20, 5)
	a := place(t, sc, "a", 0, 0)
	c := place(t, sc, "c", 4, 0)
	d := place(t, sc, "d", 6, 0)
	sc.Render()

	if err := sc.LowerToBottom(d); err != nil {
		t.Fatalf("LowerToBottom: %v", err)
	}
	if d.Z() != 0 || a.Z() != 1 || c.Z() != 2 {
		t.Errorf("Expected z d=0 a=1 c=2, got d=%d a=%d c=%d", d.Z(), a.Z(), c.Z())
	}
	if !d.Dirty() || !a.Dirty() || !c.Dirty() {
		t.Error("Expected every renumbered sprite dirty")
	}
	sc.Render()

	if err := sc.RaiseToTop(d); err != nil {
		t.Fatalf("RaiseToTop: %v", err)
	}
	if got := sc.Sprites(); !slices.Equal(got, []*Sprite{a, c, d}) {
		t.Error("Expected d back on top")
	}
	if a.Z() != 0 || c.Z() != 1 || d.Z() != 2 {
		t.Errorf("Expected z a=0 c=1 d=2, got a=%d c=%d d=%d", a.Z(), c.Z(), d.Z())
	}

	other, _ := newRecordScene(5, 5)
	if err := other.RaiseToTop(d); !errors.Is(err, ErrForeignScene) {
		t.Errorf("Expected ErrForeignScene, got %v", err)
	}
}

func TestScrollMovesEverything(t *testing.T) {
	sc, out := newRecordScene(20, 10)
	place(t, sc, "x", 2, 2)
	sc.Render()
	out.reset()

	sc.Scroll(1, 0)
	if sc.Offset() != vmath.Pt(1, 0) {
		t.Errorf("Expected offset (1,0), got %v", sc.Offset())
	}
	sc.Render()

	want := []call{
		{op: "write", col: 3, row: 3, text: " "},
		{op: "write", col: 4, row: 3, text: "x"},
	}
	if got := out.writes(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestViewportClipping(t *testing.T) {
	sc, out := newRecordScene(5, 3)
	place(t, sc, "abc", -1, 0)
	place(t, sc, "xyz", 3, 1)
	place(t, sc, "gone", 0, 5)
	sc.Render()

	want := []call{
		{op: "write", col: 1, row: 1, text: "bc"},
		{op: "write", col: 4, row: 2, text: "xy"},
	}
	if got := out.writes(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWideGlyphErase(t *testing.T) {
	sc, out := newRecordScene(20, 5)
	s := place(t, sc, "世", 0, 0)
	sc.Render()
	out.reset()

	s.Move(3, 0)
	sc.Render()
	w := out.writes()
	if len(w) != 2 || w[0].text != "  " {
		t.Errorf("Expected a two-cell erase, got %v", w)
	}
}

func TestHideErasesAndShowRedraws(t *testing.T) {
	sc, sim := newSimScene(t, 10, 3)
	s := place(t, sc, "hi", 0, 0)
	sc.Render()

	s.Hide()
	sc.Render()
	if got := row(sim, 0); got != "" {
		t.Errorf("Expected hidden sprite erased, got %q", got)
	}
	s.Show()
	sc.Render()
	if got := row(sim, 0); got != "hi" {
		t.Errorf("Expected hi, got %q", got)
	}
}

func TestRenderAll(t *testing.T) {
	sc, sim := newSimScene(t, 10, 3)
	place(t, sc, "abc", 0, 0)
	place(t, sc, "d", 5, 1)
	sc.Render()

	sc.RenderAll(true)
	if row(sim, 0) != "" || row(sim, 1) != "" {
		t.Error("Expected everything erased")
	}
	sc.RenderAll(false)
	if row(sim, 0) != "abc" || row(sim, 1) != "     d" {
		t.Errorf("Expected full repaint, got %q / %q", row(sim, 0), row(sim, 1))
	}
}

func TestSceneUpdateCallsHooks(t *testing.T) {
	sc, _ := newRecordScene(10, 3)
	moves := 0
	step := UpdateFunc(func(s *Sprite) {
		moves++
		s.Move(1, 0)
	})
	s := place(t, sc, "x", 0, 0, WithHooks(step))
	place(t, sc, "y", 5, 0)

	sc.Update()
	if moves != 1 || s.Pos() != vmath.Pt(1, 0) {
		t.Errorf("Expected one update moving to (1,0), got %d at %v", moves, s.Pos())
	}
}

func TestSampleViewport(t *testing.T) {
	sc, sim := newSimScene(t, 30, 12)
	sc.SetViewport(1, 1)
	sc.SampleViewport(sc.Output().(Viewport))
	if got := sc.Viewport(); got != (Size{W: 30, H: 12}) {
		t.Errorf("Expected 30x12, got %v", got)
	}
	sim.SetSize(40, 20)
	sc.SampleViewport(sc.Output().(Viewport))
	if got := sc.Viewport(); got != (Size{W: 40, H: 20}) {
		t.Errorf("Expected 40x20, got %v", got)
	}
}

func TestSpriteRenderAlone(t *testing.T) {
	sc, out := newRecordScene(10, 3)
	s := place(t, sc, "x", 1, 1)
	s.Render(false)
	if got := out.writes(); len(got) != 1 || got[0].text != "x" {
		t.Errorf("Expected a single draw, got %v", got)
	}
	out.reset()
	s.Render(true)
	if got := out.writes(); len(got) != 1 || got[0].text != " " {
		t.Errorf("Expected a single erase, got %v", got)
	}
}
