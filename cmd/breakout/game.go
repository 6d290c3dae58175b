package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termsprite/audio"
	"github.com/lixenwraith/termsprite/config"
	"github.com/lixenwraith/termsprite/engine"
	"github.com/lixenwraith/termsprite/surface"
	"github.com/lixenwraith/termsprite/vmath"
)

const (
	tileText  = "[==]"
	tilePitch = 5
	tileRows  = 3
	tileTop   = 2
	padText   = "========="
	padStep   = 2
	ballText  = "o"
	lives     = 3
)

var tileStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorRed),
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tcell.StyleDefault.Foreground(tcell.ColorGreen),
}

const bannerWin = `
+-----------+
|  YOU WIN  |
+-----------+
`

const bannerLose = `
+-----------+
| GAME OVER |
+-----------+
`

type phase int

const (
	phasePlaying phase = iota
	phaseWon
	phaseLost
)

// action is a player intent decoded from either backend's input
type action int

const (
	actNone action = iota
	actLeft
	actRight
	actMute
	actQuit
)

// Game wires a breakout round onto one scene
type Game struct {
	out    engine.Output
	vp     engine.Viewport
	policy config.ViewportPolicy
	cues   *audio.Cues

	scene  *engine.Scene
	tiles  *engine.Group
	pad    *engine.Sprite
	ball   *engine.Kinematic
	status *engine.Sprite

	autoplay bool
	score    int
	lives    int
	phase    phase
	ticks    int
}

// padHooks steers the paddle toward the ball when autoplaying
type padHooks struct {
	engine.NopHooks
	g *Game
}

func (h padHooks) Update(s *engine.Sprite) {
	if !h.g.autoplay || h.g.phase != phasePlaying {
		return
	}
	target := h.g.ball.X().Floor()
	center := s.X().Floor() + s.Width()/2
	switch {
	case target < center:
		s.Move(-1, 0)
	case target > center:
		s.Move(1, 0)
	}
	s.BoundOnScreen()
}

// statusHooks renders the score line from game state
type statusHooks struct {
	engine.NopHooks
	g *Game
}

func (h statusHooks) NewSurface(*engine.Sprite) *surface.Surface {
	return surface.New(fmt.Sprintf("score %-4d lives %d", h.g.score, h.g.lives))
}

// NewGame lays out tiles, paddle and ball for the current viewport size
func NewGame(out engine.Output, vp engine.Viewport, cfg *config.Config, cues *audio.Cues, autoplay bool) (*Game, error) {
	w, h := vp.Size()
	g := &Game{
		out:      out,
		vp:       vp,
		policy:   cfg.Engine.UpdateViewport,
		cues:     cues,
		autoplay: autoplay,
		lives:    lives,
	}

	g.scene = engine.NewScene(out, w, h)
	g.scene.VirtualGuard = cfg.Engine.VirtualGuard
	g.tiles = engine.NewGroup(g.scene, "tiles")

	g.status = engine.NewSprite(engine.WithHooks(statusHooks{g: g}))
	if err := g.status.Place(g.scene, vmath.Origin); err != nil {
		return nil, fmt.Errorf("place status: %w", err)
	}

	for row := 0; row < tileRows; row++ {
		for x := 2; x+len(tileText) <= w-2; x += tilePitch {
			tile := engine.NewSprite(
				engine.WithText(tileText),
				engine.WithGroup(g.tiles),
				engine.WithStyle(tileStyles[row%len(tileStyles)]),
			)
			if err := tile.Place(g.scene, vmath.Pt(x, tileTop+row)); err != nil {
				return nil, fmt.Errorf("place tile: %w", err)
			}
		}
	}

	g.pad = engine.NewSprite(
		engine.WithText(padText),
		engine.WithHooks(padHooks{g: g}),
		engine.WithStyle(tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)),
	)
	if err := g.pad.Place(g.scene, vmath.Pt((w-len(padText))/2, h-2)); err != nil {
		return nil, fmt.Errorf("place paddle: %w", err)
	}

	g.ball = engine.NewKinematic(1, -1, engine.WithText(ballText))
	if err := g.ball.Place(g.scene, g.ballStart()); err != nil {
		return nil, fmt.Errorf("place ball: %w", err)
	}
	log.Printf("breakout: %dx%d viewport, %d tiles", w, h, g.tiles.Len())
	return g, nil
}

func (g *Game) ballStart() vmath.Coord {
	vp := g.scene.Viewport()
	return vmath.Pt(vp.W/2, vp.H-3)
}

// Apply handles one player action; returns false on quit
func (g *Game) Apply(a action) bool {
	switch a {
	case actQuit:
		return false
	case actMute:
		if g.cues != nil {
			log.Printf("breakout: muted=%v", g.cues.ToggleMute())
		}
	case actLeft, actRight:
		if g.phase != phasePlaying {
			break
		}
		dx := padStep
		if a == actLeft {
			dx = -padStep
		}
		g.pad.Move(dx, 0)
		g.pad.BoundOnScreen()
	}
	return true
}

// Tick advances one frame and renders it. Returns false once the round is over
func (g *Game) Tick() bool {
	if g.phase != phasePlaying {
		return false
	}
	g.ticks++
	if g.policy != config.ViewportNone {
		g.scene.SampleViewport(g.vp)
	}

	g.scene.Update()
	g.stepBall()

	if g.policy == config.ViewportAlways {
		g.scene.SampleViewport(g.vp)
	}
	g.scene.Render()

	switch {
	case g.tiles.Len() == 0:
		g.finish(phaseWon)
	case g.lives == 0:
		g.finish(phaseLost)
	}
	return g.phase == phasePlaying
}

func (g *Game) stepBall() {
	hits, err := g.ball.Bounce(g.tiles, g.pad, engine.Screen)
	if err != nil {
		log.Printf("breakout: bounce: %v", err)
		return
	}

	scored, lost := false, false
	for _, hit := range hits {
		switch c := hit.(type) {
		case *engine.Sprite:
			if g.tiles.Has(c) {
				c.Kill()
				g.score++
				scored = true
				g.play(audio.CueBreak)
			} else if c == g.pad {
				g.play(audio.CuePaddle)
			}
		case engine.Edge:
			if c == engine.EdgeBottom {
				lost = true
			} else {
				g.play(audio.CueBounce)
			}
		}
	}

	if lost {
		g.lives--
		g.play(audio.CueLose)
		if g.lives > 0 {
			g.ball.Goto(g.ballStart())
			g.ball.VX, g.ball.VY = 1, -1
		}
	}
	if scored || lost {
		g.status.UpdateSurface()
	}
}

// finish clears the playfield and shows the result on a fresh scene
func (g *Game) finish(p phase) {
	g.phase = p
	g.scene.RenderAll(true)

	text, style, cue := bannerWin, tcell.StyleDefault.Foreground(tcell.ColorGreen), audio.CueWin
	if p == phaseLost {
		text, style, cue = bannerLose, tcell.StyleDefault.Foreground(tcell.ColorRed), audio.CueLose
	}
	g.play(cue)

	vp := g.scene.Viewport()
	end := engine.NewScene(g.out, vp.W, vp.H)
	banner := surface.Strip(text)
	engine.NewSprite(engine.WithSurface(banner), engine.WithStyle(style.Bold(true))).
		MustPlace(end, vmath.Pt((vp.W-banner.Width())/2, (vp.H-banner.Height())/2))
	end.Render()

	log.Printf("breakout: round over after %d ticks, score %d", g.ticks, g.score)
	g.scene = end
}

func (g *Game) play(c audio.Cue) {
	if g.cues != nil {
		g.cues.Play(c)
	}
}

// Result reports the final state for the exit message
func (g *Game) Result() (won bool, score int) {
	return g.phase == phaseWon, g.score
}
