// Command breakout is a terminal brick breaker driven by the termsprite engine.
//
// The tcell backend reads keys (arrows, h/l, a/d, m to mute, q to quit).
// The ansi backend writes raw escape sequences and pairs well with -autoplay.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termsprite/audio"
	"github.com/lixenwraith/termsprite/config"
	"github.com/lixenwraith/termsprite/engine"
	"github.com/lixenwraith/termsprite/terminal"
)

var (
	configFlag   = flag.String("config", "termsprite.ini", "path to ini config")
	debugFlag    = flag.Bool("debug", false, "write logs to logs/termsprite.log")
	fpsFlag      = flag.Int("fps", 0, "frames per second, overrides config")
	autoplayFlag = flag.Bool("autoplay", false, "paddle follows the ball")
	ticksFlag    = flag.Int("ticks", 0, "stop after n ticks, 0 runs until the round ends")
	writeFlag    = flag.Bool("write-config", false, "write the effective config to -config and exit")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "\nBREAKOUT CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		color.Red("config: %v", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *fpsFlag > 0 {
		cfg.Engine.FPS = *fpsFlag
	}
	if *writeFlag {
		if err := config.Save(*configFlag, cfg); err != nil {
			color.Red("write config: %v", err)
			os.Exit(1)
		}
		color.Green("wrote %s", *configFlag)
		return
	}

	if logFile := setupLogging(cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	var cues *audio.Cues
	if cfg.Audio.Enabled {
		cues = audio.NewCues(cfg.Audio.Volume)
		if err := cues.Init(); err != nil {
			log.Printf("audio init failed: %v (continuing without audio)", err)
		}
		defer cues.Close()
	}

	won, score, err := play(cfg, cues)
	if err != nil {
		color.Red("breakout: %v", err)
		os.Exit(1)
	}
	if won {
		color.Green("You cleared the wall with %d points", score)
	} else {
		color.Yellow("Final score: %d", score)
	}
}

// play opens the configured backend and runs one round
func play(cfg *config.Config, cues *audio.Cues) (bool, int, error) {
	backend := cfg.Render.Color
	if backend == config.BackendAuto {
		backend = config.BackendTcell
		if *autoplayFlag {
			backend = config.BackendANSI
		}
	}

	actions := make(chan action, 64)
	var out engine.Output
	var vp engine.Viewport

	switch backend {
	case config.BackendTcell:
		screen, err := tcell.NewScreen()
		if err != nil {
			return false, 0, err
		}
		if err := screen.Init(); err != nil {
			return false, 0, err
		}
		defer screen.Fini()
		screen.HideCursor()
		s := terminal.NewScreen(screen)
		out, vp = s, s
		go pollTcell(screen, actions)

	default:
		a := terminal.Stdout()
		a.SetPlain(cfg.Render.Plain)
		if err := a.Enter(); err != nil {
			return false, 0, err
		}
		defer a.Exit()
		out, vp = a, a
		if a.IsTerminal() {
			go pollBytes(os.Stdin, actions)
		}
	}

	g, err := NewGame(out, vp, cfg, cues, *autoplayFlag)
	if err != nil {
		return false, 0, err
	}
	run(g, actions, cfg.Engine.FPS, *ticksFlag)
	won, score := g.Result()
	return won, score, nil
}

// run drives the game at fps until it ends, the player quits or maxTicks pass
func run(g *Game, actions <-chan action, fps, maxTicks int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case a, ok := <-actions:
			if !ok {
				actions = nil
				continue
			}
			if !g.Apply(a) {
				return
			}
		case <-ticker.C:
			ticks++
			if !g.Tick() {
				// Leave the banner up briefly
				time.Sleep(1500 * time.Millisecond)
				return
			}
			if maxTicks > 0 && ticks >= maxTicks {
				return
			}
		}
	}
}
