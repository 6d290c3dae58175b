package main

import (
	"io"

	"github.com/gdamore/tcell/v2"
)

// keyAction decodes a tcell key event
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit
	case tcell.KeyLeft:
		return actLeft
	case tcell.KeyRight:
		return actRight
	case tcell.KeyRune:
		return runeAction(ev.Rune())
	}
	return actNone
}

func runeAction(r rune) action {
	switch r {
	case 'q':
		return actQuit
	case 'h', 'a':
		return actLeft
	case 'l', 'd':
		return actRight
	case 'm':
		return actMute
	}
	return actNone
}

// pollTcell forwards screen events as actions until the screen is finalized
func pollTcell(screen tcell.Screen, actions chan<- action) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(actions)
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if a := keyAction(ev); a != actNone {
				actions <- a
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

// pollBytes decodes raw-mode stdin: single keys, Ctrl-C and arrow sequences
func pollBytes(r io.Reader, actions chan<- action) {
	defer close(actions)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		for _, a := range decodeBytes(buf[:n]) {
			actions <- a
		}
	}
}

func decodeBytes(b []byte) []action {
	var out []action
	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == 0x03:
			out = append(out, actQuit)
		case b[i] == 0x1b && i+2 < len(b) && b[i+1] == '[':
			switch b[i+2] {
			case 'D':
				out = append(out, actLeft)
			case 'C':
				out = append(out, actRight)
			}
			i += 2
		case b[i] == 0x1b:
			out = append(out, actQuit)
		default:
			if a := runeAction(rune(b[i])); a != actNone {
				out = append(out, a)
			}
		}
	}
	return out
}
