package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue names a short collision sound
type Cue int

const (
	CueBounce Cue = iota // ball reflected off a wall or edge
	CuePaddle            // ball reflected off the paddle
	CueBreak             // tile destroyed
	CueLose
	CueWin
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CuePaddle:
		return "paddle"
	case CueBreak:
		return "break"
	case CueLose:
		return "lose"
	case CueWin:
		return "win"
	}
	return "cue?"
}

// Cues plays collision cues through one mixer on the default speaker.
// Every method is safe before Init and after Close; unplayed cues are dropped
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	muted       bool
}

// NewCues creates a cue player at the given linear volume (0..1)
func NewCues(volume float64) *Cues {
	return &Cues{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Init opens the speaker. Failure is not fatal: cues stay silent
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close stops every cue and releases the speaker
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}

// ToggleMute flips muting and returns the new state
func (c *Cues) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = !c.muted
	return c.muted
}

// Play queues cue on the mixer
func (c *Cues) Play(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}
	s := c.Stream(cue)
	if s == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Stream builds the finite streamer for cue, or nil for an unknown cue
func (c *Cues) Stream(cue Cue) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueBounce:
		s = blip(660, 40*time.Millisecond, WaveSquare)
	case CuePaddle:
		s = blip(440, 60*time.Millisecond, WaveSquare)
	case CueBreak:
		s = beep.Seq(
			atLevel(blip(0, 30*time.Millisecond, WaveNoise), 0.3),
			atLevel(blip(880, 80*time.Millisecond, WaveSine), 0.7),
		)
	case CueLose:
		s = beep.Seq(
			tone(330, 150*time.Millisecond),
			tone(220, 250*time.Millisecond),
		)
	case CueWin:
		s = beep.Seq(
			tone(523, 120*time.Millisecond),
			tone(659, 120*time.Millisecond),
			tone(784, 200*time.Millisecond),
		)
	default:
		return nil
	}
	return atLevel(s, c.volume)
}

// blip is an enveloped oscillator burst
func blip(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	osc := NewOscillator(freq, d, wave, sampleRate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, sampleRate)
}

// tone is a sine note from beep's generators, cut to d and enveloped
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		log.Printf("audio: tone %.0fHz: %v", freq, err)
		return beep.Silence(sampleRate.N(d))
	}
	return NewEnvelope(beep.Take(sampleRate.N(d), sine), d, 5*time.Millisecond, d/3, sampleRate)
}
