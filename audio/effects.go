package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample returns the wave level at phase in [0, 1)
func (w WaveType) sample(phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// NewOscillator creates a mono wave of freq that ends by itself after d
func NewOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	left := rate.N(d)
	step := freq / float64(rate)
	phase := 0.0
	rng := rand.New(rand.NewSource(int64(freq*1000) + 1))

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		n := min(len(samples), left)
		for i := range samples[:n] {
			v := wave.sample(phase, rng)
			samples[i] = [2]float64{v, v}
			_, phase = math.Modf(phase + step)
		}
		left -= n
		return n, true
	})
}

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := e.gain(releaseStart)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

// gain returns the envelope level at the current position
func (e *envelope) gain(releaseStart int) float64 {
	vol := 1.0
	if e.position < e.attackSamples {
		vol = float64(e.position) / float64(e.attackSamples)
	}
	if e.releaseSamples > 0 && e.position >= releaseStart {
		vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
	}
	return max(vol, 0)
}

func (e *envelope) Err() error { return e.streamer.Err() }

// atLevel scales s by a linear level in [0, 1]
func atLevel(s beep.Streamer, level float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: max(level, 0) - 1}
}
