// Package chime synthesizes the rising intro chime.
package chime

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep"
)

// Sweep describes an exponential frequency sweep with a triangular gain envelope.
type Sweep struct {
	StartFreq float64       // Hz at t=0
	EndFreq   float64       // Hz at t=Duration
	Duration  time.Duration // Total length
	PeakAt    time.Duration // Time the gain reaches Peak
	Peak      float64       // Maximum gain
}

// Intro is the stock chime: 180Hz to 860Hz over 2.2s, peaking at 0.2 after 0.5s.
var Intro = Sweep{
	StartFreq: 180,
	EndFreq:   860,
	Duration:  2200 * time.Millisecond,
	PeakAt:    500 * time.Millisecond,
	Peak:      0.2,
}

// Streamer renders the sweep at rate.
func (s Sweep) Streamer(rate beep.SampleRate) beep.Streamer {
	return &sweepStreamer{
		sweep: s,
		rate:  rate,
		total: rate.N(s.Duration),
		peak:  rate.N(s.PeakAt),
	}
}

type sweepStreamer struct {
	sweep Sweep
	rate  beep.SampleRate
	total int
	peak  int
	pos   int
	phase float64
}

func (g *sweepStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		val := g.gain() * math.Sin(2*math.Pi*g.phase)
		samples[i][0] = val
		samples[i][1] = val

		g.phase += g.freq() / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *sweepStreamer) Err() error { return nil }

// freq follows an exponential ramp between the start and end frequencies.
func (g *sweepStreamer) freq() float64 {
	t := float64(g.pos) / float64(g.total)
	return g.sweep.StartFreq * math.Pow(g.sweep.EndFreq/g.sweep.StartFreq, t)
}

// gain rises linearly to Peak and falls linearly back to 0 at the end.
func (g *sweepStreamer) gain() float64 {
	if g.pos < g.peak {
		if g.peak == 0 {
			return g.sweep.Peak
		}
		return g.sweep.Peak * float64(g.pos) / float64(g.peak)
	}
	tail := g.total - g.peak
	if tail <= 0 {
		return 0
	}
	return g.sweep.Peak * float64(g.total-g.pos) / float64(tail)
}

// Output plays a streamer on an audio device.
type Output interface {
	Play(s beep.Streamer) error
	SampleRate() beep.SampleRate
}

// Player plays a sweep on an output.
type Player struct {
	out   Output
	sweep Sweep
}

// NewPlayer creates a chime player. With a nil output Play returns ErrNoOutput.
func NewPlayer(out Output, sweep Sweep) *Player {
	return &Player{out: out, sweep: sweep}
}

// ErrNoOutput is returned when no audio output is available.
var ErrNoOutput = errors.New("audio output unavailable")

// Play starts the chime.
func (p *Player) Play() error {
	if p.out == nil {
		return ErrNoOutput
	}
	return p.out.Play(p.sweep.Streamer(p.out.SampleRate()))
}
