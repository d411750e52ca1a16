package media

import (
	"math"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/timer"
)

// DefaultFadeSteps is the number of volume steps in a fade.
const DefaultFadeSteps = 40

// Timers is the part of the timer registry a Fader needs.
type Timers interface {
	ScheduleRepeating(interval time.Duration, fn func()) timer.Handle
	Cancel(h timer.Handle) bool
}

// Fader ramps channel volume up or down. At most one fade runs per channel;
// starting a new one supersedes the previous fade on that channel.
type Fader struct {
	timers Timers
	steps  int
	active map[Channel]timer.Handle
}

// NewFader creates a Fader. steps <= 0 selects DefaultFadeSteps.
func NewFader(timers Timers, steps int) *Fader {
	if steps <= 0 {
		steps = DefaultFadeSteps
	}
	return &Fader{
		timers: timers,
		steps:  steps,
		active: make(map[Channel]timer.Handle),
	}
}

// FadeIn drives ch's volume from 0 to 1 over d.
func (f *Fader) FadeIn(ch Channel, d time.Duration) {
	f.cancel(ch)
	ch.SetVolume(0)

	s := 0
	var h timer.Handle
	h = f.timers.ScheduleRepeating(f.interval(d), func() {
		s++
		ch.SetVolume(math.Min(1, float64(s)/float64(f.steps)))
		if s >= f.steps {
			f.finish(ch, h)
		}
	})
	f.active[ch] = h
}

// FadeOut drives ch's volume from its current value to 0 over d, then pauses and
// rewinds it and runs onComplete. A paused channel completes immediately.
func (f *Fader) FadeOut(ch Channel, d time.Duration, onComplete func()) {
	if ch.Paused() {
		f.cancel(ch)
		if onComplete != nil {
			onComplete()
		}
		return
	}
	f.cancel(ch)

	start := ch.Volume()
	s := 0
	var h timer.Handle
	h = f.timers.ScheduleRepeating(f.interval(d), func() {
		s++
		ch.SetVolume(math.Max(0, start*(1-float64(s)/float64(f.steps))))
		if s >= f.steps {
			f.finish(ch, h)
			Rewind(ch)
			if onComplete != nil {
				onComplete()
			}
		}
	})
	f.active[ch] = h
}

// StopImmediately cancels any fade on ch, pauses it and rewinds it.
func (f *Fader) StopImmediately(ch Channel) {
	f.cancel(ch)
	Rewind(ch)
}

// Active reports whether a fade is running on ch.
func (f *Fader) Active(ch Channel) bool {
	_, ok := f.active[ch]
	return ok
}

// Forget drops fade bookkeeping without touching the timers, for use after the
// registry has already been cleared.
func (f *Fader) Forget() {
	f.active = make(map[Channel]timer.Handle)
}

func (f *Fader) interval(d time.Duration) time.Duration {
	return d / time.Duration(f.steps)
}

func (f *Fader) cancel(ch Channel) {
	if h, ok := f.active[ch]; ok {
		f.timers.Cancel(h)
		delete(f.active, ch)
		zlog.Debug().Msgf("media: superseded fade: source=%s", ch.Source())
	}
}

func (f *Fader) finish(ch Channel, h timer.Handle) {
	f.timers.Cancel(h)
	if cur, ok := f.active[ch]; ok && cur == h {
		delete(f.active, ch)
	}
}
