package player

import (
	"time"

	"github.com/osa030/showreel/internal/app/timer"
)

// Timed stands in for a player when none is available: every clip
// "plays" silently for a fixed length and then ends.
// It must only be used from the goroutine that owns the registry.
type Timed struct {
	timers *timer.Registry
	length time.Duration

	src     string
	loop    bool
	muted   bool
	volume  float64
	playing bool
	pos     time.Duration
	started time.Duration
	end     timer.Handle

	onEnded func(src string)
}

// NewTimed creates a placeholder whose clips last length.
func NewTimed(timers *timer.Registry, length time.Duration) *Timed {
	return &Timed{
		timers: timers,
		length: length,
		volume: 1,
	}
}

// OnEnded sets the callback for a clip that reached its end.
func (t *Timed) OnEnded(fn func(src string)) { t.onEnded = fn }

func (t *Timed) Play() error {
	if t.src == "" {
		return ErrNoSource
	}
	if t.playing {
		return nil
	}
	if t.pos >= t.length {
		t.pos = 0
	}
	t.playing = true
	t.started = t.timers.Now()
	t.end = t.timers.Schedule(t.length-t.pos, t.finish)
	return nil
}

func (t *Timed) finish() {
	t.end = 0
	if t.loop {
		t.playing = false
		t.pos = 0
		_ = t.Play()
		return
	}
	t.pos = t.length
	t.playing = false
	if t.onEnded != nil {
		t.onEnded(t.src)
	}
}

func (t *Timed) Pause() {
	if !t.playing {
		return
	}
	t.pos = t.CurrentTime()
	t.playing = false
	t.timers.Cancel(t.end)
	t.end = 0
}

func (t *Timed) Paused() bool { return !t.playing }

func (t *Timed) Volume() float64     { return t.volume }
func (t *Timed) SetVolume(v float64) { t.volume = max(0, min(1, v)) }
func (t *Timed) Muted() bool         { return t.muted }
func (t *Timed) SetMuted(m bool)     { t.muted = m }

func (t *Timed) CurrentTime() time.Duration {
	if !t.playing {
		return t.pos
	}
	return min(t.pos+t.timers.Now()-t.started, t.length)
}

func (t *Timed) SetCurrentTime(d time.Duration) {
	playing := t.playing
	t.Pause()
	t.pos = max(0, min(d, t.length))
	if playing {
		_ = t.Play()
	}
}

func (t *Timed) Source() string { return t.src }

func (t *Timed) SetSource(src string) {
	t.Pause()
	t.src = src
	t.pos = 0
}

func (t *Timed) SetLoop(loop bool) { t.loop = loop }
