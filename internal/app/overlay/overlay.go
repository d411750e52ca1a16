// Package overlay provides the fade-in/fade-out primitive shared by every scene.
package overlay

import (
	"time"

	"github.com/osa030/showreel/internal/app/timer"
)

// Display modes accepted by Overlay.SetDisplay.
const (
	DisplayNone  = ""
	DisplayFlex  = "flex"
	DisplayBlock = "block"
)

// Overlay is a layer with a visibility mode and an animatable opacity.
type Overlay interface {
	SetDisplay(mode string)
	SetOpacity(v float64)
}

// FrameRequester defers work to the next render frame.
type FrameRequester interface {
	RequestFrame(fn func())
}

// Scheduler arms one-shot timers.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) timer.Handle
}

// Transitions shows and hides overlays. It does not track per-overlay history:
// a caller that shows an overlay again must cancel the pending hide itself.
type Transitions struct {
	frames FrameRequester
	timers Scheduler
}

// NewTransitions creates a Transitions bound to a render loop and a timer registry.
func NewTransitions(frames FrameRequester, timers Scheduler) *Transitions {
	return &Transitions{
		frames: frames,
		timers: timers,
	}
}

// Show makes o visible and raises its opacity to 1 two frames later, once the
// visibility change has been committed.
func (t *Transitions) Show(o Overlay, mode string) {
	if mode == DisplayNone {
		mode = DisplayFlex
	}
	o.SetDisplay(mode)
	o.SetOpacity(0)
	t.frames.RequestFrame(func() {
		t.frames.RequestFrame(func() {
			o.SetOpacity(1)
		})
	})
}

// Hide drops o's opacity to 0 and, after d, hides it and runs onComplete once.
// With d <= 0 the hide completes before Hide returns and the zero handle is returned.
func (t *Transitions) Hide(o Overlay, d time.Duration, onComplete func()) timer.Handle {
	o.SetOpacity(0)
	if d <= 0 {
		o.SetDisplay(DisplayNone)
		if onComplete != nil {
			onComplete()
		}
		return 0
	}
	return t.timers.Schedule(d, func() {
		o.SetDisplay(DisplayNone)
		if onComplete != nil {
			onComplete()
		}
	})
}
