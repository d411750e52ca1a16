// Package render provides the cooperative render-frame loop.
package render

import "time"

// Loop queues one-shot frame callbacks and drives persistent tick listeners.
// A callback requested while a frame is running is deferred to the next frame.
type Loop struct {
	pending   []func()
	listeners []func(dt time.Duration)
	frame     uint64
}

// NewLoop creates an idle render loop.
func NewLoop() *Loop {
	return &Loop{}
}

// RequestFrame runs fn at the start of the next frame.
func (l *Loop) RequestFrame(fn func()) {
	l.pending = append(l.pending, fn)
}

// OnTick registers a listener that runs on every frame after the queued callbacks.
func (l *Loop) OnTick(fn func(dt time.Duration)) {
	l.listeners = append(l.listeners, fn)
}

// Tick runs one frame.
func (l *Loop) Tick(dt time.Duration) {
	l.frame++

	queued := l.pending
	l.pending = nil
	for _, fn := range queued {
		fn()
	}

	for _, fn := range l.listeners {
		fn(dt)
	}
}

// CancelPending drops queued frame callbacks. Tick listeners are kept.
func (l *Loop) CancelPending() int {
	n := len(l.pending)
	l.pending = nil
	return n
}

// Pending returns the number of queued frame callbacks.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Frame returns the number of frames run so far.
func (l *Loop) Frame() uint64 {
	return l.frame
}
