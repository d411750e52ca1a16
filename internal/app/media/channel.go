// Package media provides volume fades and playback fallback for media channels.
package media

import "time"

// Channel is an audio or video element the sequencer drives.
// Play reports a rejected playback attempt (e.g. an autoplay policy) as an error.
type Channel interface {
	Play() error
	Pause()
	Paused() bool

	Volume() float64
	SetVolume(v float64)
	Muted() bool
	SetMuted(m bool)

	CurrentTime() time.Duration
	SetCurrentTime(t time.Duration)

	Source() string
	SetSource(src string)
	SetLoop(loop bool)
}

// Rewind pauses ch and resets its position to the start.
func Rewind(ch Channel) {
	ch.Pause()
	ch.SetCurrentTime(0)
}
