// Package audio plays music and synthesized sounds through the system speaker.
package audio

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	zlog "github.com/rs/zerolog/log"
)

// Config represents speaker settings.
type Config struct {
	SampleRate int
	Buffer     time.Duration
}

// Output mixes every streamer onto a single speaker stream.
type Output struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	lock   func()
	unlock func()
	close  func()
}

// Open initializes the speaker and starts the mixer.
func Open(cfg Config) (*Output, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(cfg.Buffer)); err != nil {
		return nil, errors.Wrap(err, "failed to initialize speaker")
	}

	o := newOutput(rate, speaker.Lock, speaker.Unlock, speaker.Close)
	speaker.Play(o.mixer)
	zlog.Info().Msgf("audio: speaker ready: rate=%d buffer=%s", cfg.SampleRate, cfg.Buffer)
	return o, nil
}

func newOutput(rate beep.SampleRate, lock, unlock, closeFn func()) *Output {
	return &Output{
		rate:   rate,
		mixer:  &beep.Mixer{},
		lock:   lock,
		unlock: unlock,
		close:  closeFn,
	}
}

// Play adds s to the mixer. It returns immediately.
func (o *Output) Play(s beep.Streamer) error {
	o.Locked(func() { o.mixer.Add(s) })
	return nil
}

// SampleRate returns the speaker sample rate.
func (o *Output) SampleRate() beep.SampleRate {
	return o.rate
}

// Locked runs fn while the speaker is not reading streamers.
func (o *Output) Locked(fn func()) {
	o.lock()
	defer o.unlock()
	fn()
}

// Active returns the number of streamers still playing.
func (o *Output) Active() int {
	var n int
	o.Locked(func() { n = o.mixer.Len() })
	return n
}

// Close drops all streamers and releases the device.
func (o *Output) Close() error {
	o.Locked(func() { o.mixer.Clear() })
	if o.close != nil {
		o.close()
	}
	return nil
}
