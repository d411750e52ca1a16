package audio

import (
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	zlog "github.com/rs/zerolog/log"
)

var (
	// ErrNoSource is returned by Play when no source is set.
	ErrNoSource = errors.New("no music source")
	// ErrNoOutput is returned by Play when the channel has no speaker.
	ErrNoOutput = errors.New("audio output unavailable")
)

// Sink is where a music channel sends its stream.
type Sink interface {
	Play(s beep.Streamer) error
	SampleRate() beep.SampleRate
	Locked(fn func())
}

// Opener decodes a source into a seekable stream.
type Opener func(path string) (beep.StreamSeekCloser, beep.Format, error)

// OpenWAV decodes a WAV file.
func OpenWAV(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "failed to decode %s", path)
	}
	return s, format, nil
}

// MusicChannel is a looping background track with volume and position control.
type MusicChannel struct {
	mu   sync.Mutex
	sink Sink
	open Opener

	src    string
	loop   bool
	volume float64
	muted  bool

	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	vol    *effects.Volume
	ended  *atomic.Bool
}

// NewMusicChannel creates a channel on sink. A nil sink makes Play fail with ErrNoOutput.
func NewMusicChannel(sink Sink, open Opener) *MusicChannel {
	if open == nil {
		open = OpenWAV
	}
	return &MusicChannel{
		sink:   sink,
		open:   open,
		volume: 1,
	}
}

// Play starts or resumes the track.
func (c *MusicChannel) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.src == "" {
		return ErrNoSource
	}
	if c.sink == nil {
		return ErrNoOutput
	}
	if c.stream == nil {
		s, format, err := c.open(c.src)
		if err != nil {
			return errors.Wrap(err, "failed to open music")
		}
		c.stream, c.format = s, format
		zlog.Debug().Msgf("audio: music opened: source=%s rate=%d", c.src, format.SampleRate)
	}
	if c.ctrl != nil && !c.ended.Load() {
		c.sink.Locked(func() {
			c.ctrl.Paused = false
			c.applyVolumeLocked()
		})
		return nil
	}

	c.sink.Locked(func() {
		if c.stream.Position() >= c.stream.Len() {
			_ = c.stream.Seek(0)
		}
	})
	return c.attachLocked(false)
}

// attachLocked builds a fresh streamer chain and hands it to the sink.
func (c *MusicChannel) attachLocked(paused bool) error {
	ended := &atomic.Bool{}
	var s beep.Streamer = c.stream
	if c.loop {
		s = beep.Loop(-1, c.stream)
	}
	if rate := c.sink.SampleRate(); c.format.SampleRate != rate {
		s = beep.Resample(4, c.format.SampleRate, rate, s)
	}
	s = beep.Seq(s, beep.Callback(func() { ended.Store(true) }))

	ctrl := &beep.Ctrl{Streamer: s, Paused: paused}
	vol := &effects.Volume{Streamer: ctrl, Base: 2}
	c.ctrl, c.vol, c.ended = ctrl, vol, ended
	c.sink.Locked(c.applyVolumeLocked)
	return c.sink.Play(vol)
}

// detachLocked stops the current chain. The mixer drops a streamer-less Ctrl.
func (c *MusicChannel) detachLocked() {
	if c.ctrl == nil {
		return
	}
	ctrl := c.ctrl
	c.sink.Locked(func() { ctrl.Streamer = nil })
	c.ctrl, c.vol, c.ended = nil, nil, nil
}

func (c *MusicChannel) applyVolumeLocked() {
	if c.vol == nil {
		return
	}
	c.vol.Silent = c.muted || c.volume <= 0
	if c.volume > 0 {
		c.vol.Volume = math.Log2(c.volume)
	}
}

// Pause pauses playback, keeping the position.
func (c *MusicChannel) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctrl == nil {
		return
	}
	c.sink.Locked(func() { c.ctrl.Paused = true })
}

// Paused reports whether the track is not producing sound.
func (c *MusicChannel) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctrl == nil || c.ended.Load() {
		return true
	}
	var paused bool
	c.sink.Locked(func() { paused = c.ctrl.Paused })
	return paused
}

// Volume returns the linear volume in [0, 1].
func (c *MusicChannel) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetVolume sets the linear volume, clamped to [0, 1].
func (c *MusicChannel) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = math.Max(0, math.Min(1, v))
	if c.vol != nil {
		c.sink.Locked(c.applyVolumeLocked)
	}
}

// Muted reports whether the channel is muted.
func (c *MusicChannel) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// SetMuted mutes or unmutes without touching the volume.
func (c *MusicChannel) SetMuted(m bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = m
	if c.vol != nil {
		c.sink.Locked(c.applyVolumeLocked)
	}
}

// CurrentTime returns the position in the track.
func (c *MusicChannel) CurrentTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return 0
	}
	var pos int
	c.sink.Locked(func() { pos = c.stream.Position() })
	return c.format.SampleRate.D(pos)
}

// SetCurrentTime seeks, clamping to the track length.
func (c *MusicChannel) SetCurrentTime(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return
	}
	c.sink.Locked(func() {
		n := min(max(c.format.SampleRate.N(t), 0), c.stream.Len())
		if err := c.stream.Seek(n); err != nil {
			zlog.Warn().Msgf("audio: seek failed: source=%s error=%v", c.src, err)
		}
	})
}

// Source returns the current source path.
func (c *MusicChannel) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.src
}

// SetSource switches the track. The previous stream is stopped and closed.
func (c *MusicChannel) SetSource(src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if src == c.src {
		return
	}
	c.closeLocked()
	c.src = src
}

// SetLoop sets whether the track repeats. A playing track keeps its position.
func (c *MusicChannel) SetLoop(loop bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if loop == c.loop {
		return
	}
	c.loop = loop
	if c.ctrl == nil || c.ended.Load() {
		return
	}
	var paused bool
	c.sink.Locked(func() { paused = c.ctrl.Paused })
	c.detachLocked()
	if err := c.attachLocked(paused); err != nil {
		zlog.Warn().Msgf("audio: reattach failed: source=%s error=%v", c.src, err)
	}
}

// Close stops playback and releases the decoder.
func (c *MusicChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *MusicChannel) closeLocked() error {
	c.detachLocked()
	if c.stream == nil {
		return nil
	}
	err := c.stream.Close()
	c.stream = nil
	return err
}
