// Package player drives an external video player process as a media channel.
package player

import (
	"context"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// ErrNoSource is returned by Play when no source is set.
var ErrNoSource = errors.New("no video source")

// Config represents the player command line.
type Config struct {
	Command  string
	Args     []string
	MuteArgs []string // Appended when muted
	SeekFlag string   // Flag taking a start offset in seconds, e.g. "-ss"
}

// Poster hands a function over to the goroutine that owns the sequencer.
type Poster interface {
	Post(fn func()) error
}

// Channel runs one player process per playback.
// Pausing stops the process; playing again restarts it at the saved offset.
type Channel struct {
	mu   sync.Mutex
	cfg  Config
	post Poster
	now  func() time.Time

	src    string
	loop   bool
	muted  bool
	volume float64

	running   bool
	gen       uint64
	stop      context.CancelFunc
	startedAt time.Time
	offset    time.Duration

	onEnded func(src string)
	onError func(src string, err error)
}

// NewChannel creates a channel. Completion callbacks run through post.
func NewChannel(cfg Config, post Poster) *Channel {
	return &Channel{
		cfg:    cfg,
		post:   post,
		now:    time.Now,
		volume: 1,
	}
}

// OnEnded sets the callback for a clip that played to the end.
func (c *Channel) OnEnded(fn func(src string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEnded = fn
}

// OnError sets the callback for a player that exited with an error.
func (c *Channel) OnError(fn func(src string, err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = fn
}

// Play starts the player. A command that cannot start is reported as an error.
func (c *Channel) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.src == "" {
		return ErrNoSource
	}
	if c.running {
		return nil
	}
	return c.startLocked()
}

func (c *Channel) startLocked() error {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, c.cfg.Command, c.argsLocked()...)
	if err := cmd.Start(); err != nil {
		cancel()
		return errors.Wrapf(err, "failed to start %s", c.cfg.Command)
	}

	c.gen++
	c.running = true
	c.stop = cancel
	c.startedAt = c.now()
	zlog.Debug().Msgf("player: started: source=%s pid=%d offset=%s muted=%t", c.src, cmd.Process.Pid, c.offset, c.muted)

	go c.wait(cmd, c.gen, c.src, cancel)
	return nil
}

func (c *Channel) argsLocked() []string {
	args := append([]string(nil), c.cfg.Args...)
	if c.muted {
		args = append(args, c.cfg.MuteArgs...)
	}
	if c.offset > 0 && c.cfg.SeekFlag != "" {
		args = append(args, c.cfg.SeekFlag, strconv.FormatFloat(c.offset.Seconds(), 'f', 3, 64))
	}
	return append(args, c.src)
}

// wait reports the exit of generation gen unless it has been superseded.
func (c *Channel) wait(cmd *exec.Cmd, gen uint64, src string, cancel context.CancelFunc) {
	err := cmd.Wait()
	cancel()

	c.mu.Lock()
	if gen != c.gen || !c.running {
		c.mu.Unlock()
		return
	}
	if err == nil && c.loop {
		c.running = false
		c.offset = 0
		if err = c.startLocked(); err == nil {
			c.mu.Unlock()
			return
		}
	}
	c.running = false
	c.offset = 0
	onEnded, onError := c.onEnded, c.onError
	c.mu.Unlock()

	var fn func()
	switch {
	case err != nil && onError != nil:
		err = errors.Wrapf(err, "player exited: %s", src)
		fn = func() { onError(src, err) }
	case err == nil && onEnded != nil:
		fn = func() { onEnded(src) }
	default:
		return
	}
	if perr := c.post.Post(fn); perr != nil {
		zlog.Debug().Msgf("player: exit dropped: source=%s error=%v", src, perr)
	}
}

// Pause stops the player and keeps the position.
func (c *Channel) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Channel) stopLocked() {
	if !c.running {
		return
	}
	c.offset += c.now().Sub(c.startedAt)
	c.running = false
	c.gen++
	c.stop()
}

// Paused reports whether no player is running.
func (c *Channel) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.running
}

// Volume returns the volume in [0, 1]. It is recorded but not sent to the player.
func (c *Channel) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetVolume records the volume.
func (c *Channel) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = max(0, min(1, v))
}

// Muted reports whether the next start is muted.
func (c *Channel) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// SetMuted sets whether the next start passes the mute arguments.
func (c *Channel) SetMuted(m bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = m
}

// CurrentTime returns the elapsed position.
func (c *Channel) CurrentTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return c.offset
	}
	return c.offset + c.now().Sub(c.startedAt)
}

// SetCurrentTime sets the position. A running player is restarted there.
func (c *Channel) SetCurrentTime(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	running := c.running
	c.stopLocked()
	c.offset = max(t, 0)
	if running {
		if err := c.startLocked(); err != nil {
			zlog.Warn().Msgf("player: restart failed: source=%s error=%v", c.src, err)
		}
	}
}

// Source returns the current source.
func (c *Channel) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.src
}

// SetSource stops any running player and loads src from the start.
func (c *Channel) SetSource(src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.src = src
	c.offset = 0
}

// SetLoop sets whether the clip restarts after a clean exit.
func (c *Channel) SetLoop(loop bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loop = loop
}

// Close stops any running player.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	return nil
}
