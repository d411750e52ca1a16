// Package show runs the sequencer on a single goroutine against the wall clock.
package show

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/render"
	"github.com/osa030/showreel/internal/app/sequencer"
	"github.com/osa030/showreel/internal/app/timer"
)

// ErrStopped is returned when work is posted to a runner that has exited.
var ErrStopped = errors.New("runner stopped")

// Sequencer is the part of the scene sequencer the runner drives.
type Sequencer interface {
	Load()
	Begin() error
	Restart() error
	State() sequencer.State
}

// Config holds runner settings.
type Config struct {
	FPS         int // Render frames per second
	PostBacklog int // Pending posts before Post blocks
}

// Runner owns the timer registry, render loop and sequencer. Everything that
// touches them runs on the goroutine executing Run; other goroutines hand work
// over with Post.
type Runner struct {
	seq    Sequencer
	timers *timer.Registry
	frames *render.Loop

	interval time.Duration
	posts    chan func()
	now      func() time.Time
	last     time.Time

	done chan struct{}
}

// NewRunner creates a new runner.
func NewRunner(cfg Config, seq Sequencer, timers *timer.Registry, frames *render.Loop) *Runner {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.PostBacklog <= 0 {
		cfg.PostBacklog = 64
	}
	return &Runner{
		seq:      seq,
		timers:   timers,
		frames:   frames,
		interval: time.Second / time.Duration(cfg.FPS),
		posts:    make(chan func(), cfg.PostBacklog),
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Post queues fn to run on the runner goroutine. It fails once the runner has exited.
func (r *Runner) Post(fn func()) error {
	select {
	case <-r.done:
		return ErrStopped
	default:
	}
	select {
	case r.posts <- fn:
		return nil
	case <-r.done:
		return ErrStopped
	}
}

// Begin posts the start trigger.
func (r *Runner) Begin() error {
	return r.Post(func() {
		if err := r.seq.Begin(); err != nil {
			zlog.Debug().Msgf("show: start trigger ignored: %v", err)
		}
	})
}

// Restart posts a restart.
func (r *Runner) Restart() error {
	return r.Post(func() {
		if err := r.seq.Restart(); err != nil {
			zlog.Debug().Msgf("show: restart ignored: state=%s error=%v", r.seq.State(), err)
		}
	})
}

// Done is closed once Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run loads the sequencer and drives it until ctx is done. Every frame the
// timer registry advances by the time elapsed since the previous frame,
// then the render loop ticks.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.seq.Load()
	r.last = r.now()
	zlog.Info().Msgf("show: runner started: frame_interval=%v", r.interval)

	for {
		select {
		case <-ctx.Done():
			zlog.Info().Msgf("show: runner stopped: state=%s virtual_time=%v", r.seq.State(), r.timers.Now())
			return nil
		case fn := <-r.posts:
			fn()
		case <-ticker.C:
			r.step(r.now())
		}
	}
}

// step advances by the monotonic time since the previous frame. Wall clock
// steps do not reach the registry.
func (r *Runner) step(t time.Time) {
	dt := t.Sub(r.last)
	if dt < 0 {
		dt = 0
	}
	r.last = t
	r.timers.Advance(dt)
	r.frames.Tick(dt)
}
