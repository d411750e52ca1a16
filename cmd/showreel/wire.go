package main

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/assets"
	"github.com/osa030/showreel/internal/app/chime"
	"github.com/osa030/showreel/internal/app/media"
	"github.com/osa030/showreel/internal/app/notification"
	"github.com/osa030/showreel/internal/app/particle"
	"github.com/osa030/showreel/internal/app/render"
	"github.com/osa030/showreel/internal/app/sequencer"
	"github.com/osa030/showreel/internal/app/show"
	"github.com/osa030/showreel/internal/app/timer"
	"github.com/osa030/showreel/internal/infra/audio"
	"github.com/osa030/showreel/internal/infra/config"
	"github.com/osa030/showreel/internal/infra/imageprobe"
	"github.com/osa030/showreel/internal/infra/player"
	"github.com/osa030/showreel/internal/infra/terminal"
)

// postFunc adapts a function to the Poster interfaces.
type postFunc func(fn func()) error

func (f postFunc) Post(fn func()) error { return f(fn) }

// showApp holds everything a running show owns.
type showApp struct {
	screen tcell.Screen
	seq    *sequencer.Sequencer
	runner *show.Runner
	input  *terminal.Input
	hub    *notification.Hub

	out   *audio.Output
	music *audio.MusicChannel
	video interface{ Close() error }
}

// buildShow resolves the playlists and wires every component.
func buildShow(ctx context.Context, cfg *config.Config) (_ *showApp, err error) {
	catalog, err := assets.NewCatalogFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	buildCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	playlists, err := catalog.Build(buildCtx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve playlists")
	}

	seqCfg, err := sequencerConfig(cfg)
	if err != nil {
		return nil, err
	}
	fwCfg, confettiCfg, err := particleConfigs(cfg)
	if err != nil {
		return nil, err
	}

	a := &showApp{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()
	timers := timer.New()
	frames := render.NewLoop()

	// The runner is created last; posts only happen once it runs.
	poster := postFunc(func(fn func()) error { return a.runner.Post(fn) })

	// Audio
	var sink audio.Sink
	var chimeOut chime.Output
	if !cfg.Audio.Disabled {
		out, err := audio.Open(audio.Config{
			SampleRate: cfg.Audio.SampleRate,
			Buffer:     time.Duration(cfg.Audio.BufferMs) * time.Millisecond,
		})
		if err != nil {
			zlog.Warn().Msgf("Audio unavailable, continuing silently: %v", err)
		} else {
			a.out, sink, chimeOut = out, out, out
		}
	}
	a.music = audio.NewMusicChannel(sink, nil)
	a.music.SetSource(catalog.Music().Location())

	// Video
	var video media.Channel
	if cfg.Player.Disabled {
		timed := player.NewTimed(timers, time.Duration(cfg.Player.ClipLengthMs)*time.Millisecond)
		timed.OnEnded(func(src string) { a.seq.HandleVideoEnded(src) })
		video = timed
	} else {
		ch := player.NewChannel(player.Config{
			Command:  cfg.Player.Command,
			Args:     cfg.Player.Args,
			MuteArgs: cfg.Player.MuteArgs,
			SeekFlag: cfg.Player.SeekFlag,
		}, poster)
		ch.OnEnded(func(src string) { a.seq.HandleVideoEnded(src) })
		ch.OnError(func(src string, err error) { a.seq.HandleVideoError(src, err) })
		video, a.video = ch, ch
	}

	// Screen
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize screen")
	}
	screen.EnableMouse()
	screen.HideCursor()
	a.screen = screen
	cols, rows := screen.Size()

	// Particles and views
	seed := uint64(time.Now().UnixNano())
	fireworks := particle.NewFireworks(fwCfg, rand.New(rand.NewPCG(seed, seed>>1)))
	confetti := particle.NewConfetti(confettiCfg, rand.New(rand.NewPCG(seed>>2, seed>>3)))

	images := imageprobe.NewCache(imageprobe.DefaultCacheSize)
	views := terminal.NewViews(terminal.ViewsConfig{
		Messages: terminal.Messages{
			Splash:    cfg.Display.Messages.Splash,
			TapPrompt: cfg.Display.Messages.TapPrompt,
			Popup:     cfg.Display.Messages.Popup,
			FinalWish: cfg.Display.Messages.FinalWish,
			Ending:    cfg.Display.Messages.Ending,
		},
		CellPx: cfg.Display.CellPx,
		Cols:   cols,
		Rows:   rows,
		Images: images,
		Clock:  timers.Now,
		VideoStatus: func() string {
			if src := video.Source(); src != "" {
				return filepath.Base(src)
			}
			return ""
		},
	})
	views.Confetti.Attach(confetti)

	// Sequencer
	a.seq = sequencer.New(seqCfg, sequencer.Deps{
		Timers:    timers,
		Frames:    frames,
		Stage:     views.Stage(),
		Music:     a.music,
		Video:     video,
		Loader:    imageprobe.NewLoader(poster, images),
		Chime:     chime.NewPlayer(chimeOut, chime.Intro),
		Fireworks: fireworks,
		Confetti:  confetti,
		Playlists: playlists,
	})

	renderer := terminal.NewRenderer(screen, views, fireworks, cfg.Display.CellPx)
	frames.OnTick(renderer.Draw)

	a.runner = show.NewRunner(show.Config{FPS: cfg.Display.FPS}, a.seq, timers, frames)
	a.input = terminal.NewInput(screen, a.runner, renderer.Resize)

	a.hub = notification.NewHub()
	a.hub.Subscribe(notification.SubscriberFunc(logNotification))

	zlog.Info().Msgf("Show ready: photos=%d videos=%d final=%q music=%s screen=%dx%d",
		len(playlists.Photos), len(playlists.Videos), playlists.Final.Ref, catalog.Music().Ref, cols, rows)
	return a, nil
}

// Run plays until the viewer quits or ctx is done.
func (a *showApp) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.hub.Pump(ctx, a.seq.Events())
	go func() {
		if err := a.runner.Run(ctx); err != nil {
			zlog.Error().Msgf("Runner stopped: %v", err)
		}
	}()

	err := a.input.Run(ctx)
	cancel()
	<-a.runner.Done()
	return err
}

// Close releases the screen and the media devices.
func (a *showApp) Close() {
	if a.seq != nil {
		a.seq.Close()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	if a.screen != nil {
		a.screen.Fini()
	}
	if a.video != nil {
		_ = a.video.Close()
	}
	if a.music != nil {
		_ = a.music.Close()
	}
	if a.out != nil {
		_ = a.out.Close()
	}
	zlog.Info().Msg("Showreel stopped")
}

func logNotification(n notification.Notification) error {
	ev := n.Event
	switch ev.Type {
	case sequencer.EventStateChanged:
		zlog.Info().Msgf("Scene: seq=%d state=%s run_id=%s", n.SequenceNo, ev.State, ev.RunID)
	case sequencer.EventReset:
		zlog.Info().Msgf("Reset: seq=%d timers=%d frames=%d particles=%d confetti=%d",
			n.SequenceNo, ev.Reset.OutstandingTimers, ev.Reset.PendingFrames, ev.Reset.Particles, ev.Reset.Confetti)
	case sequencer.EventPlaybackFailed, sequencer.EventPhotoSkipped, sequencer.EventVideoSkipped:
		zlog.Warn().Msgf("%s: seq=%d ref=%s index=%d error=%v", ev.Type, n.SequenceNo, ev.Asset.Ref, ev.Index, ev.Err)
	default:
		zlog.Debug().Msgf("%s: seq=%d state=%s ref=%s", ev.Type, n.SequenceNo, ev.State, ev.Asset.Ref)
	}
	return nil
}
