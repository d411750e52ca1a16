package sequencer

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/framing"
	"github.com/osa030/showreel/internal/app/media"
	"github.com/osa030/showreel/internal/app/overlay"
	"github.com/osa030/showreel/internal/app/particle"
	"github.com/osa030/showreel/internal/app/render"
	"github.com/osa030/showreel/internal/app/timer"
	"github.com/osa030/showreel/internal/domain/asset"
	"github.com/osa030/showreel/internal/domain/playlist"
)

var (
	// ErrAlreadyStarted is returned by Begin after the start trigger was accepted.
	ErrAlreadyStarted = errors.New("sequence already started")
	// ErrNotStarted is returned by Restart before the start trigger.
	ErrNotStarted = errors.New("sequence not started")
)

// Deps holds the collaborators a Sequencer drives.
type Deps struct {
	Timers    *timer.Registry
	Frames    *render.Loop
	Stage     Stage
	Music     media.Channel
	Video     media.Channel
	Loader    PhotoLoader
	Chime     Chime // Optional
	Fireworks *particle.Fireworks
	Confetti  *particle.Confetti
	Playlists Playlists
}

// Sequencer owns the scene state machine. It is not safe for concurrent use:
// every method and every callback it registers must run on one goroutine.
type Sequencer struct {
	cfg Config

	timers      *timer.Registry
	frames      *render.Loop
	transitions *overlay.Transitions
	fader       *media.Fader
	stage       Stage
	music       media.Channel
	video       media.Channel
	loader      PhotoLoader
	chime       Chime
	fireworks   *particle.Fireworks
	confetti    *particle.Confetti
	playlists   Playlists

	state          State
	loaded         bool
	started        bool
	particlesReady bool
	runID          string

	photos     playlist.Cursor
	videos     playlist.Cursor
	photoToken uint64

	// At most one dwell and one transition timer belong to the active scene.
	dwell      timer.Handle
	transition timer.Handle
	splash     timer.Handle

	lastPlayback media.PlaybackResult

	eventCh chan Event
	closed  bool
}

// New creates a Sequencer in StateIdle.
func New(cfg Config, deps Deps) *Sequencer {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultConfig().EventBuffer
	}
	return &Sequencer{
		cfg:         cfg,
		timers:      deps.Timers,
		frames:      deps.Frames,
		transitions: overlay.NewTransitions(deps.Frames, deps.Timers),
		fader:       media.NewFader(deps.Timers, cfg.FadeSteps),
		stage:       deps.Stage,
		music:       deps.Music,
		video:       deps.Video,
		loader:      deps.Loader,
		chime:       deps.Chime,
		fireworks:   deps.Fireworks,
		confetti:    deps.Confetti,
		playlists:   deps.Playlists,
		state:       StateIdle,
		eventCh:     make(chan Event, cfg.EventBuffer),
	}
}

// Events returns the event channel.
func (s *Sequencer) Events() <-chan Event {
	return s.eventCh
}

// Close closes the event channel. Later events are dropped.
func (s *Sequencer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.eventCh)
}

// State returns the active scene.
func (s *Sequencer) State() State {
	return s.state
}

// RunID identifies the current run. It changes on every Begin and Restart.
func (s *Sequencer) RunID() string {
	return s.runID
}

// PhotoIndex returns the slideshow cursor position.
func (s *Sequencer) PhotoIndex() int {
	return s.photos.Index()
}

// VideoIndex returns the video playlist cursor position.
func (s *Sequencer) VideoIndex() int {
	return s.videos.Index()
}

// LastPlayback returns the outcome of the most recent video play attempt.
func (s *Sequencer) LastPlayback() media.PlaybackResult {
	return s.lastPlayback
}

// SceneTimers reports whether the active scene's dwell and transition timers are armed.
func (s *Sequencer) SceneTimers() (dwell, transition bool) {
	return s.timers.IsPending(s.dwell), s.timers.IsPending(s.transition)
}

// Load shows the splash screen and, after the splash delay, fades it out in
// favor of the tap prompt. Only the first call has an effect.
func (s *Sequencer) Load() {
	if s.loaded || s.started {
		return
	}
	s.loaded = true
	s.stage.Intro.SetDisplay(overlay.DisplayFlex)
	s.stage.Intro.SetOpacity(1)
	s.splash = s.timers.Schedule(s.cfg.SplashDelay, func() {
		s.splash = 0
		s.hideInto(&s.splash, s.stage.Intro, s.cfg.SplashFade, func() {
			s.transitions.Show(s.stage.TapPrompt, overlay.DisplayFlex)
		})
	})
}

// Begin accepts the start trigger. Only the first call has an effect.
func (s *Sequencer) Begin() error {
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.runID = uuid.New().String()

	if s.splash != 0 {
		s.timers.Cancel(s.splash)
		s.splash = 0
		s.transitions.Hide(s.stage.Intro, 0, nil)
	}

	s.setState(StateIntro)
	s.hideInto(&s.transition, s.stage.TapPrompt, s.cfg.PromptHide, func() {
		s.transitions.Show(s.stage.Main, overlay.DisplayBlock)
		s.playChime()
		s.startExperience()
	})
	return nil
}

// HandlePhotoLoaded reports that the current photo decoded with the given size.
// It is the entry point used when the loader reports outside Load's callback.
func (s *Sequencer) HandlePhotoLoaded(ref string, size framing.Size) {
	if s.state != StatePhotoSlideshow || !s.timers.IsPending(s.dwell) {
		return
	}
	if a, ok := s.photos.Current(); !ok || a.Ref != ref {
		return
	}
	s.photoLoaded(size)
}

// HandlePhotoFailed reports that the current photo could not be loaded.
func (s *Sequencer) HandlePhotoFailed(ref string, err error) {
	if s.state != StatePhotoSlideshow || !s.timers.IsPending(s.dwell) {
		return
	}
	a, ok := s.photos.Current()
	if !ok || a.Ref != ref {
		return
	}
	s.photoFailed(a, s.photos.Index(), err)
}

// HandleVideoEnded reports that the video channel finished src.
func (s *Sequencer) HandleVideoEnded(src string) {
	switch s.state {
	case StateVideoPlaylist:
		a, ok := s.videos.Current()
		if !ok || a.Location() != src {
			zlog.Debug().Msgf("sequencer: ignored stale video end: source=%s", src)
			return
		}
		s.cancel(&s.dwell)
		s.videos.Advance()
		s.playVideo()
	case StateFinalVideo:
		if s.playlists.Final.Location() != src {
			return
		}
		s.cancel(&s.dwell)
		s.enterEnding()
	}
}

// HandleVideoError reports that the video channel failed on src. The failing
// clip is skipped.
func (s *Sequencer) HandleVideoError(src string, err error) {
	switch s.state {
	case StateVideoPlaylist:
		a, ok := s.videos.Current()
		if !ok || a.Location() != src {
			return
		}
		s.skipVideo(a, s.videos.Index(), err)
	case StateFinalVideo:
		if s.playlists.Final.Location() != src {
			return
		}
		s.skipVideo(s.playlists.Final, -1, err)
	}
}

// Restart tears the run down and starts again at the first photo. The teardown
// completes, and is reported by EventReset, before anything is re-armed.
func (s *Sequencer) Restart() error {
	if !s.started {
		return ErrNotStarted
	}
	from := s.state

	s.fader.StopImmediately(s.music)
	s.video.Pause()
	s.video.SetCurrentTime(0)
	s.video.SetSource("")
	s.stage.Video.SetVisible(false)

	timers := s.timers.CancelAll()
	frames := s.frames.CancelPending()
	s.fader.Forget()
	s.dwell, s.transition, s.splash = 0, 0, 0
	s.fireworks.StopLauncher()
	s.confetti.Stop()

	s.photos.Reset()
	s.videos.Reset()
	s.photoToken++
	s.lastPlayback = media.PlaybackNone
	s.fireworks.SetIntensity(1)
	s.fireworks.SetLaunchInterval(s.fireworks.BaseLaunchInterval())
	s.fireworks.Clear()
	s.confetti.Clear()

	for _, o := range []overlay.Overlay{s.stage.Ending, s.stage.FinalWish, s.stage.Popup, s.stage.TapPrompt, s.stage.Intro} {
		s.transitions.Hide(o, 0, nil)
	}
	s.stage.Main.SetDisplay(overlay.DisplayBlock)
	s.stage.Main.SetOpacity(1)
	s.stage.Slideshow.SetDisplay(overlay.DisplayBlock)
	s.stage.Slideshow.SetOpacity(1)
	s.stage.Photo.SetSource("")
	s.stage.Photo.SetOpacity(0)
	s.stage.Progress.Reset()

	snapshot := &ResetSnapshot{
		OutstandingTimers: s.timers.Pending(),
		PendingFrames:     s.frames.Pending(),
		MusicPaused:       s.music.Paused(),
		MusicPosition:     s.music.CurrentTime(),
		VideoPaused:       s.video.Paused(),
		VideoPosition:     s.video.CurrentTime(),
		Particles:         s.fireworks.Len(),
		Confetti:          s.confetti.Live(),
		Intensity:         s.fireworks.Intensity(),
		LaunchInterval:    s.fireworks.LaunchInterval(),
	}

	s.runID = uuid.New().String()
	zlog.Info().Msgf("sequencer: restarted: from=%s cancelled_timers=%d cancelled_frames=%d run_id=%s",
		from, timers, frames, s.runID)
	s.emit(Event{Type: EventReset, Reset: snapshot})

	s.startExperience()
	return nil
}

func (s *Sequencer) startExperience() {
	if !s.particlesReady {
		vp := s.stage.Frame.Viewport()
		s.fireworks.Resize(int(vp.Width), int(vp.Height))
		s.particlesReady = true
	}
	s.fireworks.StartLauncher(s.timers)
	s.confetti.Start(s.timers)
	s.startMusic()
	s.startSlideshow()
}

func (s *Sequencer) playChime() {
	if s.chime == nil {
		return
	}
	if err := s.chime.Play(); err != nil {
		zlog.Warn().Msgf("sequencer: chime failed: %v", err)
	}
}

func (s *Sequencer) startMusic() {
	s.music.SetLoop(true)
	s.music.SetVolume(0)
	if err := s.music.Play(); err != nil {
		zlog.Warn().Msgf("sequencer: music blocked: source=%s error=%v", s.music.Source(), err)
		return
	}
	s.fader.FadeIn(s.music, s.cfg.MusicFadeIn)
}

func (s *Sequencer) startSlideshow() {
	s.photos.Prime(s.playlists.Photos)
	s.applyFrame(s.cfg.DefaultAspect)
	s.setState(StatePhotoSlideshow)
	s.showPhoto()
}

func (s *Sequencer) showPhoto() {
	a, ok := s.photos.Current()
	if !ok {
		s.finishSlideshow()
		return
	}
	idx := s.photos.Index()
	s.photoToken++
	token := s.photoToken

	s.stage.Photo.SetCounter(idx+1, s.photos.Len())
	s.stage.Photo.SetOpacity(0)
	s.stage.Photo.SetSource(a.Ref)
	s.emit(Event{Type: EventPhotoShown, Asset: a, Index: idx})

	s.armDwell(s.cfg.PhotoDwell, func() {
		// Load results for this photo are stale from here on.
		s.photoToken++
		s.stage.Photo.SetOpacity(0)
		s.stage.Progress.Reset()
		s.armTransition(s.cfg.PhotoGap, s.nextPhoto)
	})

	s.loader.Load(a, func(size framing.Size, err error) {
		if token != s.photoToken || s.state != StatePhotoSlideshow {
			return
		}
		if err != nil {
			s.photoFailed(a, idx, err)
			return
		}
		s.photoLoaded(size)
	})
}

func (s *Sequencer) photoLoaded(size framing.Size) {
	s.applyFrame(size)
	s.stage.Progress.Start(s.cfg.PhotoDwell)
	s.armTransition(s.cfg.PhotoReveal, func() {
		s.transitions.Show(s.stage.Photo, overlay.DisplayBlock)
	})
}

func (s *Sequencer) photoFailed(a asset.Asset, idx int, err error) {
	s.photoToken++
	zlog.Warn().Msgf("sequencer: photo skipped: index=%d ref=%s error=%v", idx, a.Ref, err)
	s.cancel(&s.dwell)
	s.stage.Photo.SetOpacity(0)
	s.stage.Progress.Reset()
	s.emit(Event{Type: EventPhotoSkipped, Asset: a, Index: idx, Err: err})
	s.armTransition(s.cfg.PhotoSkip, s.nextPhoto)
}

func (s *Sequencer) nextPhoto() {
	s.photos.Advance()
	s.showPhoto()
}

func (s *Sequencer) finishSlideshow() {
	zlog.Info().Msgf("sequencer: slideshow finished: photos=%d", s.photos.Len())
	s.stage.Progress.Reset()
	s.fader.FadeOut(s.music, s.cfg.MusicFadeOut, func() {
		s.transitions.Hide(s.stage.Slideshow, s.cfg.SlideshowHide, nil)
		s.armTransition(s.cfg.PopupDelay, s.enterPopup)
	})
}

func (s *Sequencer) enterPopup() {
	s.setState(StatePopup)
	s.transitions.Show(s.stage.Popup, overlay.DisplayFlex)
	s.armDwell(s.cfg.PopupDwell, func() {
		s.hideInto(&s.transition, s.stage.Popup, s.cfg.PopupHide, s.enterVideoPlaylist)
	})
}

func (s *Sequencer) enterVideoPlaylist() {
	s.fader.StopImmediately(s.music)
	s.videos.Prime(s.playlists.Videos)
	s.setState(StateVideoPlaylist)
	s.playVideo()
}

func (s *Sequencer) playVideo() {
	a, ok := s.videos.Current()
	if !ok {
		s.stage.Video.SetVisible(false)
		s.enterFinalWish()
		return
	}
	s.stage.Slideshow.SetDisplay(overlay.DisplayNone)
	s.stage.Video.SetVisible(true)
	s.startVideo(a, s.videos.Index())
}

func (s *Sequencer) startVideo(a asset.Asset, idx int) {
	s.video.SetLoop(false)
	s.video.SetMuted(false)
	s.video.SetVolume(1)
	s.video.SetSource(a.Location())

	result, err := media.PlayWithFallback(s.video)
	s.lastPlayback = result
	if err != nil {
		zlog.Warn().Msgf("sequencer: video blocked: index=%d ref=%s error=%v", idx, a.Ref, err)
		s.emit(Event{Type: EventPlaybackFailed, Asset: a, Index: idx, Playback: result, Err: err})
		if s.cfg.PlaybackStallSkip > 0 {
			s.armDwell(s.cfg.PlaybackStallSkip, func() {
				s.skipVideo(a, idx, errors.Wrap(err, "playback stalled"))
			})
		}
		return
	}
	zlog.Info().Msgf("sequencer: video started: index=%d ref=%s playback=%s", idx, a.Ref, result)
	s.emit(Event{Type: EventVideoStarted, Asset: a, Index: idx, Playback: result})
}

func (s *Sequencer) skipVideo(a asset.Asset, idx int, err error) {
	s.cancel(&s.dwell)
	zlog.Warn().Msgf("sequencer: video skipped: index=%d ref=%s error=%v", idx, a.Ref, err)
	s.emit(Event{Type: EventVideoSkipped, Asset: a, Index: idx, Err: err})

	switch s.state {
	case StateVideoPlaylist:
		s.videos.Advance()
		s.playVideo()
	case StateFinalVideo:
		s.enterEnding()
	}
}

func (s *Sequencer) enterFinalWish() {
	s.setState(StateFinalWish)
	s.transitions.Show(s.stage.FinalWish, overlay.DisplayFlex)
	s.armDwell(s.cfg.FinalWishDwell, func() {
		s.hideInto(&s.transition, s.stage.FinalWish, s.cfg.FinalWishHide, s.enterFinalVideo)
	})
}

func (s *Sequencer) enterFinalVideo() {
	s.setState(StateFinalVideo)
	if s.playlists.Final.Ref == "" {
		s.enterEnding()
		return
	}
	s.stage.Video.SetVisible(true)
	s.startVideo(s.playlists.Final, -1)
}

func (s *Sequencer) enterEnding() {
	s.stage.Video.SetVisible(false)
	s.setState(StateEnding)

	s.fireworks.SetIntensity(s.cfg.EndingIntensity)
	s.fireworks.SetLaunchInterval(s.cfg.EndingLaunchInterval)
	s.emit(Event{
		Type:      EventIntensityChanged,
		Intensity: s.fireworks.Intensity(),
		Interval:  s.fireworks.LaunchInterval(),
	})

	s.transitions.Show(s.stage.Ending, overlay.DisplayFlex)
}

func (s *Sequencer) applyFrame(size framing.Size) {
	box := s.cfg.Layout.Compute(size, s.stage.Frame.Viewport())
	s.stage.Frame.ApplyFrame(box)
}

// armDwell replaces the dwell timer.
func (s *Sequencer) armDwell(d time.Duration, fn func()) {
	s.cancel(&s.dwell)
	s.dwell = s.timers.Schedule(d, func() {
		s.dwell = 0
		fn()
	})
}

// armTransition replaces the transition timer.
func (s *Sequencer) armTransition(d time.Duration, fn func()) {
	s.cancel(&s.transition)
	s.transition = s.timers.Schedule(d, func() {
		s.transition = 0
		fn()
	})
}

// hideInto hides o and tracks the pending hide in slot. next runs once the
// overlay is hidden, possibly before hideInto returns.
func (s *Sequencer) hideInto(slot *timer.Handle, o overlay.Overlay, d time.Duration, next func()) {
	s.cancel(slot)
	done := false
	h := s.transitions.Hide(o, d, func() {
		done = true
		*slot = 0
		if next != nil {
			next()
		}
	})
	if !done {
		*slot = h
	}
}

func (s *Sequencer) cancel(slot *timer.Handle) {
	if *slot != 0 {
		s.timers.Cancel(*slot)
		*slot = 0
	}
}

func (s *Sequencer) setState(state State) {
	from := s.state
	s.state = state
	zlog.Info().Msgf("sequencer: state changed: from=%s to=%s run_id=%s", from, state, s.runID)
	s.emit(Event{Type: EventStateChanged})
}

// emit sends an event without blocking. Events are dropped when the buffer is full.
func (s *Sequencer) emit(ev Event) {
	if s.closed {
		return
	}
	ev.State = s.state
	ev.RunID = s.runID
	select {
	case s.eventCh <- ev:
	default:
		zlog.Warn().Msgf("sequencer: event dropped: type=%s", ev.Type)
	}
}
