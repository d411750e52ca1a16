package sequencer

import (
	"time"

	"github.com/osa030/showreel/internal/app/framing"
)

// Config holds scene timings.
type Config struct {
	SplashDelay time.Duration // Splash visible before it starts fading
	SplashFade  time.Duration // Splash fade before the tap prompt appears
	PromptHide  time.Duration // Tap prompt fade after the start trigger

	PhotoDwell    time.Duration // Time each photo is shown
	PhotoGap      time.Duration // Cross-fade gap between photos
	PhotoReveal   time.Duration // Delay between a photo loading and fading in
	PhotoSkip     time.Duration // Delay before skipping a photo that failed to load
	SlideshowHide time.Duration // Slideshow fade after the last photo

	PopupDelay     time.Duration // Time between the music fade-out and the popup
	PopupDwell     time.Duration
	PopupHide      time.Duration
	FinalWishDwell time.Duration
	FinalWishHide  time.Duration

	MusicFadeIn  time.Duration
	MusicFadeOut time.Duration
	FadeSteps    int

	// PlaybackStallSkip skips a video whose muted retry was also rejected after
	// this long. Zero keeps the stall.
	PlaybackStallSkip time.Duration

	EndingIntensity      float64
	EndingLaunchInterval time.Duration

	DefaultAspect framing.Size // Frame aspect before the first photo loads
	Layout        framing.Layout

	EventBuffer int
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		SplashDelay:          8000 * time.Millisecond,
		SplashFade:           2000 * time.Millisecond,
		PromptHide:           800 * time.Millisecond,
		PhotoDwell:           3000 * time.Millisecond,
		PhotoGap:             700 * time.Millisecond,
		PhotoReveal:          80 * time.Millisecond,
		PhotoSkip:            300 * time.Millisecond,
		SlideshowHide:        600 * time.Millisecond,
		PopupDelay:           700 * time.Millisecond,
		PopupDwell:           10000 * time.Millisecond,
		PopupHide:            1400 * time.Millisecond,
		FinalWishDwell:       5000 * time.Millisecond,
		FinalWishHide:        2500 * time.Millisecond,
		MusicFadeIn:          2500 * time.Millisecond,
		MusicFadeOut:         2000 * time.Millisecond,
		FadeSteps:            40,
		EndingIntensity:      3,
		EndingLaunchInterval: 220 * time.Millisecond,
		DefaultAspect:        framing.Size{Width: 9, Height: 16},
		Layout:               framing.DefaultLayout,
		EventBuffer:          64,
	}
}
