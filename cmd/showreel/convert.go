package main

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/showreel/internal/app/particle"
	"github.com/osa030/showreel/internal/app/sequencer"
	"github.com/osa030/showreel/internal/infra/config"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// sequencerConfig converts the timing section into sequencer settings.
func sequencerConfig(cfg *config.Config) (sequencer.Config, error) {
	t := cfg.Timing
	sc := sequencer.DefaultConfig()

	sc.SplashDelay = ms(t.SplashDelayMs)
	sc.SplashFade = ms(t.SplashFadeMs)
	sc.PromptHide = ms(t.PromptHideMs)
	sc.PhotoDwell = ms(t.PhotoDwellMs)
	sc.PhotoGap = ms(t.PhotoGapMs)
	sc.PhotoReveal = ms(t.PhotoRevealMs)
	sc.PhotoSkip = ms(t.PhotoSkipMs)
	sc.SlideshowHide = ms(t.SlideshowHideMs)
	sc.PopupDelay = ms(t.PopupDelayMs)
	sc.PopupDwell = ms(t.PopupDwellMs)
	sc.PopupHide = ms(t.PopupHideMs)
	sc.FinalWishDwell = ms(t.FinalWishDwellMs)
	sc.FinalWishHide = ms(t.FinalWishHideMs)
	sc.MusicFadeIn = ms(t.MusicFadeInMs)
	sc.MusicFadeOut = ms(t.MusicFadeOutMs)
	sc.FadeSteps = t.FadeSteps
	sc.PlaybackStallSkip = ms(t.PlaybackStallSkipMs)
	sc.EventBuffer = t.EventBuffer

	sc.EndingIntensity = cfg.Fireworks.EndingIntensity
	sc.EndingLaunchInterval = ms(cfg.Fireworks.EndingLaunchIntervalMs)
	sc.Layout = cfg.Frame

	if sc.EndingLaunchInterval > ms(cfg.Fireworks.LaunchIntervalMs) {
		return sequencer.Config{}, errors.New("ending launch interval exceeds the base interval")
	}
	return sc, nil
}

// particleConfigs converts the fireworks and confetti sections.
func particleConfigs(cfg *config.Config) (particle.FireworksConfig, particle.ConfettiConfig, error) {
	fw := particle.DefaultFireworksConfig()
	fw.LaunchInterval = ms(cfg.Fireworks.LaunchIntervalMs)
	if len(cfg.Fireworks.Palette) > 0 {
		palette, err := particle.ParsePalette(cfg.Fireworks.Palette)
		if err != nil {
			return fw, particle.ConfettiConfig{}, errors.Wrap(err, "invalid fireworks palette")
		}
		fw.Palette = palette
	}

	cc := particle.DefaultConfettiConfig()
	cc.SpawnInterval = ms(cfg.Confetti.SpawnIntervalMs)
	cc.RemovalSlack = ms(cfg.Confetti.RemovalSlackMs)
	if len(cfg.Confetti.Tones) > 0 {
		tones, err := particle.ParsePalette(cfg.Confetti.Tones)
		if err != nil {
			return fw, cc, errors.Wrap(err, "invalid confetti tones")
		}
		cc.Tones = tones
	}
	return fw, cc, nil
}
