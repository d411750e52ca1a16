package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/showreel/internal/app/sequencer"
	"github.com/osa030/showreel/internal/infra/config"
)

func TestSequencerConfig_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	sc, err := sequencerConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, sequencer.DefaultConfig(), sc)
}

func TestSequencerConfig_Overrides(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Timing.PhotoDwellMs = 1500
	cfg.Timing.PlaybackStallSkipMs = 8000
	cfg.Fireworks.EndingIntensity = 2

	sc, err := sequencerConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, sc.PhotoDwell)
	assert.Equal(t, 8*time.Second, sc.PlaybackStallSkip)
	assert.Equal(t, 2.0, sc.EndingIntensity)

	cfg.Fireworks.EndingLaunchIntervalMs = 5000
	_, err = sequencerConfig(cfg)
	assert.Error(t, err)
}

func TestParticleConfigs(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Fireworks.Palette = []string{"#ff0000"}
	cfg.Confetti.SpawnIntervalMs = 500

	fw, cc, err := particleConfigs(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1100*time.Millisecond, fw.LaunchInterval)
	assert.Equal(t, []color.NRGBA{{R: 0xff, A: 0xff}}, fw.Palette)
	assert.Equal(t, 500*time.Millisecond, cc.SpawnInterval)
	assert.NotEmpty(t, cc.Tones)

	cfg.Confetti.Tones = []string{"#zz0000"}
	_, _, err = particleConfigs(cfg)
	assert.Error(t, err)
}

func TestParticleConfigs_ShortHexFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showreel.yaml")
	body := "fireworks:\n  palette: [\"#f00\", \"#0f08\"]\nconfetti:\n  tones: [\"#fff\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	fw, cc, err := particleConfigs(cfg)
	require.NoError(t, err)
	assert.Equal(t, []color.NRGBA{{R: 0xff, A: 0xff}, {G: 0xff, A: 0x88}}, fw.Palette)
	assert.Equal(t, []color.NRGBA{{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}, cc.Tones)
}
