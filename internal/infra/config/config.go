// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osa030/showreel/internal/app/framing"
)

// Config represents the application configuration.
type Config struct {
	Log       LogConfig               `yaml:"log"`
	Timing    TimingConfig            `yaml:"timing"`
	Fireworks FireworksConfig         `yaml:"fireworks"`
	Confetti  ConfettiConfig          `yaml:"confetti"`
	Frame     framing.Layout          `yaml:"frame"`
	Assets    AssetsConfig            `yaml:"assets"`
	Filters   map[string]FilterConfig `yaml:"filters"`
	Audio     AudioConfig             `yaml:"audio"`
	Player    PlayerConfig            `yaml:"player"`
	Display   DisplayConfig           `yaml:"display"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Output string `yaml:"output" default:"file" validate:"required"` // "stdout", "stderr" or "file"
	File   string `yaml:"file" default:"showreel.log"`
}

// TimingConfig represents scene timings in milliseconds.
type TimingConfig struct {
	SplashDelayMs       int `yaml:"splash_delay_ms" default:"8000" validate:"gte=0"`
	SplashFadeMs        int `yaml:"splash_fade_ms" default:"2000" validate:"gte=0"`
	PromptHideMs        int `yaml:"prompt_hide_ms" default:"800" validate:"gte=0"`
	PhotoDwellMs        int `yaml:"photo_dwell_ms" default:"3000" validate:"gt=0"`
	PhotoGapMs          int `yaml:"photo_gap_ms" default:"700" validate:"gte=0"`
	PhotoRevealMs       int `yaml:"photo_reveal_ms" default:"80" validate:"gte=0"`
	PhotoSkipMs         int `yaml:"photo_skip_ms" default:"300" validate:"gte=0"`
	SlideshowHideMs     int `yaml:"slideshow_hide_ms" default:"600" validate:"gte=0"`
	PopupDelayMs        int `yaml:"popup_delay_ms" default:"700" validate:"gte=0"`
	PopupDwellMs        int `yaml:"popup_dwell_ms" default:"10000" validate:"gte=0"`
	PopupHideMs         int `yaml:"popup_hide_ms" default:"1400" validate:"gte=0"`
	FinalWishDwellMs    int `yaml:"final_wish_dwell_ms" default:"5000" validate:"gte=0"`
	FinalWishHideMs     int `yaml:"final_wish_hide_ms" default:"2500" validate:"gte=0"`
	MusicFadeInMs       int `yaml:"music_fade_in_ms" default:"2500" validate:"gte=0"`
	MusicFadeOutMs      int `yaml:"music_fade_out_ms" default:"2000" validate:"gte=0"`
	FadeSteps           int `yaml:"fade_steps" default:"40" validate:"gte=1,lte=1000"`
	PlaybackStallSkipMs int `yaml:"playback_stall_skip_ms" validate:"gte=0"`
	EventBuffer         int `yaml:"event_buffer" default:"64" validate:"gte=1"`
}

// FireworksConfig represents fireworks configuration.
type FireworksConfig struct {
	LaunchIntervalMs       int      `yaml:"launch_interval_ms" default:"1100" validate:"gt=0"`
	EndingLaunchIntervalMs int      `yaml:"ending_launch_interval_ms" default:"220" validate:"gt=0"`
	EndingIntensity        float64  `yaml:"ending_intensity" default:"3" validate:"gt=0,lte=10"`
	Palette                []string `yaml:"palette" validate:"omitempty,dive,hexcolor"`
}

// ConfettiConfig represents confetti configuration.
type ConfettiConfig struct {
	SpawnIntervalMs int      `yaml:"spawn_interval_ms" default:"220" validate:"gt=0"`
	RemovalSlackMs  int      `yaml:"removal_slack_ms" default:"200" validate:"gte=0"`
	Tones           []string `yaml:"tones" validate:"omitempty,dive,hexcolor"`
}

// AssetsConfig represents media asset configuration.
type AssetsConfig struct {
	Root       string         `yaml:"root" default:"."`
	Music      string         `yaml:"music" default:"music.wav"`
	FinalVideo string         `yaml:"final_video" default:"finalwish.mp4" validate:"required"`
	Photos     PlaylistConfig `yaml:"photos"`
	Videos     PlaylistConfig `yaml:"videos"`
}

// PlaylistConfig represents the providers of one playlist.
type PlaylistConfig struct {
	Providers []ProviderConfig `yaml:"providers" validate:"required,min=1,dive"`
}

// ProviderConfig represents a single asset provider configuration.
type ProviderConfig struct {
	Type        string         `yaml:"type" validate:"required,oneof=sequence directory list"`
	DisplayName string         `yaml:"display_name"`
	Settings    map[string]any `yaml:"settings" validate:"required"`
}

// FilterConfig represents a filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// AudioConfig represents audio output configuration.
type AudioConfig struct {
	Disabled   bool `yaml:"disabled"`
	SampleRate int  `yaml:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	BufferMs   int  `yaml:"buffer_ms" default:"100" validate:"gte=10,lte=1000"`
}

// PlayerConfig represents the external video player configuration.
type PlayerConfig struct {
	Disabled     bool     `yaml:"disabled"`
	Command      string   `yaml:"command" default:"ffplay"`
	Args         []string `yaml:"args"`
	MuteArgs     []string `yaml:"mute_args"`
	SeekFlag     string   `yaml:"seek_flag" default:"-ss"`
	ClipLengthMs int      `yaml:"clip_length_ms" default:"4000" validate:"gt=0"` // Stand-in clip length when disabled
}

// DisplayConfig represents terminal display configuration.
type DisplayConfig struct {
	FPS      int            `yaml:"fps" default:"30" validate:"gte=1,lte=120"`
	CellPx   float64        `yaml:"cell_px" default:"8" validate:"gt=0"` // Pixels per terminal column
	Messages MessagesConfig `yaml:"messages"`
}

// MessagesConfig represents the text of the message cards.
type MessagesConfig struct {
	Splash    string `yaml:"splash" default:"A little something for you"`
	TapPrompt string `yaml:"tap_prompt" default:"Press any key to start"`
	Popup     string `yaml:"popup" default:"And now, a few words from your friends"`
	FinalWish string `yaml:"final_wish" default:"One last wish"`
	Ending    string `yaml:"ending" default:"Press r to watch again"`
}

// Default asset playlists, used when none are configured.
var (
	DefaultPhotoProvider = ProviderConfig{
		Type:        "sequence",
		DisplayName: "photos",
		Settings:    map[string]any{"pattern": "photo%d.jpeg", "start": 1, "count": 20},
	}
	DefaultVideoProvider = ProviderConfig{
		Type:        "sequence",
		DisplayName: "videos",
		Settings:    map[string]any{"pattern": "video%d.mp4", "start": 1, "count": 6},
	}
)

// Load loads configuration from a YAML file. An empty path loads the defaults.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	cfg.applyListDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SHOWREEL_ASSETS_ROOT"); v != "" {
		c.Assets.Root = v
	}
	if v := os.Getenv("SHOWREEL_MUSIC"); v != "" {
		c.Assets.Music = v
	}
	if v := os.Getenv("SHOWREEL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SHOWREEL_LOG_FILE"); v != "" {
		c.Log.Output = "file"
		c.Log.File = v
	}
	if v := os.Getenv("SHOWREEL_PLAYER_COMMAND"); v != "" {
		c.Player.Command = v
	}
	if v := os.Getenv("SHOWREEL_AUDIO_DISABLED"); v != "" {
		c.Audio.Disabled = isTruthy(v)
	}
}

// applyListDefaults fills the lists creasty/defaults cannot express.
func (c *Config) applyListDefaults() {
	if len(c.Assets.Photos.Providers) == 0 {
		c.Assets.Photos.Providers = []ProviderConfig{DefaultPhotoProvider}
	}
	if len(c.Assets.Videos.Providers) == 0 {
		c.Assets.Videos.Providers = []ProviderConfig{DefaultVideoProvider}
	}
	if c.Player.Args == nil {
		c.Player.Args = []string{"-autoexit", "-loglevel", "quiet"}
	}
	if c.Player.MuteArgs == nil {
		c.Player.MuteArgs = []string{"-an"}
	}
	if c.Filters == nil {
		c.Filters = map[string]FilterConfig{
			"extension_filter": {Enabled: true},
			"duplicate_filter": {Enabled: true},
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	if c.Log.Output == "file" && c.Log.File == "" {
		return errors.New("log.file is required when log.output is file")
	}
	if c.Fireworks.EndingLaunchIntervalMs > c.Fireworks.LaunchIntervalMs {
		return errors.Newf("fireworks.ending_launch_interval_ms (%d) must not exceed launch_interval_ms (%d)",
			c.Fireworks.EndingLaunchIntervalMs, c.Fireworks.LaunchIntervalMs)
	}
	return nil
}

// IsFilterEnabled checks if a filter is enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return false
}

// FilterSettings returns the settings for a filter.
func (c *Config) FilterSettings(filterName string) map[string]any {
	if f, ok := c.Filters[filterName]; ok {
		return f.Settings
	}
	return nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
