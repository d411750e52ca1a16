package particle

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/timer"
)

// DefaultPalette is the gold-toned firework palette.
var DefaultPalette = []string{
	"#c9a96e", "#e8d5a3", "#d4b896",
	"#a09070", "#ffffff", "#e0d0b8",
	"#b8a888", "#c8b090",
}

// FireworksConfig holds the simulation constants.
type FireworksConfig struct {
	RadialCount    int           // Radial particles per burst at intensity 1
	SparkCount     int           // White sparks per burst at intensity 1
	Gravity        float64       // Added to vy every tick
	Drag           float64       // vx multiplier every tick
	AlphaDecay     float64       // Subtracted from alpha every tick
	SparkAlpha     float64       // Initial spark alpha
	TrailAlpha     float64       // Alpha of the fill painted before each frame
	LaunchInterval time.Duration // Base time between bursts
	Palette        []color.NRGBA
}

// DefaultFireworksConfig returns the stock simulation constants.
func DefaultFireworksConfig() FireworksConfig {
	palette, _ := ParsePalette(DefaultPalette)
	return FireworksConfig{
		RadialCount:    38,
		SparkCount:     12,
		Gravity:        0.038,
		Drag:           0.985,
		AlphaDecay:     0.016,
		SparkAlpha:     0.7,
		TrailAlpha:     0.18,
		LaunchInterval: 1100 * time.Millisecond,
		Palette:        palette,
	}
}

// Particle is one live firework particle.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  color.NRGBA
	Alpha  float64
	Size   float64
}

// Launcher is the part of the timer registry the launcher needs.
type Launcher interface {
	ScheduleRepeating(interval time.Duration, fn func()) timer.Handle
	Cancel(h timer.Handle) bool
}

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Fireworks simulates bursts of particles. Two independent knobs control density:
// the intensity multiplies the particle count per burst, the launch interval
// sets how often bursts happen.
type Fireworks struct {
	cfg FireworksConfig
	rng *rand.Rand

	particles []Particle
	intensity float64
	width     float64
	height    float64

	timers   Launcher
	launcher timer.Handle
	interval time.Duration
}

// NewFireworks creates an engine with intensity 1 and no particles.
func NewFireworks(cfg FireworksConfig, rng *rand.Rand) *Fireworks {
	if len(cfg.Palette) == 0 {
		cfg.Palette = []color.NRGBA{white}
	}
	return &Fireworks{
		cfg:       cfg,
		rng:       rng,
		intensity: 1,
		interval:  cfg.LaunchInterval,
	}
}

// Resize sets the canvas size bursts are placed in.
func (f *Fireworks) Resize(w, h int) {
	f.width = float64(w)
	f.height = float64(h)
}

// Launch spawns one burst in the central 80% of the width and upper 55% of the height.
func (f *Fireworks) Launch() {
	x := 0.1*f.width + f.rng.Float64()*0.8*f.width
	y := f.rng.Float64() * f.height * 0.55
	c := f.cfg.Palette[f.rng.IntN(len(f.cfg.Palette))]

	count := int(math.Round(float64(f.cfg.RadialCount) * f.intensity))
	for i := 0; i < count; i++ {
		angle := math.Pi * 2 * float64(i) / float64(count)
		speed := 1.8 + f.rng.Float64()*4
		f.particles = append(f.particles, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Color: c,
			Alpha: 1,
			Size:  1 + f.rng.Float64()*2,
		})
	}

	sparks := int(math.Round(float64(f.cfg.SparkCount) * f.intensity))
	for i := 0; i < sparks; i++ {
		a := f.rng.Float64() * math.Pi * 2
		s := 0.4 + f.rng.Float64()*2
		f.particles = append(f.particles, Particle{
			X:     x + (f.rng.Float64()-0.5)*20,
			Y:     y + (f.rng.Float64()-0.5)*20,
			VX:    math.Cos(a) * s,
			VY:    math.Sin(a) * s,
			Color: white,
			Alpha: f.cfg.SparkAlpha,
			Size:  0.6 + f.rng.Float64()*0.9,
		})
	}
}

// Step advances every particle by one tick and drops the ones that faded out.
func (f *Fireworks) Step() {
	live := f.particles[:0]
	for _, p := range f.particles {
		p.X += p.VX
		p.Y += p.VY
		p.VY += f.cfg.Gravity
		p.VX *= f.cfg.Drag
		p.Alpha -= f.cfg.AlphaDecay
		if p.Alpha > 0 {
			live = append(live, p)
		}
	}
	clear(f.particles[len(live):])
	f.particles = live
}

// Draw paints the live particles.
func (f *Fireworks) Draw(s Surface) {
	for _, p := range f.particles {
		s.FillCircle(p.X, p.Y, p.Size, withAlpha(p.Color, p.Alpha))
	}
}

// Frame paints the trail fill, steps the simulation and draws the result.
func (f *Fireworks) Frame(s Surface) {
	w, h := s.Size()
	s.FillRect(0, 0, float64(w), float64(h), color.NRGBA{A: uint8(f.cfg.TrailAlpha*255 + 0.5)})
	f.Step()
	f.Draw(s)
}

// SetIntensity changes the particle count of future bursts.
func (f *Fireworks) SetIntensity(v float64) {
	if v < 0 {
		v = 0
	}
	f.intensity = v
}

// Intensity returns the current burst multiplier.
func (f *Fireworks) Intensity() float64 {
	return f.intensity
}

// StartLauncher launches a burst every launch interval until StopLauncher.
func (f *Fireworks) StartLauncher(timers Launcher) {
	f.StopLauncher()
	f.timers = timers
	f.launcher = timers.ScheduleRepeating(f.interval, f.Launch)
	zlog.Debug().Msgf("fireworks: launcher started: interval=%v intensity=%.1f", f.interval, f.intensity)
}

// StopLauncher cancels the periodic launch.
func (f *Fireworks) StopLauncher() {
	if f.timers != nil && f.launcher != 0 {
		f.timers.Cancel(f.launcher)
	}
	f.launcher = 0
}

// Launching reports whether the periodic launch is armed.
func (f *Fireworks) Launching() bool {
	return f.launcher != 0
}

// SetLaunchInterval changes the time between bursts, re-arming a running launcher.
func (f *Fireworks) SetLaunchInterval(d time.Duration) {
	f.interval = d
	if f.launcher != 0 && f.timers != nil {
		f.StartLauncher(f.timers)
	}
}

// LaunchInterval returns the current time between bursts.
func (f *Fireworks) LaunchInterval() time.Duration {
	return f.interval
}

// BaseLaunchInterval returns the configured default interval.
func (f *Fireworks) BaseLaunchInterval() time.Duration {
	return f.cfg.LaunchInterval
}

// Clear drops every live particle.
func (f *Fireworks) Clear() {
	f.particles = nil
}

// Len returns the number of live particles.
func (f *Fireworks) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the live particles.
func (f *Fireworks) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}
