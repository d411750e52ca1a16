package particle

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/osa030/showreel/internal/app/timer"
)

// DefaultConfettiTones are the translucent confetti colors.
var DefaultConfettiTones = []string{
	"#c9a96e88", "#e8d5a366", "#b8a09066",
	"#d4c4a855", "#a09878aa", "#ffffff44",
}

// Side is the confetti column a piece falls in.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns the string representation of the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// ConfettiConfig holds the spawner settings.
type ConfettiConfig struct {
	SpawnInterval time.Duration // Time between spawns (one piece per side)
	RemovalSlack  time.Duration // Extra time a piece lives after its animation
	Tones         []color.NRGBA
}

// DefaultConfettiConfig returns the stock spawner settings.
func DefaultConfettiConfig() ConfettiConfig {
	tones, _ := ParsePalette(DefaultConfettiTones)
	return ConfettiConfig{
		SpawnInterval: 220 * time.Millisecond,
		RemovalSlack:  200 * time.Millisecond,
		Tones:         tones,
	}
}

// Piece is one decorative confetti element. It has no physics state; the
// presentation layer animates it over Duration after Delay.
type Piece struct {
	ID       uint64
	Side     Side
	Width    float64
	Height   float64
	Left     float64 // Horizontal offset in percent of the column
	Duration time.Duration
	Delay    time.Duration
	Color    color.NRGBA
	Round    bool
}

// Lifetime is how long the piece stays alive after spawning.
func (p Piece) Lifetime(slack time.Duration) time.Duration {
	return p.Duration + p.Delay + slack
}

// Timers is the part of the timer registry the spawner needs.
type Timers interface {
	Schedule(delay time.Duration, fn func()) timer.Handle
	ScheduleRepeating(interval time.Duration, fn func()) timer.Handle
	Cancel(h timer.Handle) bool
}

// Confetti periodically spawns short-lived pieces and removes them when their
// animation is over.
type Confetti struct {
	cfg ConfettiConfig
	rng *rand.Rand

	timers  Timers
	spawner timer.Handle
	nextID  uint64
	live    map[uint64]Piece
	removal map[uint64]timer.Handle

	onSpawn  func(Piece)
	onRemove func(Piece)
}

// NewConfetti creates an idle spawner.
func NewConfetti(cfg ConfettiConfig, rng *rand.Rand) *Confetti {
	if len(cfg.Tones) == 0 {
		cfg.Tones = []color.NRGBA{white}
	}
	return &Confetti{
		cfg:     cfg,
		rng:     rng,
		live:    make(map[uint64]Piece),
		removal: make(map[uint64]timer.Handle),
	}
}

// OnSpawn registers the hook called for every new piece.
func (c *Confetti) OnSpawn(fn func(Piece)) { c.onSpawn = fn }

// OnRemove registers the hook called when a piece is removed.
func (c *Confetti) OnRemove(fn func(Piece)) { c.onRemove = fn }

// Start spawns one piece per side every spawn interval.
func (c *Confetti) Start(timers Timers) {
	c.Stop()
	c.timers = timers
	c.spawner = timers.ScheduleRepeating(c.cfg.SpawnInterval, func() {
		c.Spawn(SideLeft)
		c.Spawn(SideRight)
	})
}

// Stop cancels the periodic spawn. Live pieces still expire on schedule.
func (c *Confetti) Stop() {
	if c.timers != nil && c.spawner != 0 {
		c.timers.Cancel(c.spawner)
	}
	c.spawner = 0
}

// Running reports whether the spawner is armed.
func (c *Confetti) Running() bool {
	return c.spawner != 0
}

// Spawn creates one piece on side and schedules its removal.
func (c *Confetti) Spawn(side Side) Piece {
	size := 4 + c.rng.Float64()*6
	dur := time.Duration((3 + c.rng.Float64()*3) * float64(time.Second))
	delay := time.Duration(c.rng.Float64() * 0.6 * float64(time.Second))

	width := size
	if c.rng.Float64() > 0.45 {
		width = size * 0.45
	}

	c.nextID++
	p := Piece{
		ID:       c.nextID,
		Side:     side,
		Width:    width,
		Height:   size,
		Left:     c.rng.Float64() * 100,
		Duration: dur,
		Delay:    delay,
		Color:    c.cfg.Tones[c.rng.IntN(len(c.cfg.Tones))],
		Round:    c.rng.Float64() > 0.5,
	}
	c.live[p.ID] = p

	if c.timers != nil {
		id := p.ID
		c.removal[id] = c.timers.Schedule(p.Lifetime(c.cfg.RemovalSlack), func() {
			delete(c.removal, id)
			c.remove(id)
		})
	}
	if c.onSpawn != nil {
		c.onSpawn(p)
	}
	return p
}

func (c *Confetti) remove(id uint64) {
	p, ok := c.live[id]
	if !ok {
		return
	}
	delete(c.live, id)
	if c.onRemove != nil {
		c.onRemove(p)
	}
}

// Clear removes every live piece and cancels their removal timers.
func (c *Confetti) Clear() {
	for id, h := range c.removal {
		if c.timers != nil {
			c.timers.Cancel(h)
		}
		delete(c.removal, id)
	}
	for id := range c.live {
		c.remove(id)
	}
}

// Live returns the number of pieces currently on screen.
func (c *Confetti) Live() int {
	return len(c.live)
}
