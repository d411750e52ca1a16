package terminal

import (
	"math"
	"time"

	"github.com/osa030/showreel/internal/app/particle"
)

// columnShare is the width of each confetti column as a share of the screen.
const columnShare = 0.18

type fallingPiece struct {
	particle.Piece
	at time.Duration
}

// ConfettiLayer animates the pieces the spawner reports.
type ConfettiLayer struct {
	clock  func() time.Duration
	pieces map[uint64]fallingPiece
}

// NewConfettiLayer creates a layer timed by clock.
func NewConfettiLayer(clock func() time.Duration) *ConfettiLayer {
	return &ConfettiLayer{
		clock:  clock,
		pieces: make(map[uint64]fallingPiece),
	}
}

// Attach subscribes the layer to spawner events.
func (l *ConfettiLayer) Attach(c *particle.Confetti) {
	c.OnSpawn(l.Add)
	c.OnRemove(l.Remove)
}

// Add starts animating p.
func (l *ConfettiLayer) Add(p particle.Piece) {
	l.pieces[p.ID] = fallingPiece{Piece: p, at: l.clock()}
}

// Remove stops animating p.
func (l *ConfettiLayer) Remove(p particle.Piece) {
	delete(l.pieces, p.ID)
}

// Len returns the number of pieces being animated.
func (l *ConfettiLayer) Len() int { return len(l.pieces) }

// draw paints every piece in its column. s is in layout pixels.
func (l *ConfettiLayer) draw(s scaledSurface) {
	w, h := s.Size()
	now := l.clock()
	colWidth := float64(w) * columnShare
	for _, p := range l.pieces {
		t := now - p.at - p.Delay
		if t < 0 || p.Duration <= 0 || t > p.Duration {
			continue
		}
		progress := float64(t) / float64(p.Duration)

		x0 := 0.0
		if p.Side == particle.SideRight {
			x0 = float64(w) - colWidth
		}
		x := x0 + p.Left/100*colWidth + math.Sin(progress*math.Pi*4)*p.Width
		y := -p.Height + progress*(float64(h)+p.Height)

		c := p.Color
		if progress > 0.8 {
			c.A = uint8(float64(c.A) * (1 - progress) / 0.2)
		}
		if p.Round {
			s.FillCircle(x, y, p.Width/2, c)
		} else {
			s.FillRect(x, y, p.Width, p.Height, c)
		}
	}
}
