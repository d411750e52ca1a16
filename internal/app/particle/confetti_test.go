package particle

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/showreel/internal/app/timer"
)

func newTestConfetti() *Confetti {
	return NewConfetti(DefaultConfettiConfig(), rand.New(rand.NewPCG(7, 9)))
}

func TestConfetti_SpawnRanges(t *testing.T) {
	c := newTestConfetti()
	for i := 0; i < 200; i++ {
		p := c.Spawn(SideLeft)
		assert.GreaterOrEqual(t, p.Height, 4.0)
		assert.Less(t, p.Height, 10.0)
		assert.True(t, p.Width == p.Height || p.Width == p.Height*0.45)
		assert.GreaterOrEqual(t, p.Duration, 3*time.Second)
		assert.Less(t, p.Duration, 6*time.Second)
		assert.GreaterOrEqual(t, p.Delay, time.Duration(0))
		assert.Less(t, p.Delay, 600*time.Millisecond)
		assert.GreaterOrEqual(t, p.Left, 0.0)
		assert.Less(t, p.Left, 100.0)
	}
}

func TestConfetti_PiecesRemoveThemselves(t *testing.T) {
	reg := timer.New()
	c := newTestConfetti()
	var removed []Piece
	c.OnRemove(func(p Piece) { removed = append(removed, p) })

	c.Start(reg)
	reg.Advance(220 * time.Millisecond)
	assert.Equal(t, 2, c.Live())

	c.Stop()
	assert.False(t, c.Running())

	// Longest possible lifetime is 6s + 0.6s + 200ms.
	reg.Advance(7 * time.Second)
	assert.Equal(t, 0, c.Live())
	assert.Len(t, removed, 2)
	assert.Equal(t, 0, reg.Pending())
}

func TestConfetti_SpawnsBothSides(t *testing.T) {
	reg := timer.New()
	c := newTestConfetti()
	sides := map[Side]int{}
	c.OnSpawn(func(p Piece) { sides[p.Side]++ })

	c.Start(reg)
	reg.Advance(1100 * time.Millisecond)
	assert.Equal(t, 5, sides[SideLeft])
	assert.Equal(t, 5, sides[SideRight])
}

func TestConfetti_Clear(t *testing.T) {
	reg := timer.New()
	c := newTestConfetti()
	c.Start(reg)
	reg.Advance(660 * time.Millisecond)
	c.Stop()

	assert.Equal(t, 6, c.Live())
	assert.Equal(t, 6, reg.Pending())

	c.Clear()
	assert.Equal(t, 0, c.Live())
	assert.Equal(t, 0, reg.Pending())
}

func TestSide_String(t *testing.T) {
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
	assert.Equal(t, "unknown", Side(5).String())
}
