package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/showreel/internal/app/render"
	"github.com/osa030/showreel/internal/app/timer"
)

type fakeOverlay struct {
	display string
	opacity float64
	history []float64
}

func (f *fakeOverlay) SetDisplay(mode string) { f.display = mode }

func (f *fakeOverlay) SetOpacity(v float64) {
	f.opacity = v
	f.history = append(f.history, v)
}

func newTransitions() (*Transitions, *render.Loop, *timer.Registry) {
	loop := render.NewLoop()
	reg := timer.New()
	return NewTransitions(loop, reg), loop, reg
}

func TestTransitions_ShowDefersOpacityTwoFrames(t *testing.T) {
	tr, loop, _ := newTransitions()
	o := &fakeOverlay{}

	tr.Show(o, DisplayFlex)
	assert.Equal(t, DisplayFlex, o.display)
	assert.Equal(t, 0.0, o.opacity)

	loop.Tick(0)
	assert.Equal(t, 0.0, o.opacity, "first frame only commits visibility")

	loop.Tick(0)
	assert.Equal(t, 1.0, o.opacity)
	assert.Equal(t, []float64{0, 1}, o.history)
}

func TestTransitions_ShowDefaultsToFlex(t *testing.T) {
	tr, _, _ := newTransitions()
	o := &fakeOverlay{}
	tr.Show(o, DisplayNone)
	assert.Equal(t, DisplayFlex, o.display)
}

func TestTransitions_HideAfterDuration(t *testing.T) {
	tr, _, reg := newTransitions()
	o := &fakeOverlay{display: DisplayFlex, opacity: 1}
	calls := 0

	h := tr.Hide(o, 1200*time.Millisecond, func() { calls++ })
	assert.NotZero(t, h)
	assert.Equal(t, 0.0, o.opacity, "opacity drops immediately")
	assert.Equal(t, DisplayFlex, o.display)

	reg.Advance(1199 * time.Millisecond)
	assert.Equal(t, 0, calls)

	reg.Advance(time.Millisecond)
	assert.Equal(t, DisplayNone, o.display)
	assert.Equal(t, 1, calls)

	reg.Advance(time.Hour)
	assert.Equal(t, 1, calls, "onComplete fires exactly once")
}

func TestTransitions_HideZeroIsSynchronous(t *testing.T) {
	tr, _, reg := newTransitions()
	o := &fakeOverlay{display: DisplayFlex, opacity: 1}
	calls := 0

	h := tr.Hide(o, 0, func() { calls++ })
	assert.Zero(t, h)
	assert.Equal(t, DisplayNone, o.display)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, reg.Pending())
}

func TestTransitions_HideWithoutCallback(t *testing.T) {
	tr, _, reg := newTransitions()
	o := &fakeOverlay{display: DisplayBlock}

	tr.Hide(o, 600*time.Millisecond, nil)
	reg.Advance(600 * time.Millisecond)
	assert.Equal(t, DisplayNone, o.display)
}

func TestTransitions_CancelledHideNeverCompletes(t *testing.T) {
	tr, _, reg := newTransitions()
	o := &fakeOverlay{display: DisplayFlex}
	calls := 0

	h := tr.Hide(o, time.Second, func() { calls++ })
	reg.Cancel(h)
	reg.Advance(2 * time.Second)

	assert.Equal(t, 0, calls)
	assert.Equal(t, DisplayFlex, o.display)
}
