package chime

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(8000)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
		require.Less(t, len(out), int(testRate)*10, "stream must end")
	}
	return out
}

func TestSweep_Length(t *testing.T) {
	samples := drain(t, Intro.Streamer(testRate))
	assert.Equal(t, testRate.N(2200*time.Millisecond), len(samples))
}

func TestSweep_StaysUnderPeak(t *testing.T) {
	samples := drain(t, Intro.Streamer(testRate))
	for i, s := range samples {
		if s[0] > 0.2+1e-9 || s[0] < -0.2-1e-9 {
			t.Fatalf("sample %d out of envelope: %f", i, s[0])
		}
		assert.Equal(t, s[0], s[1], "mono signal on both channels")
	}
}

func TestSweep_EnvelopeShape(t *testing.T) {
	g := Intro.Streamer(testRate).(*sweepStreamer)

	assert.Equal(t, 0.0, g.gain())
	g.pos = g.peak
	assert.InDelta(t, 0.2, g.gain(), 1e-9)
	g.pos = g.total
	assert.InDelta(t, 0.0, g.gain(), 1e-9)
}

func TestSweep_FrequencyRamp(t *testing.T) {
	g := Intro.Streamer(testRate).(*sweepStreamer)

	assert.InDelta(t, 180, g.freq(), 1e-9)
	g.pos = g.total
	assert.InDelta(t, 860, g.freq(), 1e-6)
	g.pos = g.total / 2
	assert.Greater(t, g.freq(), 180.0)
	assert.Less(t, g.freq(), (180.0+860.0)/2, "exponential ramp is below the linear midpoint")
}

type fakeOutput struct {
	played int
	err    error
}

func (o *fakeOutput) Play(s beep.Streamer) error {
	o.played++
	return o.err
}

func (o *fakeOutput) SampleRate() beep.SampleRate { return testRate }

func TestPlayer_Play(t *testing.T) {
	out := &fakeOutput{}
	require.NoError(t, NewPlayer(out, Intro).Play())
	assert.Equal(t, 1, out.played)

	out.err = errors.New("device busy")
	assert.Error(t, NewPlayer(out, Intro).Play())

	err := NewPlayer(nil, Intro).Play()
	assert.True(t, errors.Is(err, ErrNoOutput))
}
