package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directPoster struct{}

func (directPoster) Post(fn func()) error {
	fn()
	return nil
}

type exit struct {
	src string
	err error
}

func newShellChannel(t *testing.T, script string) (*Channel, chan exit) {
	t.Helper()
	c := NewChannel(Config{Command: "sh", Args: []string{"-c", script}}, directPoster{})
	exits := make(chan exit, 4)
	c.OnEnded(func(src string) { exits <- exit{src: src} })
	c.OnError(func(src string, err error) { exits <- exit{src: src, err: err} })
	t.Cleanup(func() { _ = c.Close() })
	return c, exits
}

func waitExit(t *testing.T, exits chan exit) exit {
	t.Helper()
	select {
	case e := <-exits:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("player did not exit")
		return exit{}
	}
}

func TestChannel_Ended(t *testing.T) {
	c, exits := newShellChannel(t, "exit 0")
	c.SetSource("clip.mp4")
	require.NoError(t, c.Play())

	e := waitExit(t, exits)
	assert.Equal(t, "clip.mp4", e.src)
	assert.NoError(t, e.err)
	assert.True(t, c.Paused())
}

func TestChannel_Error(t *testing.T) {
	c, exits := newShellChannel(t, "exit 3")
	c.SetSource("broken.mp4")
	require.NoError(t, c.Play())

	e := waitExit(t, exits)
	assert.Equal(t, "broken.mp4", e.src)
	require.Error(t, e.err)
	assert.Contains(t, e.err.Error(), "player exited: broken.mp4")
}

func TestChannel_StartFailure(t *testing.T) {
	c := NewChannel(Config{Command: "/nonexistent/showreel-player"}, directPoster{})
	assert.ErrorIs(t, c.Play(), ErrNoSource)

	c.SetSource("clip.mp4")
	err := c.Play()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
	assert.True(t, c.Paused())
}

func TestChannel_PauseSuppressesExit(t *testing.T) {
	c, exits := newShellChannel(t, "sleep 30")
	clock := time.Unix(1000, 0)
	c.now = func() time.Time { return clock }

	c.SetSource("long.mp4")
	require.NoError(t, c.Play())
	assert.False(t, c.Paused())

	clock = clock.Add(2 * time.Second)
	assert.Equal(t, 2*time.Second, c.CurrentTime())

	c.Pause()
	assert.True(t, c.Paused())
	assert.Equal(t, 2*time.Second, c.CurrentTime())

	select {
	case e := <-exits:
		t.Fatalf("unexpected exit report: %+v", e)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestChannel_Args(t *testing.T) {
	c := NewChannel(Config{
		Command:  "ffplay",
		Args:     []string{"-autoexit", "-fs"},
		MuteArgs: []string{"-an"},
		SeekFlag: "-ss",
	}, directPoster{})
	c.SetSource("video1.mp4")
	assert.Equal(t, []string{"-autoexit", "-fs", "video1.mp4"}, c.argsLocked())

	c.SetMuted(true)
	c.offset = 1500 * time.Millisecond
	assert.Equal(t, []string{"-autoexit", "-fs", "-an", "-ss", "1.500", "video1.mp4"}, c.argsLocked())

	c.SetSource("video2.mp4")
	assert.Equal(t, time.Duration(0), c.CurrentTime())
}

func TestChannel_Volume(t *testing.T) {
	c := NewChannel(Config{Command: "ffplay"}, directPoster{})
	assert.Equal(t, 1.0, c.Volume())
	c.SetVolume(-2)
	assert.Equal(t, 0.0, c.Volume())
	c.SetVolume(0.4)
	assert.Equal(t, 0.4, c.Volume())
}
