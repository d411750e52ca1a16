package terminal

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/showreel/internal/app/framing"
	"github.com/osa030/showreel/internal/app/overlay"
	"github.com/osa030/showreel/internal/app/particle"
)

func TestCanvas_FillRect(t *testing.T) {
	cv := NewCanvas(4, 2)
	w, h := cv.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	red := color.NRGBA{R: 0xff, A: 0xff}
	cv.FillRect(1, 1, 2, 2, red)
	assert.True(t, cv.At(1, 1).AlmostEqualRgb(colorful.Color{R: 1}))
	assert.True(t, cv.At(2, 2).AlmostEqualRgb(colorful.Color{R: 1}))
	assert.Equal(t, Background, cv.At(0, 0))
	assert.Equal(t, Background, cv.At(3, 3))

	// Half transparent black halves the channel.
	cv.FillRect(0, 0, 4, 4, color.NRGBA{A: 0x80})
	assert.InDelta(t, 0.5, cv.At(1, 1).R, 0.01)

	// Clipped to the canvas.
	cv.FillRect(-10, -10, 100, 100, red)
	assert.Equal(t, Background, cv.At(-1, 0))
}

func TestCanvas_FillCircle(t *testing.T) {
	cv := NewCanvas(10, 5)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	cv.FillCircle(5, 5, 2, white)
	assert.True(t, cv.At(5, 5).AlmostEqualRgb(colorful.Color{R: 1, G: 1, B: 1}))
	assert.Equal(t, Background, cv.At(0, 0))
	assert.Equal(t, Background, cv.At(8, 5))

	cv.FillCircle(0.2, 0.3, 0.4, white)
	assert.True(t, cv.At(0, 0).AlmostEqualRgb(colorful.Color{R: 1, G: 1, B: 1}))
}

func TestCanvas_DrawImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	cv := NewCanvas(10, 5)
	cv.DrawImage(src, image.Rect(2, 2, 6, 6), 1)
	assert.True(t, cv.At(3, 3).AlmostEqualRgb(colorful.Color{R: 1, G: 1, B: 1}))
	assert.Equal(t, Background, cv.At(7, 7))
}

func TestCanvas_Flush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(4, 2)

	cv := NewCanvas(4, 2)
	cv.FillRect(0, 0, 4, 1, color.NRGBA{G: 0xff, A: 0xff})
	cv.Flush(screen)

	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, upperHalf, r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 255, 0), fg)
	assert.Equal(t, toTcell(Background), bg)
}

func TestFrameView(t *testing.T) {
	f := NewFrameView(8, 100, 40)
	assert.Equal(t, framing.Size{Width: 800, Height: 640}, f.Viewport())
	assert.True(t, f.Rect().Empty())

	f.ApplyFrame(framing.DefaultLayout.Compute(framing.Size{Width: 1600, Height: 900}, f.Viewport()))
	rect := f.Rect()
	assert.Equal(t, 85, rect.Dx())
	assert.Equal(t, 48, rect.Dy())
	assert.Equal(t, 7, rect.Min.X)
	assert.Equal(t, 16, rect.Min.Y)
}

func TestLayer(t *testing.T) {
	var l Layer
	assert.False(t, l.Visible())
	l.SetDisplay(overlay.DisplayFlex)
	l.SetOpacity(2)
	assert.Equal(t, 1.0, l.Opacity())
	assert.True(t, l.Visible())
	l.SetOpacity(0)
	assert.False(t, l.Visible())
}

func TestProgressBar(t *testing.T) {
	now := time.Duration(0)
	b := NewProgressBar(func() time.Duration { return now })
	assert.Equal(t, 0.0, b.Fraction())

	b.Start(3 * time.Second)
	now = 1500 * time.Millisecond
	assert.InDelta(t, 0.5, b.Fraction(), 1e-9)
	now = 10 * time.Second
	assert.Equal(t, 1.0, b.Fraction())

	b.Reset()
	assert.Equal(t, 0.0, b.Fraction())
}

func TestPhotoView_Counter(t *testing.T) {
	p := NewPhotoView(nil, NewFrameView(8, 10, 10))
	assert.Equal(t, "", p.Counter())
	p.SetCounter(3, 20)
	p.SetSource("photo3.jpeg")
	assert.Equal(t, "3 / 20", p.Counter())
	assert.Equal(t, "photo3.jpeg", p.Source())
}

func TestConfettiLayer(t *testing.T) {
	now := time.Duration(0)
	clock := func() time.Duration { return now }
	layer := NewConfettiLayer(clock)

	spawner := particle.NewConfetti(particle.DefaultConfettiConfig(), rand.New(rand.NewPCG(1, 2)))
	layer.Attach(spawner)

	spawner.Spawn(particle.SideLeft)
	spawner.Spawn(particle.SideRight)
	assert.Equal(t, 2, layer.Len())

	cv := NewCanvas(80, 30)
	now = 2 * time.Second
	layer.draw(scaledSurface{cv: cv, k: 8})

	spawner.Clear()
	assert.Equal(t, 0, layer.Len())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Action
	}{
		{"space begins", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionBegin},
		{"enter begins", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionBegin},
		{"r restarts", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ActionRestart},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionQuit},
		{"resize", tcell.NewEventResize(120, 40), ActionResize},
		{"click begins", tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone), ActionBegin},
		{"hover ignored", tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ev))
		})
	}
}

type fakeController struct {
	begins, restarts int
	posted           []func()
}

func (c *fakeController) Begin() error   { c.begins++; return nil }
func (c *fakeController) Restart() error { c.restarts++; return nil }
func (c *fakeController) Post(fn func()) error {
	c.posted = append(c.posted, fn)
	return nil
}

func TestInput_Dispatch(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	ctl := &fakeController{}
	var cols, rows int
	in := NewInput(screen, ctl, func(c, r int) { cols, rows = c, r })

	assert.False(t, in.dispatch(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	assert.False(t, in.dispatch(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.False(t, in.dispatch(tcell.NewEventResize(90, 30)))
	assert.True(t, in.dispatch(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	assert.Equal(t, 1, ctl.begins)
	assert.Equal(t, 1, ctl.restarts)
	require.Len(t, ctl.posted, 1)
	ctl.posted[0]()
	assert.Equal(t, 90, cols)
	assert.Equal(t, 30, rows)
}

func TestRenderer_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(60, 20)

	now := time.Duration(0)
	views := NewViews(ViewsConfig{
		Messages: Messages{Splash: "hello", Ending: "bye"},
		CellPx:   8,
		Cols:     60,
		Rows:     20,
		Clock:    func() time.Duration { return now },
	})
	fw := particle.NewFireworks(particle.DefaultFireworksConfig(), rand.New(rand.NewPCG(3, 4)))
	r := NewRenderer(screen, views, fw, 8)
	r.Resize(60, 20)

	views.Intro.SetDisplay(overlay.DisplayFlex)
	views.Intro.SetOpacity(1)
	fw.Launch()
	r.Draw(time.Second / 30)

	// "hello" is centered on the middle row.
	x := (60 - 5) / 2
	c, _, _, _ := screen.GetContent(x, 20/2-1)
	assert.Equal(t, 'h', c)
	assert.Positive(t, fw.Len())
}
