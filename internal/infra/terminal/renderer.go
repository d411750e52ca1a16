package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/showreel/internal/app/overlay"
	"github.com/osa030/showreel/internal/app/particle"
	"github.com/osa030/showreel/internal/app/sequencer"
)

// Messages is the text of the message cards.
type Messages struct {
	Splash    string
	TapPrompt string
	Popup     string
	FinalWish string
	Ending    string
}

// Views holds every drawable the sequencer drives.
type Views struct {
	Intro     *Card
	TapPrompt *Card
	Main      *Layer
	Slideshow *Layer
	Popup     *Card
	FinalWish *Card
	Ending    *Card

	Photo    *PhotoView
	Frame    *FrameView
	Progress *ProgressBar
	Video    *VideoView
	Confetti *ConfettiLayer
}

// ViewsConfig configures NewViews.
type ViewsConfig struct {
	Messages    Messages
	CellPx      float64
	Cols, Rows  int
	Images      ImageSource
	Clock       func() time.Duration
	VideoStatus func() string
}

// NewViews creates hidden views for a cols x rows terminal.
func NewViews(cfg ViewsConfig) *Views {
	frame := NewFrameView(cfg.CellPx, cfg.Cols, cfg.Rows)
	return &Views{
		Intro:     NewCard(gold, 0.6, cfg.Messages.Splash),
		TapPrompt: NewCard(ivory, 0.6, cfg.Messages.TapPrompt),
		Main:      &Layer{},
		Slideshow: &Layer{display: overlay.DisplayBlock, opacity: 1},
		Popup:     NewCard(gold, 0.55, cfg.Messages.Popup),
		FinalWish: NewCard(gold, 0.55, cfg.Messages.FinalWish),
		Ending:    NewCard(ivory, 0, cfg.Messages.Ending),
		Photo:     NewPhotoView(cfg.Images, frame),
		Frame:     frame,
		Progress:  NewProgressBar(cfg.Clock),
		Video:     NewVideoView(cfg.VideoStatus),
		Confetti:  NewConfettiLayer(cfg.Clock),
	}
}

// Stage returns the views as sequencer collaborators.
func (v *Views) Stage() sequencer.Stage {
	return sequencer.Stage{
		Intro:     v.Intro,
		TapPrompt: v.TapPrompt,
		Main:      v.Main,
		Slideshow: v.Slideshow,
		Popup:     v.Popup,
		FinalWish: v.FinalWish,
		Ending:    v.Ending,
		Photo:     v.Photo,
		Frame:     v.Frame,
		Progress:  v.Progress,
		Video:     v.Video,
	}
}

// Renderer composes the views onto the screen once per frame.
type Renderer struct {
	screen    tcell.Screen
	views     *Views
	fireworks *particle.Fireworks
	cellPx    float64

	sky   *Canvas // Fireworks with trails, kept between frames
	frame *Canvas // Composed fresh every frame
}

// NewRenderer creates a renderer sized to the screen.
func NewRenderer(screen tcell.Screen, views *Views, fireworks *particle.Fireworks, cellPx float64) *Renderer {
	cols, rows := screen.Size()
	return &Renderer{
		screen:    screen,
		views:     views,
		fireworks: fireworks,
		cellPx:    cellPx,
		sky:       NewCanvas(cols, rows),
		frame:     NewCanvas(cols, rows),
	}
}

// Resize follows a terminal resize.
func (r *Renderer) Resize(cols, rows int) {
	r.sky.Resize(cols, rows)
	r.frame.Resize(cols, rows)
	r.views.Frame.Resize(cols, rows)
	vp := r.views.Frame.Viewport()
	r.fireworks.Resize(int(vp.Width), int(vp.Height))
	r.screen.Sync()
	zlog.Debug().Msgf("terminal: resized: cols=%d rows=%d", cols, rows)
}

// Draw renders one frame. It matches the render loop's tick signature.
func (r *Renderer) Draw(time.Duration) {
	v := r.views
	r.fireworks.Frame(scaledSurface{cv: r.sky, k: r.cellPx})
	r.frame.CopyFrom(r.sky)

	if v.Main.Visible() {
		if v.Slideshow.Visible() && !v.Video.Visible() {
			v.Photo.draw(r.frame, v.Main.opacity*v.Slideshow.opacity)
			v.Progress.draw(r.frame, v.Frame.Rect(), v.Slideshow.opacity)
		}
		v.Confetti.draw(scaledSurface{cv: r.frame, k: r.cellPx})
	}
	cards := []*Card{v.Intro, v.TapPrompt, v.Popup, v.FinalWish, v.Ending}
	for _, c := range cards {
		c.drawPanel(r.frame)
	}

	r.frame.Flush(r.screen)

	if v.Main.Visible() {
		if v.Slideshow.Visible() && !v.Video.Visible() {
			v.Photo.drawText(r.screen, r.frame, v.Slideshow.opacity)
		}
		v.Video.drawText(r.screen, r.frame)
	}
	for _, c := range cards {
		c.drawText(r.screen, r.frame)
	}
	r.screen.Show()
}
