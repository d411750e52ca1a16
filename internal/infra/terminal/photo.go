package terminal

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
)

// ImageSource returns decoded photos by reference.
type ImageSource interface {
	Get(ref string) (image.Image, bool)
}

// PhotoView draws the current photo inside the frame.
type PhotoView struct {
	Layer
	images   ImageSource
	frame    *FrameView
	ref      string
	position int
	total    int
}

// NewPhotoView creates a photo view reading images from src.
func NewPhotoView(src ImageSource, frame *FrameView) *PhotoView {
	return &PhotoView{images: src, frame: frame}
}

// SetSource sets the photo reference.
func (p *PhotoView) SetSource(ref string) { p.ref = ref }

// Source returns the photo reference.
func (p *PhotoView) Source() string { return p.ref }

// SetCounter sets the "position / total" caption.
func (p *PhotoView) SetCounter(position, total int) {
	p.position, p.total = position, total
}

// Counter returns the caption text.
func (p *PhotoView) Counter() string {
	if p.total == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", p.position, p.total)
}

func (p *PhotoView) draw(cv *Canvas, parent float64) {
	rect := p.frame.Rect()
	if rect.Empty() {
		return
	}
	// Mat behind the photo, visible during the gap between photos.
	cv.FillRect(float64(rect.Min.X-1), float64(rect.Min.Y-1), float64(rect.Dx()+2), float64(rect.Dy()+2),
		color.NRGBA{R: 0x1c, G: 0x1a, B: 0x24, A: uint8(parent*200 + 0.5)})

	if !p.Visible() || p.images == nil {
		return
	}
	if img, ok := p.images.Get(p.ref); ok {
		cv.DrawImage(img, rect, p.opacity*parent)
	}
}

func (p *PhotoView) drawText(screen tcell.Screen, cv *Canvas, parent float64) {
	rect := p.frame.Rect()
	caption := p.Counter()
	if rect.Empty() || caption == "" {
		return
	}
	w, _ := cv.Size()
	row := (rect.Max.Y + 3) / 2
	drawCentered(screen, cv, row, w, caption, ivory, parent*0.8)
}

// ProgressBar tracks the elapsed share of the current dwell.
type ProgressBar struct {
	clock    func() time.Duration
	start    time.Duration
	duration time.Duration
	active   bool
}

// NewProgressBar creates a progress bar timed by clock.
func NewProgressBar(clock func() time.Duration) *ProgressBar {
	return &ProgressBar{clock: clock}
}

// Start fills the bar over d.
func (b *ProgressBar) Start(d time.Duration) {
	b.start, b.duration, b.active = b.clock(), d, true
}

// Reset empties the bar.
func (b *ProgressBar) Reset() { b.active = false }

// Fraction returns the filled share in [0, 1].
func (b *ProgressBar) Fraction() float64 {
	if !b.active || b.duration <= 0 {
		return 0
	}
	f := float64(b.clock()-b.start) / float64(b.duration)
	return max(0, min(1, f))
}

func (b *ProgressBar) draw(cv *Canvas, rect image.Rectangle, parent float64) {
	f := b.Fraction()
	if f <= 0 || rect.Empty() {
		return
	}
	y := float64(rect.Max.Y + 1)
	cv.FillRect(float64(rect.Min.X), y, float64(rect.Dx())*f, 1, withOpacity(gold, parent))
}

// VideoView shows what the external player is playing.
type VideoView struct {
	visible bool
	status  func() string
}

// NewVideoView creates a hidden video view. status returns the current clip.
func NewVideoView(status func() string) *VideoView {
	return &VideoView{status: status}
}

// SetVisible shows or hides the view.
func (v *VideoView) SetVisible(visible bool) { v.visible = visible }

// Visible reports whether the view is shown.
func (v *VideoView) Visible() bool { return v.visible }

func (v *VideoView) drawText(screen tcell.Screen, cv *Canvas) {
	if !v.visible {
		return
	}
	label := "▶ playing"
	if v.status != nil {
		if src := v.status(); src != "" {
			label += " " + src
		}
	}
	w, h := cv.Size()
	drawCentered(screen, cv, h/4, w, label, ivory, 1)
}
