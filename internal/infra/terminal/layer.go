package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/osa030/showreel/internal/app/overlay"
)

// Layer is an overlay with a display mode and an opacity.
type Layer struct {
	display string
	opacity float64
}

// SetDisplay sets the display mode; overlay.DisplayNone hides the layer.
func (l *Layer) SetDisplay(mode string) { l.display = mode }

// SetOpacity sets the opacity, clamped to [0, 1].
func (l *Layer) SetOpacity(v float64) { l.opacity = math.Max(0, math.Min(1, v)) }

// Display returns the display mode.
func (l *Layer) Display() string { return l.display }

// Opacity returns the opacity.
func (l *Layer) Opacity() float64 { return l.opacity }

// Visible reports whether the layer contributes to the frame.
func (l *Layer) Visible() bool {
	return l.display != overlay.DisplayNone && l.opacity > 0
}

// Card is a full-screen message: a dimmed panel with centered text.
type Card struct {
	Layer
	lines []string
	fg    colorful.Color
	dim   float64
}

var (
	gold  = colorful.Color{R: 0.79, G: 0.66, B: 0.43}
	ivory = colorful.Color{R: 0.96, G: 0.94, B: 0.88}
)

// NewCard creates a hidden card. dim is the panel darkness at full opacity.
func NewCard(fg colorful.Color, dim float64, lines ...string) *Card {
	return &Card{lines: lines, fg: fg, dim: dim}
}

// Lines returns the card text.
func (c *Card) Lines() []string { return c.lines }

func (c *Card) drawPanel(cv *Canvas) {
	if !c.Visible() || c.dim <= 0 {
		return
	}
	w, h := cv.Size()
	cv.FillRect(0, 0, float64(w), float64(h), color.NRGBA{A: uint8(c.dim*c.opacity*255 + 0.5)})
}

func (c *Card) drawText(screen tcell.Screen, cv *Canvas) {
	if !c.Visible() {
		return
	}
	w, h := cv.Size()
	top := h/4 - len(c.lines)
	for i, line := range c.lines {
		drawCentered(screen, cv, top+i*2, w, line, c.fg, c.opacity)
	}
}

// drawCentered writes text on row, fading it over the canvas by opacity.
func drawCentered(screen tcell.Screen, cv *Canvas, row, width int, text string, fg colorful.Color, opacity float64) {
	x := (width - runewidth.StringWidth(text)) / 2
	drawText(screen, cv, x, row, text, fg, opacity)
}

func drawText(screen tcell.Screen, cv *Canvas, x, row int, text string, fg colorful.Color, opacity float64) {
	for _, r := range text {
		bg := cv.At(x, row*2).BlendRgb(cv.At(x, row*2+1), 0.5)
		style := tcell.StyleDefault.
			Foreground(toTcell(bg.BlendRgb(fg, opacity))).
			Background(toTcell(bg))
		screen.SetContent(x, row, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
