package terminal

import (
	"image"
	"image/color"
	"math"

	"github.com/osa030/showreel/internal/app/framing"
)

// FrameView maps framing boxes onto the canvas. One canvas pixel stands for
// cellPx layout pixels in both directions.
type FrameView struct {
	cellPx     float64
	cols, rows int
	box        framing.Box
}

// NewFrameView creates a frame view for a cols x rows terminal.
func NewFrameView(cellPx float64, cols, rows int) *FrameView {
	return &FrameView{cellPx: cellPx, cols: cols, rows: rows}
}

// Resize updates the terminal size.
func (f *FrameView) Resize(cols, rows int) {
	f.cols, f.rows = cols, rows
}

// Viewport returns the terminal size in layout pixels.
func (f *FrameView) Viewport() framing.Size {
	return framing.Size{
		Width:  float64(f.cols) * f.cellPx,
		Height: float64(f.rows*2) * f.cellPx,
	}
}

// ApplyFrame sets the box media is drawn in.
func (f *FrameView) ApplyFrame(box framing.Box) { f.box = box }

// Box returns the current box.
func (f *FrameView) Box() framing.Box { return f.box }

// Rect returns the box centered on the canvas, in canvas pixels.
func (f *FrameView) Rect() image.Rectangle {
	if f.box.Width <= 0 || f.box.Ratio <= 0 {
		return image.Rectangle{}
	}
	w := int(math.Round(f.box.Width / f.cellPx))
	h := int(math.Round(f.box.Width / f.box.Ratio / f.cellPx))
	cw, ch := f.cols, f.rows*2
	x0, y0 := (cw-w)/2, (ch-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// scaledSurface exposes a canvas in layout pixels.
type scaledSurface struct {
	cv *Canvas
	k  float64
}

func (s scaledSurface) Size() (w, h int) {
	cw, ch := s.cv.Size()
	return int(float64(cw) * s.k), int(float64(ch) * s.k)
}

func (s scaledSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.cv.FillRect(x/s.k, y/s.k, w/s.k, h/s.k, c)
}

func (s scaledSurface) FillCircle(cx, cy, r float64, c color.Color) {
	s.cv.FillCircle(cx/s.k, cy/s.k, r/s.k, c)
}
