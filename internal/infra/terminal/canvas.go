// Package terminal renders the show on a terminal with tcell, two pixels per cell.
package terminal

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// upperHalf draws the top pixel in the foreground and the bottom one in the background.
const upperHalf = '▀'

// Background is the color the canvas is cleared to.
var Background = colorful.Color{R: 0.04, G: 0.04, B: 0.08}

// Canvas is a pixel buffer with two pixels per terminal cell, stacked vertically.
type Canvas struct {
	w, h int
	px   []colorful.Color
}

// NewCanvas creates a canvas for a terminal of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the canvas for cols x rows cells and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.w, c.h = max(cols, 0), max(rows*2, 0)
	c.px = make([]colorful.Color, c.w*c.h)
	c.Clear(Background)
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Clear fills the whole canvas with bg.
func (c *Canvas) Clear(bg colorful.Color) {
	for i := range c.px {
		c.px[i] = bg
	}
}

// CopyFrom copies src into c. Both must have the same size.
func (c *Canvas) CopyFrom(src *Canvas) {
	if c.w != src.w || c.h != src.h {
		c.w, c.h = src.w, src.h
		c.px = make([]colorful.Color, len(src.px))
	}
	copy(c.px, src.px)
}

// At returns the pixel at x, y. Out of range pixels read as Background.
func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return Background
	}
	return c.px[y*c.w+x]
}

// Blend mixes col into the pixel at x, y by alpha a in [0, 1].
func (c *Canvas) Blend(x, y int, col colorful.Color, a float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || a <= 0 {
		return
	}
	i := y*c.w + x
	if a >= 1 {
		c.px[i] = col
		return
	}
	c.px[i] = c.px[i].BlendRgb(col, a)
}

// FillRect blends c over the pixels covered by the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	src, a := split(col)
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.w), min(y1, c.h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.Blend(px, py, src, a)
		}
	}
}

// FillCircle blends c over the pixels whose centers lie inside the circle.
// A circle smaller than a pixel still covers the pixel it sits in.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	src, a := split(col)
	if r < 0.75 {
		c.Blend(int(math.Floor(cx)), int(math.Floor(cy)), src, a)
		return
	}
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx, dy := float64(px)+0.5-cx, float64(py)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				c.Blend(px, py, src, a)
			}
		}
	}
}

// DrawImage scales img into rect and blends it with opacity a.
func (c *Canvas) DrawImage(img image.Image, rect image.Rectangle, a float64) {
	if img == nil || rect.Empty() || a <= 0 {
		return
	}
	scaled := scale(img, rect.Dx(), rect.Dy())
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			src, alpha := split(scaled.At(x, y))
			c.Blend(rect.Min.X+x, rect.Min.Y+y, src, alpha*a)
		}
	}
}

// Flush writes the canvas to screen as half-block cells.
func (c *Canvas) Flush(screen tcell.Screen) {
	for row := 0; row*2 < c.h; row++ {
		for x := 0; x < c.w; x++ {
			top, bottom := c.At(x, row*2), c.At(x, row*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(x, row, upperHalf, nil, style)
		}
	}
}

// split converts col into an opaque color and its alpha.
func split(col color.Color) (colorful.Color, float64) {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}, float64(n.A) / 255
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// withOpacity converts c to a color with alpha a in [0, 1].
func withOpacity(c colorful.Color, a float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(max(0, min(1, a))*255 + 0.5)}
}
