// Package framing maps a media aspect ratio and the viewport to a display box.
package framing

import "math"

// Orientation classifies a media aspect ratio.
type Orientation int

const (
	Square Orientation = iota
	Landscape
	Portrait
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Square:
		return "square"
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	default:
		return "unknown"
	}
}

// Aspect ratio thresholds between the three orientations.
const (
	LandscapeThreshold = 1.15
	PortraitThreshold  = 0.87
)

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Box is the frame a piece of media is displayed in.
type Box struct {
	Width        float64
	AspectWidth  float64 // Aspect ratio numerator as given by the media
	AspectHeight float64 // Aspect ratio denominator as given by the media
	Ratio        float64
	Orientation  Orientation
}

// Layout holds the base widths and viewport limits.
type Layout struct {
	PortraitWidth  float64 `yaml:"portrait_width" default:"420" validate:"gt=0"`
	LandscapeWidth float64 `yaml:"landscape_width" default:"680" validate:"gt=0"`
	SquareWidth    float64 `yaml:"square_width" default:"520" validate:"gt=0"`
	MaxHeightRatio float64 `yaml:"max_height_ratio" default:"0.78" validate:"gt=0,lte=1"`
	MaxWidthRatio  float64 `yaml:"max_width_ratio" default:"0.9" validate:"gt=0,lte=1"`
}

// DefaultLayout is the stock layout.
var DefaultLayout = Layout{
	PortraitWidth:  420,
	LandscapeWidth: 680,
	SquareWidth:    520,
	MaxHeightRatio: 0.78,
	MaxWidthRatio:  0.9,
}

// Compute sizes media for viewport using DefaultLayout.
func Compute(media, viewport Size) Box {
	return DefaultLayout.Compute(media, viewport)
}

// Classify returns the orientation of ratio r = w/h.
func Classify(r float64) Orientation {
	switch {
	case r > LandscapeThreshold:
		return Landscape
	case r < PortraitThreshold:
		return Portrait
	default:
		return Square
	}
}

// Compute returns the frame for media inside viewport: the orientation's base
// width, capped by the viewport height scaled to the ratio and by the viewport
// width. Non-positive media dimensions count as 1.
func (l Layout) Compute(media, viewport Size) Box {
	w, h := media.Width, media.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	r := w / h
	o := Classify(r)

	var base float64
	switch o {
	case Landscape:
		base = l.LandscapeWidth
	case Portrait:
		base = l.PortraitWidth
	default:
		base = l.SquareWidth
	}

	maxByHeight := l.MaxHeightRatio * viewport.Height * r
	maxByWidth := l.MaxWidthRatio * viewport.Width

	return Box{
		Width:        math.Max(0, math.Min(base, math.Min(maxByHeight, maxByWidth))),
		AspectWidth:  w,
		AspectHeight: h,
		Ratio:        r,
		Orientation:  o,
	}
}
