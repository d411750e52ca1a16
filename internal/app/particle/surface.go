// Package particle provides the fireworks simulation and the confetti spawner.
package particle

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Surface is the 2D canvas the fireworks are painted on, in canvas pixels.
type Surface interface {
	Size() (w, h int)
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" into a
// non-premultiplied color.
func ParseColor(s string) (color.NRGBA, error) {
	hex := expandShortHex(strings.TrimSpace(s))
	alpha := uint8(0xff)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrapf(err, "invalid alpha in color %q", s)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// expandShortHex turns "#rgb" and "#rgba" into their long forms.
func expandShortHex(hex string) string {
	if !strings.HasPrefix(hex, "#") || (len(hex) != 4 && len(hex) != 5) {
		return hex
	}
	var b strings.Builder
	b.WriteByte('#')
	for i := 1; i < len(hex); i++ {
		b.WriteByte(hex[i])
		b.WriteByte(hex[i])
	}
	return b.String()
}

// ParsePalette parses every entry with ParseColor.
func ParsePalette(entries []string) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(entries))
	for i, e := range entries {
		c, err := ParseColor(e)
		if err != nil {
			return nil, errors.Wrapf(err, "palette entry %d", i)
		}
		out = append(out, c)
	}
	return out, nil
}

// withAlpha scales c's alpha by a in [0, 1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
