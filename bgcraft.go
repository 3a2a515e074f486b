package bgcraft

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// NRGBA converts the color to straight-alpha 8-bit form for Ebitengine fills.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// WithAlpha returns a copy of the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseColor parses a color option string. Accepted forms are "#rgb",
// "#rrggbb", "rgb(r, g, b)" and "rgba(r, g, b, a)" with byte-valued
// components and a fractional alpha. The boolean result reports whether the
// string was understood.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFuncColor(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFuncColor(s[4:len(s)-1], false)
	}
	return Color{}, false
}

func parseHexColor(s string) (Color, bool) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{
		R: float64(n>>16&0xff) / 255,
		G: float64(n>>8&0xff) / 255,
		B: float64(n&0xff) / 255,
		A: 1,
	}, true
}

func parseFuncColor(body string, hasAlpha bool) (Color, bool) {
	parts := strings.Split(body, ",")
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, false
	}
	var vals [4]float64
	vals[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, false
		}
		vals[i] = v
	}
	return Color{
		R: clamp01(vals[0] / 255),
		G: clamp01(vals[1] / 255),
		B: clamp01(vals[2] / 255),
		A: clamp01(vals[3]),
	}, true
}

// FormatColor renders a color as an "rgba(r, g, b, a)" option string, the
// canonical form written back by the rich color control.
func FormatColor(c Color) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		int(math.Round(clamp01(c.R)*255)),
		int(math.Round(clamp01(c.G)*255)),
		int(math.Round(clamp01(c.B)*255)),
		strconv.FormatFloat(round4(clamp01(c.A)), 'f', -1, 64))
}

// HexColor renders the opaque part of a color as "#rrggbb" for swatch display.
func HexColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(clamp01(c.R)*255)),
		int(math.Round(clamp01(c.G)*255)),
		int(math.Round(clamp01(c.B)*255)))
}

// Vec2 is a 2D vector used for positions, offsets, and directions.
type Vec2 struct {
	X, Y float64
}

// Range is a general-purpose min/max range used by effect configs.
type Range struct {
	Min, Max float64
}

// BlendMode selects a compositing operation for effect rendering.
// Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// ParseBlendMode maps a select-control value to a BlendMode.
// Unknown names fall back to BlendNormal.
func ParseBlendMode(s string) BlendMode {
	switch s {
	case "add":
		return BlendAdd
	case "screen":
		return BlendScreen
	default:
		return BlendNormal
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// round4 rounds to 4 decimal places, matching the fractional option rounding.
func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
