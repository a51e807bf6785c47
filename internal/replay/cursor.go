// Package replay renders a short GIF clip of the frames leading up to a
// Suggestion's outcome, with a cursor marker and click ripple burned in.
// The draw-then-encode pipeline is driven by model.Frame's own embedded
// cursor coordinates rather than a separately recorded cursor track.
package replay

import (
	"image"
	"image/color"
	"math"

	"github.com/pulseagent/pulseagent/internal/model"
)

// DefaultCursorRadius and DefaultCursorColor/DefaultRippleColor back a
// cursorStyle when the caller (config) doesn't override them.
const DefaultCursorRadius = 6

var (
	DefaultCursorColor = color.RGBA{0x1A, 0x73, 0xE8, 0xFF}
	DefaultRippleColor = color.RGBA{0x1A, 0x73, 0xE8, 0xFF}
)

// cursorStyle parametrizes the reticle drawn at the cursor position and
// the ripple burned in on the final frame of an executed suggestion.
type cursorStyle struct {
	radius      int
	cursorColor color.RGBA
	rippleColor color.RGBA
}

// ParseHexColor decodes a "RRGGBB" string into an opaque color.RGBA,
// falling back to fallback on any parse failure (wrong length, non-hex
// digit) so a malformed config value degrades gracefully instead of
// aborting a replay recording.
func ParseHexColor(hex string, fallback color.RGBA) color.RGBA {
	if len(hex) != 6 {
		return fallback
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		n, ok := parseHexByte(hex[i*2 : i*2+2])
		if !ok {
			return fallback
		}
		v[i] = n
	}
	return color.RGBA{v[0], v[1], v[2], 0xFF}
}

func parseHexByte(s string) (uint8, bool) {
	hi, ok := hexDigit(s[0])
	if !ok {
		return 0, false
	}
	lo, ok := hexDigit(s[1])
	if !ok {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// applyCursor draws a cursor reticle (and, on the final frame of an
// executed suggestion, a click ripple) onto each decoded frame image,
// using each model.Frame's own CursorX/CursorY rather than an
// interpolated track — capture already samples the cursor at the same
// cadence as the frame itself, so there is nothing to interpolate
// between.
func applyCursor(images []image.Image, frames []model.Frame, clickOnLast bool, style cursorStyle) []image.Image {
	if len(images) == 0 {
		return images
	}
	out := make([]image.Image, len(images))
	for i, img := range images {
		x, y := 0, 0
		if i < len(frames) {
			x, y = frames[i].CursorX, frames[i].CursorY
		}
		click := clickOnLast && i == len(images)-1
		out[i] = drawCursorOnFrame(img, x, y, click, style)
	}
	return out
}

func drawCursorOnFrame(frame image.Image, x, y int, click bool, style cursorStyle) *image.RGBA {
	bounds := frame.Bounds()
	result := image.NewRGBA(bounds)
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			result.Set(px, py, frame.At(px, py))
		}
	}

	if x == 0 && y == 0 {
		return result
	}
	if click {
		drawRipple(result, x, y, style)
	}
	drawReticle(result, x, y, style)
	return result
}

// drawReticle paints a filled dot ringed by a hollow outline and a short
// crosshair, all derived from squared-distance comparisons against
// style.radius rather than a fixed point list — the same reticle scales
// with style.radius instead of being redrawn per size.
func drawReticle(img *image.RGBA, x, y int, style cursorStyle) {
	r := style.radius
	if r <= 0 {
		r = DefaultCursorRadius
	}
	ringOuter := r * r
	ringInner := (r - 2) * (r - 2)
	dotRadius := r / 2

	for dy := -r - 2; dy <= r+2; dy++ {
		for dx := -r - 2; dx <= r+2; dx++ {
			d2 := dx*dx + dy*dy
			switch {
			case d2 <= dotRadius*dotRadius:
				setPixelSafe(img, x+dx, y+dy, style.cursorColor)
			case d2 <= ringOuter && d2 >= ringInner:
				setPixelSafe(img, x+dx, y+dy, style.cursorColor)
			}
		}
	}

	tail := r + 4
	for i := dotRadius + 1; i <= tail; i++ {
		setPixelSafe(img, x+i, y, style.cursorColor)
		setPixelSafe(img, x-i, y, style.cursorColor)
		setPixelSafe(img, x, y+i, style.cursorColor)
		setPixelSafe(img, x, y-i, style.cursorColor)
	}
}

// drawRipple alpha-blends a soft radial disc of style.rippleColor centered
// on (x, y), fading from a fixed alpha of 110 at the center to fully
// transparent at the edge (the color's own alpha is ignored), rather than stroking a thin ring of discrete points.
func drawRipple(img *image.RGBA, x, y int, style cursorStyle) {
	radius := style.radius * 3
	if radius <= 0 {
		radius = DefaultCursorRadius * 3
	}
	maxAlpha := 110.0

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist > float64(radius) {
				continue
			}
			fade := 1 - dist/float64(radius)
			alpha := uint8(maxAlpha * fade)
			if alpha == 0 {
				continue
			}
			blendPixelSafe(img, x+dx, y+dy, style.rippleColor, alpha)
		}
	}
}

func setPixelSafe(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}

// blendPixelSafe alpha-composites c (with alpha overriding c.A) over
// whatever img already has at (x, y).
func blendPixelSafe(img *image.RGBA, x, y int, c color.RGBA, alpha uint8) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	bg := img.RGBAAt(x, y)
	a := float64(alpha) / 255
	blend := func(fg, bg uint8) uint8 {
		return uint8(float64(fg)*a + float64(bg)*(1-a))
	}
	img.SetRGBA(x, y, color.RGBA{
		R: blend(c.R, bg.R),
		G: blend(c.G, bg.G),
		B: blend(c.B, bg.B),
		A: 255,
	})
}
