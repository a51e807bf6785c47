package replay

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulseagent/pulseagent/internal/model"
)

func TestParseHexColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}

	got := ParseHexColor("1A73E8", fallback)
	assert.Equal(t, color.RGBA{0x1A, 0x73, 0xE8, 0xFF}, got)

	got = ParseHexColor("bad", fallback)
	assert.Equal(t, fallback, got)

	got = ParseHexColor("zzzzzz", fallback)
	assert.Equal(t, fallback, got)
}

func TestApplyCursor_DrawsReticleAtCursorPosition(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			base.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	frames := []model.Frame{{CursorX: 20, CursorY: 20}}
	style := cursorStyle{radius: 6, cursorColor: color.RGBA{0, 0, 0, 255}, rippleColor: color.RGBA{0, 0, 255, 255}}

	out := applyCursor([]image.Image{base}, frames, false, style)
	assert.Len(t, out, 1)

	rgba := out[0].(*image.RGBA)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba.RGBAAt(20, 20), "dot center should be the cursor color")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba.RGBAAt(0, 0), "far corner untouched")
}

func TestApplyCursor_ZeroPositionSkipsDrawing(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	frames := []model.Frame{{CursorX: 0, CursorY: 0}}
	style := cursorStyle{radius: 6, cursorColor: color.RGBA{0, 0, 0, 255}, rippleColor: color.RGBA{0, 0, 255, 255}}

	out := applyCursor([]image.Image{base}, frames, true, style)
	rgba := out[0].(*image.RGBA)
	assert.Equal(t, color.RGBA{0, 0, 0, 0}, rgba.RGBAAt(0, 0), "no reticle drawn when cursor position is the sentinel origin")
}

func TestApplyCursor_ClickOnLastBlendsRipple(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			base.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	frames := []model.Frame{{CursorX: 30, CursorY: 30}, {CursorX: 30, CursorY: 30}}
	style := cursorStyle{radius: 6, cursorColor: color.RGBA{0, 0, 0, 255}, rippleColor: color.RGBA{0, 0, 255, 255}}

	out := applyCursor([]image.Image{base, base}, frames, true, style)
	last := out[1].(*image.RGBA)
	// (36, 36) is off the reticle's dot, ring and crosshair, so only the
	// ripple can change it.
	assert.NotEqual(t, color.RGBA{255, 255, 255, 255}, last.RGBAAt(36, 36), "ripple should tint pixels near the click center")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out[0].(*image.RGBA).RGBAAt(36, 36), "no ripple on frames before the last")
}
