package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"golang.org/x/image/font"
)

// ShadowLayer is one offset pass of a text shadow. Styles that want depth
// stack several layers with decreasing offset and increasing opacity.
type ShadowLayer struct {
	DX, DY float64
	Color  color.NRGBA
}

// fillRoundedRect draws a filled rounded rectangle. The radius is clamped to
// half the shorter side so degenerate boxes stay well formed.
func fillRoundedRect(dc *gg.Context, x, y, w, h, radius float64, c color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	if limit := minf(w, h) / 2; radius > limit {
		radius = limit
	}
	dc.SetColor(c)
	dc.DrawRoundedRectangle(x, y, w, h, radius)
	dc.Fill()
}

// blurPanel crops the given region of base, gaussian-blurs it and optionally
// darkens it with a flat overlay. Used as a legibility backdrop and for the
// soft edge shadow.
func blurPanel(base *image.NRGBA, region image.Rectangle, sigma float64, darken color.NRGBA) *image.NRGBA {
	panel := imaging.Crop(base, region)
	if sigma > 0 {
		panel = imaging.Blur(panel, sigma)
	}
	if darken.A > 0 {
		dc := gg.NewContextForImage(panel)
		dc.SetColor(darken)
		dc.DrawRectangle(0, 0, float64(panel.Bounds().Dx()), float64(panel.Bounds().Dy()))
		dc.Fill()
		panel = imaging.Clone(dc.Image())
	}
	return panel
}

// drawShadowedString renders a single line: shadow passes first, an optional
// 1px outline in the first shadow color, then the sharp foreground.
func drawShadowedString(dc *gg.Context, face font.Face, line string, x, y float64, fg color.NRGBA, shadows []ShadowLayer, outline bool) {
	dc.SetFontFace(face)
	for _, s := range shadows {
		dc.SetColor(s.Color)
		dc.DrawString(line, x+s.DX, y+s.DY)
	}
	if outline {
		dc.SetColor(color.NRGBA{A: 255})
		for _, d := range [][2]float64{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1}} {
			dc.DrawString(line, x+d[0], y+d[1])
		}
	}
	dc.SetColor(fg)
	dc.DrawString(line, x, y)
}

// drawCenteredBlock draws the fitted lines horizontally centered on the
// canvas with the top of the block at top.
func drawCenteredBlock(dc *gg.Context, r *FontResolver, layout TextLayout, spec FontSpec, top float64, fg color.NRGBA, shadows []ShadowLayer, outline bool) {
	face := r.Face(spec.Candidates, layout.Size)
	ascent := float64(face.Metrics().Ascent) / 64
	y := top + ascent
	for _, line := range layout.Lines {
		x := (CanvasWidth - measureWidth(face, line)) / 2
		drawShadowedString(dc, face, line, x, y, fg, shadows, outline)
		y += layout.LineHeight
	}
}

// roundCorners multiplies a rounded-rectangle alpha mask into the canvas so
// the whole pin presents rounded corners. Pixels outside the radius end up
// fully transparent.
func roundCorners(img image.Image, radius float64) *image.NRGBA {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawRoundedRectangle(0, 0, float64(b.Dx()), float64(b.Dy()), radius)
	dc.Clip()
	dc.DrawImage(img, 0, 0)
	return imaging.Clone(dc.Image())
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
