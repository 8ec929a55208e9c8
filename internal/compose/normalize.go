package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"pinforge/internal/domain"
)

// Canvas dimensions for the Pinterest pin format.
const (
	CanvasWidth  = 1000
	CanvasHeight = 1500
)

// Normalize decodes raw image bytes and produces the canonical 1000x1500
// canvas: the source is scaled with Lanczos to cover the target box, center
// cropped, then given the standard tone treatment. Sources smaller than the
// canvas are upscaled with the same filter.
func Normalize(raw []byte) (*image.NRGBA, error) {
	src, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	img := imaging.Fill(src, CanvasWidth, CanvasHeight, imaging.Center, imaging.Lanczos)
	img = imaging.AdjustContrast(img, 8)
	img = imaging.AdjustSaturation(img, 15)
	img = imaging.AdjustBrightness(img, 4)
	return applyBackdrop(img), nil
}

// applyBackdrop lays the low-contrast tint and vertical darkening gradient
// over the photo so overlaid text stays legible on bright sources.
func applyBackdrop(img *image.NRGBA) *image.NRGBA {
	dc := gg.NewContextForImage(img)

	dc.SetColor(color.NRGBA{R: 66, G: 66, B: 77, A: 25})
	dc.DrawRectangle(0, 0, CanvasWidth, CanvasHeight)
	dc.Fill()

	grad := gg.NewLinearGradient(0, 0, 0, CanvasHeight)
	grad.AddColorStop(0, color.NRGBA{A: 0})
	grad.AddColorStop(0.5, color.NRGBA{A: 8})
	grad.AddColorStop(1, color.NRGBA{A: 23})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, CanvasWidth, CanvasHeight)
	dc.Fill()

	return imaging.Clone(dc.Image())
}
