package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const readMoreLabel = "Read More"

// Style renderers are pure: they read the normalized canvas, the fitted
// title layout and the immutable StyleConfig, and return a new bitmap. An
// empty branding string renders the branding region empty instead of
// failing.

// renderStyle1 draws the gold title inside a semi-transparent rounded black
// box, a light button, and a black footer bar with branding, then rounds the
// pin corners.
func renderStyle1(base *image.NRGBA, r *FontResolver, title TextLayout, branding string, cfg StyleConfig) *image.NRGBA {
	dc := gg.NewContextForImage(base)

	boxW := title.Width + 2*cfg.BoxPaddingX
	boxH := title.Height + cfg.BoxPaddingTop + cfg.BoxPaddingBottom
	boxX := clampf((CanvasWidth-boxW)/2, 0, CanvasWidth)
	boxY := clampf(cfg.TitleTop-cfg.BoxPaddingTop, 0, CanvasHeight)
	fillRoundedRect(dc, boxX+cfg.BoxShadowOffset, boxY+cfg.BoxShadowOffset, boxW, boxH, cfg.BoxRadius, cfg.BoxShadowColor)
	fillRoundedRect(dc, boxX, boxY, boxW, boxH, cfg.BoxRadius, cfg.BoxColor)

	drawCenteredBlock(dc, r, title, cfg.Title, cfg.TitleTop, cfg.TitleColor, cfg.TitleShadows, cfg.TitleOutline)

	drawFooterBranding(dc, r, branding, cfg)
	drawReadMoreButton(dc, r, cfg)

	return roundCorners(dc.Image(), cfg.CornerRadius)
}

// renderStyle2 sets the title directly on a darkened backdrop with a deep
// layered shadow and stroke outline, adds a cream button and footer, then
// finishes with the edge shadow and rounded corners.
func renderStyle2(base *image.NRGBA, r *FontResolver, title TextLayout, branding string, cfg StyleConfig) *image.NRGBA {
	dc := gg.NewContextForImage(base)

	if cfg.DarkenedBackdrop {
		grad := gg.NewRadialGradient(
			CanvasWidth/2, CanvasHeight/2, 0,
			CanvasWidth/2, CanvasHeight/2, CanvasHeight*0.7,
		)
		grad.AddColorStop(0, color.NRGBA{A: 40})
		grad.AddColorStop(1, color.NRGBA{A: 100})
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, CanvasWidth, CanvasHeight)
		dc.Fill()
	}

	drawCenteredBlock(dc, r, title, cfg.Title, cfg.TitleTop, cfg.TitleColor, cfg.TitleShadows, cfg.TitleOutline)

	drawFooterBranding(dc, r, branding, cfg)
	drawReadMoreButton(dc, r, cfg)

	out := imaging.Clone(dc.Image())
	if cfg.EdgeShadow {
		out = applyEdgeShadow(out)
	}
	return roundCorners(out, cfg.CornerRadius)
}

// renderStyle3 places solid bars at top and bottom, centers the white title
// in the top bar, parks the button just above the bottom bar, and centers
// the branding inside it.
func renderStyle3(base *image.NRGBA, r *FontResolver, title TextLayout, branding string, cfg StyleConfig) *image.NRGBA {
	dc := gg.NewContextForImage(base)

	topBar := clampf(title.Height+2*cfg.TopBarPadding, cfg.TopBarMinHeight, cfg.TopBarMaxHeight)
	dc.SetColor(cfg.FooterColor)
	dc.DrawRectangle(0, 0, CanvasWidth, topBar)
	dc.Fill()
	dc.DrawRectangle(0, CanvasHeight-cfg.FooterHeight, CanvasWidth, cfg.FooterHeight)
	dc.Fill()

	titleTop := maxf((topBar-title.Height)/2, 20)
	drawCenteredBlock(dc, r, title, cfg.Title, titleTop, cfg.TitleColor, cfg.TitleShadows, cfg.TitleOutline)

	drawReadMoreButton(dc, r, cfg)

	if branding != "" {
		face := r.Face(cfg.Branding.Candidates, cfg.Branding.MaxSize)
		w := measureWidth(face, branding)
		ascent := float64(face.Metrics().Ascent) / 64
		barTop := CanvasHeight - cfg.FooterHeight
		y := barTop + (cfg.FooterHeight-cfg.Branding.MaxSize)/2 + ascent
		drawShadowedString(dc, face, branding, (CanvasWidth-w)/2, y, cfg.BrandingColor, cfg.BrandingShadows, false)
	}

	return roundCorners(dc.Image(), cfg.CornerRadius)
}

// renderStyle4 anchors a dark rectangle at the bottom holding the gold title
// and a golden branding box with black text.
func renderStyle4(base *image.NRGBA, r *FontResolver, title TextLayout, branding string, cfg StyleConfig) *image.NRGBA {
	dc := gg.NewContextForImage(base)

	panelTop := CanvasHeight - cfg.PanelHeight
	dc.SetColor(cfg.PanelColor)
	dc.DrawRectangle(0, panelTop, CanvasWidth, cfg.PanelHeight)
	dc.Fill()

	drawCenteredBlock(dc, r, title, cfg.Title, panelTop+cfg.PanelTopPad, cfg.TitleColor, cfg.TitleShadows, cfg.TitleOutline)

	drawBrandingBox(dc, r, branding, cfg)

	return roundCorners(dc.Image(), cfg.CornerRadius)
}

// renderStyle5 covers the bottom with a curved dark region, approximated by
// a large-radius rounded rectangle extending past the canvas edges, holding
// the bold shadowed title and a white branding box.
func renderStyle5(base *image.NRGBA, r *FontResolver, title TextLayout, branding string, cfg StyleConfig) *image.NRGBA {
	dc := gg.NewContextForImage(base)

	sectionTop := CanvasHeight - cfg.PanelHeight
	fillRoundedRect(dc,
		-cfg.CurveOverhang, sectionTop,
		CanvasWidth+2*cfg.CurveOverhang, cfg.PanelHeight+cfg.CurveRadius+cfg.CurveOverhang,
		cfg.CurveRadius, cfg.PanelColor)

	titleTop := sectionTop + cfg.PanelTopPad + (cfg.TitleMaxHeight-title.Height)/2
	if bottom := titleTop + title.Height; bottom > CanvasHeight-120 {
		titleTop = CanvasHeight - 120 - title.Height
	}
	drawCenteredBlock(dc, r, title, cfg.Title, titleTop, cfg.TitleColor, cfg.TitleShadows, cfg.TitleOutline)

	drawBrandingBox(dc, r, branding, cfg)

	return roundCorners(dc.Image(), cfg.CornerRadius)
}

// drawFooterBranding paints the bottom bar and centers the branding text in
// it. Styles 1 and 2 only show the bar when branding is present.
func drawFooterBranding(dc *gg.Context, r *FontResolver, branding string, cfg StyleConfig) {
	if branding == "" {
		return
	}
	barTop := CanvasHeight - cfg.FooterHeight
	dc.SetColor(cfg.FooterColor)
	dc.DrawRectangle(0, barTop, CanvasWidth, cfg.FooterHeight)
	dc.Fill()

	face := r.Face(cfg.Branding.Candidates, cfg.Branding.MaxSize)
	w := measureWidth(face, branding)
	ascent := float64(face.Metrics().Ascent) / 64
	y := barTop + (cfg.FooterHeight-cfg.Branding.MaxSize)/2 + ascent
	drawShadowedString(dc, face, branding, (CanvasWidth-w)/2, y, cfg.BrandingColor, cfg.BrandingShadows, false)
}

// drawBrandingBox renders the branding inside a small rounded box near the
// bottom edge, vertically adjusted by the style's optical offset.
func drawBrandingBox(dc *gg.Context, r *FontResolver, branding string, cfg StyleConfig) {
	if branding == "" {
		return
	}
	face := r.Face(cfg.Branding.Candidates, cfg.Branding.MaxSize)
	textW := measureWidth(face, branding)
	textH := cfg.Branding.MaxSize

	boxW := textW + cfg.BrandingBoxPadX
	boxH := textH + cfg.BrandingBoxPadY
	boxX := (CanvasWidth - boxW) / 2
	boxY := CanvasHeight - cfg.BrandingBoxBottomPad - boxH
	fillRoundedRect(dc, boxX, boxY, boxW, boxH, cfg.BrandingBoxRadius, cfg.BrandingBoxColor)

	ascent := float64(face.Metrics().Ascent) / 64
	x := boxX + (boxW-textW)/2
	y := boxY + (boxH-textH)/2 + ascent + cfg.BrandingOpticalOffset
	dc.SetFontFace(face)
	dc.SetColor(cfg.BrandingBoxTextColor)
	dc.DrawString(branding, x, y)
}

// drawReadMoreButton draws the rounded call-to-action button with its drop
// shadow and centered label.
func drawReadMoreButton(dc *gg.Context, r *FontResolver, cfg StyleConfig) {
	if !cfg.HasButton {
		return
	}
	btnW := CanvasWidth * cfg.ButtonWidthFrac
	btnH := cfg.ButtonHeight
	btnX := (CanvasWidth - btnW) / 2
	var btnY float64
	if cfg.ButtonAboveFooter {
		btnY = CanvasHeight - cfg.FooterHeight - btnH - 30
	} else {
		btnY = CanvasHeight * cfg.ButtonYFrac
	}

	fillRoundedRect(dc, btnX+cfg.ButtonShadow, btnY+cfg.ButtonShadow, btnW, btnH, cfg.ButtonRadius, color.NRGBA{A: 90})
	fillRoundedRect(dc, btnX, btnY, btnW, btnH, cfg.ButtonRadius, cfg.ButtonColor)

	face := r.Face(cfg.Button.Candidates, cfg.Button.MaxSize)
	textW := measureWidth(face, readMoreLabel)
	ascent := float64(face.Metrics().Ascent) / 64
	x := btnX + (btnW-textW)/2
	y := btnY + (btnH-cfg.Button.MaxSize)/2 + ascent
	dc.SetFontFace(face)
	dc.SetColor(cfg.ButtonTextColor)
	dc.DrawString(readMoreLabel, x, y)
}

// applyEdgeShadow composes a blurred darkened copy behind the pin, offset
// toward the bottom right, and crops back to canvas size.
func applyEdgeShadow(img *image.NRGBA) *image.NRGBA {
	shadow := blurPanel(img, img.Bounds(), 15, color.NRGBA{A: 180})
	bigger := imaging.New(CanvasWidth+20, CanvasHeight+20, color.NRGBA{})
	bigger = imaging.Paste(bigger, shadow, image.Pt(10, 10))
	bigger = imaging.Overlay(bigger, img, image.Pt(0, 0), 1.0)
	return imaging.Crop(bigger, image.Rect(0, 0, CanvasWidth, CanvasHeight))
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
