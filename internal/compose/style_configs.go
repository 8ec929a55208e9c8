package compose

import (
	"image/color"
	"sync"

	"pinforge/internal/domain"
)

// StyleConfig is the closed record of geometry and color constants for one
// layout. Five instances exist; they are populated once and never mutated,
// so renderers can read them concurrently.
type StyleConfig struct {
	Title    FontSpec
	Branding FontSpec
	Button   FontSpec

	TitleColor      color.NRGBA
	TitleShadows    []ShadowLayer
	TitleOutline    bool
	TitleSideMargin float64
	TitleTop        float64
	TitleMaxHeight  float64
	// TitleSecondaryMin, when positive, extends the fitter's range downward
	// before truncation kicks in (style 4 shrinks long titles further).
	TitleSecondaryMin float64

	// Title backdrop box (style 1).
	TitleBox          bool
	BoxColor          color.NRGBA
	BoxRadius         float64
	BoxPaddingX       float64
	BoxPaddingTop     float64
	BoxPaddingBottom  float64
	BoxShadowOffset   float64
	BoxShadowColor    color.NRGBA
	DarkenedBackdrop  bool // radial darkening behind the title (style 2)
	EdgeShadow        bool // blurred drop shadow around the pin edge (style 2)

	// Footer bar holding the branding text (styles 1-3).
	FooterHeight    float64
	FooterColor     color.NRGBA
	BrandingColor   color.NRGBA
	BrandingShadows []ShadowLayer

	// Top bar (style 3). Height adapts to the fitted title within bounds.
	TopBar           bool
	TopBarPadding    float64
	TopBarMinHeight  float64
	TopBarMaxHeight  float64

	// Bottom panel (style 4 rectangle, style 5 curved section).
	PanelHeight   float64
	PanelColor    color.NRGBA
	PanelTopPad   float64
	CurvedPanel   bool
	CurveRadius   float64
	CurveOverhang float64

	// Branding box (styles 4 and 5).
	BrandingBox           bool
	BrandingBoxColor      color.NRGBA
	BrandingBoxTextColor  color.NRGBA
	BrandingBoxRadius     float64
	BrandingBoxPadX       float64
	BrandingBoxPadY       float64
	BrandingBoxBottomPad  float64
	BrandingOpticalOffset float64

	// "Read More" button (styles 1-3).
	HasButton         bool
	ButtonColor       color.NRGBA
	ButtonTextColor   color.NRGBA
	ButtonWidthFrac   float64
	ButtonHeight      float64
	ButtonRadius      float64
	ButtonYFrac       float64 // vertical anchor as fraction of canvas height
	ButtonAboveFooter bool    // style 3: sit above the bottom bar instead
	ButtonShadow      float64

	// Rounded corners applied to the finished pin; 0 disables masking.
	CornerRadius float64
}

var (
	gold      = color.NRGBA{R: 215, G: 189, B: 69, A: 255}
	lightGold = color.NRGBA{R: 255, G: 240, B: 180, A: 255}
	white     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black     = color.NRGBA{A: 255}
)

var (
	styleConfigsOnce sync.Once
	styleConfigs     map[domain.Style]StyleConfig
)

// configFor returns the read-only config for a style. The table is built
// lazily exactly once; concurrent first use does not double-initialize.
func configFor(s domain.Style) (StyleConfig, bool) {
	styleConfigsOnce.Do(buildStyleConfigs)
	cfg, ok := styleConfigs[s]
	return cfg, ok
}

func buildStyleConfigs() {
	spartanFonts := []string{"LeagueSpartan-Bold.ttf", "Montserrat-Bold.ttf", BuiltinBold}
	garamondFonts := []string{"EBGaramond-Bold.ttf", "LeagueSpartan-Bold.ttf", "Montserrat-Bold.ttf", BuiltinBold}
	nunitoFonts := []string{
		"Nunito-ExtraBold.ttf", "Montserrat-ExtraBold.ttf", "OpenSans-ExtraBold.ttf",
		"Lato-Bold.ttf", "Poppins-Bold.ttf", BuiltinBold,
	}
	serifFonts := []string{
		"Vidaloka-Regular.ttf", "PlayfairDisplay-Bold.ttf", "Merriweather-Bold.ttf",
		BuiltinBold,
	}
	style5Fonts := []string{
		"LeagueSpartan-Bold.ttf", "Montserrat-Bold.ttf", "OpenSans-Bold.ttf",
		"Lato-Bold.ttf", "Arial-Bold.ttf", "arialbd.ttf", BuiltinBold,
	}
	singleShadow := func(d float64, a uint8) []ShadowLayer {
		return []ShadowLayer{{DX: d, DY: d, Color: color.NRGBA{A: a}}}
	}
	deepShadow := []ShadowLayer{
		{DX: 5, DY: 5, Color: color.NRGBA{A: 120}},
		{DX: 4, DY: 4, Color: color.NRGBA{A: 130}},
		{DX: 3, DY: 3, Color: color.NRGBA{A: 150}},
	}
	brandingShadow := []ShadowLayer{
		{DX: 3, DY: 3, Color: color.NRGBA{A: 100}},
		{DX: 2, DY: 2, Color: color.NRGBA{A: 130}},
		{DX: 1, DY: 1, Color: color.NRGBA{A: 150}},
	}

	styleConfigs = map[domain.Style]StyleConfig{
		domain.Style1: {
			Title:    FontSpec{Candidates: spartanFonts, MinSize: 30, MaxSize: 84},
			Branding: FontSpec{Candidates: spartanFonts, MinSize: 36, MaxSize: 36},
			Button:   FontSpec{Candidates: spartanFonts, MinSize: 33, MaxSize: 33},

			TitleColor:      gold,
			TitleShadows:    singleShadow(3, 150),
			TitleSideMargin: 60,
			TitleTop:        80,
			TitleMaxHeight:  640,

			TitleBox:         true,
			BoxColor:         color.NRGBA{A: 180},
			BoxRadius:        25,
			BoxPaddingX:      50,
			BoxPaddingTop:    35,
			BoxPaddingBottom: 28,
			BoxShadowOffset:  5,
			BoxShadowColor:   color.NRGBA{A: 70},

			FooterHeight:    60,
			FooterColor:     color.NRGBA{A: 200},
			BrandingColor:   gold,
			BrandingShadows: brandingShadow,

			HasButton:       true,
			ButtonColor:     color.NRGBA{R: 200, G: 200, B: 200, A: 240},
			ButtonTextColor: color.NRGBA{R: 80, G: 80, B: 80, A: 255},
			ButtonWidthFrac: 0.45,
			ButtonHeight:    70,
			ButtonRadius:    25,
			ButtonYFrac:     0.88,
			ButtonShadow:    4,

			CornerRadius: 60,
		},
		domain.Style2: {
			Title:    FontSpec{Candidates: garamondFonts, MinSize: 30, MaxSize: 80},
			Branding: FontSpec{Candidates: garamondFonts, MinSize: 38, MaxSize: 38},
			Button:   FontSpec{Candidates: garamondFonts, MinSize: 33, MaxSize: 33},

			TitleColor:      gold,
			TitleShadows:    deepShadow,
			TitleOutline:    true,
			TitleSideMargin: 80,
			TitleTop:        80,
			TitleMaxHeight:  640,

			DarkenedBackdrop: true,
			EdgeShadow:       true,

			FooterHeight:    60,
			FooterColor:     color.NRGBA{A: 200},
			BrandingColor:   lightGold,
			BrandingShadows: brandingShadow,

			HasButton:       true,
			ButtonColor:     color.NRGBA{R: 230, G: 220, B: 180, A: 240},
			ButtonTextColor: color.NRGBA{R: 90, G: 80, B: 50, A: 255},
			ButtonWidthFrac: 0.45,
			ButtonHeight:    70,
			ButtonRadius:    25,
			ButtonYFrac:     0.85,
			ButtonShadow:    4,

			CornerRadius: 40,
		},
		domain.Style3: {
			Title:    FontSpec{Candidates: nunitoFonts, MinSize: 30, MaxSize: 80},
			Branding: FontSpec{Candidates: nunitoFonts, MinSize: 60, MaxSize: 60},
			Button:   FontSpec{Candidates: nunitoFonts, MinSize: 33, MaxSize: 33},

			TitleColor:      white,
			TitleShadows:    singleShadow(2, 100),
			TitleSideMargin: 50,
			TitleMaxHeight:  220,

			TopBar:          true,
			TopBarPadding:   50,
			TopBarMinHeight: 170,
			TopBarMaxHeight: 320,

			FooterHeight:    180,
			FooterColor:     color.NRGBA{R: 33, G: 33, B: 35, A: 240},
			BrandingColor:   white,
			BrandingShadows: singleShadow(3, 150),

			HasButton:         true,
			ButtonColor:       color.NRGBA{R: 220, G: 220, B: 220, A: 240},
			ButtonTextColor:   color.NRGBA{R: 50, G: 50, B: 50, A: 255},
			ButtonWidthFrac:   0.45,
			ButtonHeight:      70,
			ButtonRadius:      25,
			ButtonAboveFooter: true,
			ButtonShadow:      4,

			CornerRadius: 60,
		},
		domain.Style4: {
			Title:    FontSpec{Candidates: serifFonts, MinSize: 30, MaxSize: 88},
			Branding: FontSpec{Candidates: serifFonts, MinSize: 40, MaxSize: 40},

			TitleColor:        gold,
			TitleShadows:      singleShadow(2, 150),
			TitleSideMargin:   60,
			TitleMaxHeight:    250,
			TitleSecondaryMin: 22,

			PanelHeight: 450,
			PanelColor:  color.NRGBA{R: 30, G: 30, B: 30, A: 245},
			PanelTopPad: 60,

			BrandingBox:          true,
			BrandingBoxColor:     color.NRGBA{R: 230, G: 190, B: 60, A: 255},
			BrandingBoxTextColor: black,
			BrandingBoxRadius:    5,
			BrandingBoxPadX:      60,
			BrandingBoxPadY:      20,
			BrandingBoxBottomPad: 30,
			// Slight lift; serif ascenders read as bottom-heavy otherwise.
			BrandingOpticalOffset: -5,

			CornerRadius: 30,
		},
		domain.Style5: {
			Title:    FontSpec{Candidates: style5Fonts, MinSize: 34, MaxSize: 96},
			Branding: FontSpec{Candidates: style5Fonts, MinSize: 40, MaxSize: 40},

			TitleColor:      white,
			TitleShadows:    singleShadow(3, 130),
			TitleSideMargin: 60,
			TitleMaxHeight:  300,

			PanelHeight:   550,
			PanelColor:    color.NRGBA{R: 30, G: 30, B: 35, A: 245},
			PanelTopPad:   140,
			CurvedPanel:   true,
			CurveRadius:   320,
			CurveOverhang: 200,

			BrandingBox:          true,
			BrandingBoxColor:     color.NRGBA{R: 255, G: 255, B: 255, A: 245},
			BrandingBoxTextColor: black,
			BrandingBoxRadius:    8,
			BrandingBoxPadX:      60,
			BrandingBoxPadY:      20,
			BrandingBoxBottomPad: 40,
			// Nudges the glyphs down toward the visual center of the box.
			BrandingOpticalOffset: 8,

			CornerRadius: 40,
		},
	}
}
