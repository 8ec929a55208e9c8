package compose

import (
	"bytes"
	"fmt"
	"image/png"

	"pinforge/internal/domain"
)

// Engine composes finished pins: it normalizes the source image, fits the
// title, dispatches to the style renderer and encodes the result. It holds
// no mutable state beyond the process-wide font cache, so a single Engine
// is safe to use from concurrent requests.
type Engine struct {
	fonts *FontResolver
}

// NewEngine wires the engine with its font resolver.
func NewEngine(fonts *FontResolver) *Engine {
	return &Engine{fonts: fonts}
}

// Render produces the encoded 1000x1500 PNG for the request. It performs no
// network I/O, leaves no intermediate artifacts on failure, and returns the
// same bytes for identical input.
func (e *Engine) Render(req domain.PinRequest) (*domain.RenderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cfg, ok := configFor(req.Style)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrStyleNotRecognized, int(req.Style))
	}

	base, err := Normalize(req.Image)
	if err != nil {
		return nil, err
	}

	maxW := CanvasWidth - 2*cfg.TitleSideMargin
	title := FitText(e.fonts, req.Title, maxW, cfg.TitleMaxHeight, cfg.Title)
	if title.Truncated && cfg.TitleSecondaryMin > 0 && cfg.TitleSecondaryMin < cfg.Title.MinSize {
		spec := cfg.Title
		spec.MaxSize = spec.MinSize
		spec.MinSize = cfg.TitleSecondaryMin
		title = FitText(e.fonts, req.Title, maxW, cfg.TitleMaxHeight, spec)
	}

	out := base
	switch req.Style {
	case domain.Style1:
		out = renderStyle1(base, e.fonts, title, req.Branding, cfg)
	case domain.Style2:
		out = renderStyle2(base, e.fonts, title, req.Branding, cfg)
	case domain.Style3:
		out = renderStyle3(base, e.fonts, title, req.Branding, cfg)
	case domain.Style4:
		out = renderStyle4(base, e.fonts, title, req.Branding, cfg)
	case domain.Style5:
		out = renderStyle5(base, e.fonts, title, req.Branding, cfg)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncode, err)
	}
	return &domain.RenderResult{
		Data:   buf.Bytes(),
		Width:  CanvasWidth,
		Height: CanvasHeight,
	}, nil
}
