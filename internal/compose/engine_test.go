package compose

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"pinforge/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	fonts, err := NewFontResolver("")
	if err != nil {
		t.Fatalf("NewFontResolver: %v", err)
	}
	return NewEngine(fonts)
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 120,
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestRenderProducesCanvasForAllStyles(t *testing.T) {
	engine := newTestEngine(t)
	source := testJPEG(t, 400, 300)

	for _, style := range []domain.Style{
		domain.Style1, domain.Style2, domain.Style3, domain.Style4, domain.Style5,
	} {
		result, err := engine.Render(domain.PinRequest{
			Title:    "Ten Cozy Reading Nooks You Can Build This Weekend",
			Image:    source,
			Branding: "example.com",
			Style:    style,
		})
		if err != nil {
			t.Fatalf("Render(%s): %v", style, err)
		}
		if result.Width != CanvasWidth || result.Height != CanvasHeight {
			t.Fatalf("Render(%s): reported %dx%d, want %dx%d",
				style, result.Width, result.Height, CanvasWidth, CanvasHeight)
		}
		img, err := png.Decode(bytes.NewReader(result.Data))
		if err != nil {
			t.Fatalf("Render(%s): output is not a PNG: %v", style, err)
		}
		if b := img.Bounds(); b.Dx() != CanvasWidth || b.Dy() != CanvasHeight {
			t.Fatalf("Render(%s): decoded %dx%d, want %dx%d",
				style, b.Dx(), b.Dy(), CanvasWidth, CanvasHeight)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	req := domain.PinRequest{
		Title:    "Same Input Same Output",
		Image:    testJPEG(t, 800, 600),
		Branding: "example.com",
		Style:    domain.Style2,
	}

	first, err := engine.Render(req)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := engine.Render(req)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatal("identical requests produced different bytes")
	}
}

func TestRenderRoundsCorners(t *testing.T) {
	engine := newTestEngine(t)
	source := testJPEG(t, 400, 300)

	for _, style := range []domain.Style{
		domain.Style1, domain.Style2, domain.Style3, domain.Style4, domain.Style5,
	} {
		result, err := engine.Render(domain.PinRequest{
			Title: "Corner Check",
			Image: source,
			Style: style,
		})
		if err != nil {
			t.Fatalf("Render(%s): %v", style, err)
		}
		img, err := png.Decode(bytes.NewReader(result.Data))
		if err != nil {
			t.Fatalf("Render(%s): decode: %v", style, err)
		}
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
			t.Errorf("Render(%s): corner pixel alpha = %d, want 0", style, a)
		}
		if _, _, _, a := img.At(CanvasWidth/2, CanvasHeight/2).RGBA(); a != 0xffff {
			t.Errorf("Render(%s): center pixel alpha = %d, want opaque", style, a)
		}
	}
}

func TestRenderAllowsEmptyBranding(t *testing.T) {
	engine := newTestEngine(t)
	result, err := engine.Render(domain.PinRequest{
		Title: "No Branding Here",
		Image: testJPEG(t, 500, 500),
		Style: domain.Style4,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(result.Data) == 0 {
		t.Fatal("Render returned no data")
	}
}

func TestRenderRejectsEmptyTitle(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Render(domain.PinRequest{
		Title: "   ",
		Image: testJPEG(t, 400, 300),
		Style: domain.Style1,
	})
	if !errors.Is(err, domain.ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
}

func TestRenderRejectsUnknownStyle(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Render(domain.PinRequest{
		Title: "Valid Title",
		Image: testJPEG(t, 400, 300),
		Style: domain.Style(9),
	})
	if !errors.Is(err, domain.ErrStyleNotRecognized) {
		t.Fatalf("err = %v, want ErrStyleNotRecognized", err)
	}
}

func TestRenderRejectsGarbageImage(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.Render(domain.PinRequest{
		Title: "Valid Title",
		Image: []byte("definitely not an image"),
		Style: domain.Style1,
	})
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
}
