package compose

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceFallsBackToBuiltinRegular(t *testing.T) {
	r := newTestResolver(t)

	fallback := r.Face([]string{"DoesNotExist.ttf", "AlsoMissing.ttf"}, 40)
	if fallback == nil {
		t.Fatal("Face returned nil")
	}
	builtin := r.Face([]string{BuiltinRegular}, 40)
	sample := "The quick brown fox"
	if got, want := measureWidth(fallback, sample), measureWidth(builtin, sample); got != want {
		t.Fatalf("fallback face measures %v, builtin regular measures %v", got, want)
	}
}

func TestFaceBuiltinBoldResolves(t *testing.T) {
	r := newTestResolver(t)
	face := r.Face([]string{BuiltinBold}, 40)
	if face == nil {
		t.Fatal("Face returned nil for builtin bold")
	}
	if measureWidth(face, "Headline") <= 0 {
		t.Fatal("builtin bold produced zero-width measurement")
	}
}

func TestFaceLoadsFontFromDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Custom.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	r, err := NewFontResolver(dir)
	if err != nil {
		t.Fatalf("NewFontResolver: %v", err)
	}

	face := r.Face([]string{"Custom.ttf", BuiltinBold}, 36)
	if face == nil {
		t.Fatal("Face returned nil")
	}
	sample := "measure me"
	builtin := r.Face([]string{BuiltinRegular}, 36)
	if measureWidth(face, sample) != measureWidth(builtin, sample) {
		t.Fatal("directory font should measure like the regular face it contains")
	}
}

func TestFaceMeasurementIsStableAcrossCalls(t *testing.T) {
	r := newTestResolver(t)
	sample := "Repeatable Measurement"

	first := measureWidth(r.Face([]string{BuiltinBold}, 48), sample)
	second := measureWidth(r.Face([]string{BuiltinBold}, 48), sample)
	if first != second {
		t.Fatalf("repeated resolution measured %v then %v", first, second)
	}
}
