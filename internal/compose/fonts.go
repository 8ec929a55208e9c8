package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"pinforge/internal/domain"
)

// Built-in font identifiers understood by the resolver in addition to font
// files under the configured directory. They terminate every fallback chain
// so a bare deployment without bundled fonts still renders.
const (
	BuiltinBold    = "builtin:bold"
	BuiltinRegular = "builtin:regular"
)

// FontSpec names the ordered fallback chain and size range for one text role.
type FontSpec struct {
	Candidates []string
	MinSize    float64
	MaxSize    float64
}

type faceKey struct {
	name string
	size float64
}

// FontResolver loads fonts from a local directory with a deterministic
// fallback chain ending at the embedded Go fonts. Parsed fonts and
// constructed faces are cached for the life of the process; entries are
// never replaced once inserted, so cached values can be read concurrently.
type FontResolver struct {
	dir string

	mu    sync.Mutex
	fonts map[string]*truetype.Font // nil entry records a failed load
	faces map[faceKey]font.Face

	builtinRegular *truetype.Font
	builtinBold    *truetype.Font
}

// NewFontResolver parses the embedded default fonts and prepares the cache.
// Failing to parse the embedded fonts is a packaging error, not a request
// error, and is surfaced as ErrFontLoad.
func NewFontResolver(dir string) (*FontResolver, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: embedded regular: %v", domain.ErrFontLoad, err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: embedded bold: %v", domain.ErrFontLoad, err)
	}
	return &FontResolver{
		dir:            dir,
		fonts:          make(map[string]*truetype.Font),
		faces:          make(map[faceKey]font.Face),
		builtinRegular: regular,
		builtinBold:    bold,
	}, nil
}

// Face resolves the first loadable candidate at the given pixel size. When
// every candidate fails it falls back to the embedded regular font, so the
// returned face is never nil.
func (r *FontResolver) Face(candidates []string, size float64) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range candidates {
		if f := r.fontLocked(name); f != nil {
			return r.faceLocked(name, f, size)
		}
	}
	return r.faceLocked(BuiltinRegular, r.builtinRegular, size)
}

func (r *FontResolver) fontLocked(name string) *truetype.Font {
	switch name {
	case BuiltinRegular:
		return r.builtinRegular
	case BuiltinBold:
		return r.builtinBold
	}
	if f, ok := r.fonts[name]; ok {
		return f
	}
	f := r.loadFile(name)
	r.fonts[name] = f
	return f
}

func (r *FontResolver) loadFile(name string) *truetype.Font {
	if r.dir == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(r.dir, filepath.Base(name)))
	if err != nil {
		return nil
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil
	}
	return f
}

func (r *FontResolver) faceLocked(name string, f *truetype.Font, size float64) font.Face {
	key := faceKey{name: name, size: size}
	if face, ok := r.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = face
	return face
}
