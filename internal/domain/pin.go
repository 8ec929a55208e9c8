package domain

import (
	"fmt"
	"strings"
)

// Style selects one of the five fixed pin layouts.
type Style int

const (
	Style1 Style = iota + 1
	Style2
	Style3
	Style4
	Style5
)

// DefaultStyle is applied by the input-validation layer when the request
// omits a style. The render engine itself never defaults.
const DefaultStyle = Style1

// ParseStyle turns the wire representation ("style1".."style5", or a bare
// digit) into a Style. Unknown values are a validation error.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "style1", "1":
		return Style1, nil
	case "style2", "2":
		return Style2, nil
	case "style3", "3":
		return Style3, nil
	case "style4", "4":
		return Style4, nil
	case "style5", "5":
		return Style5, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrStyleNotRecognized, s)
	}
}

// Valid reports whether s is one of the five recognized styles.
func (s Style) Valid() bool {
	return s >= Style1 && s <= Style5
}

func (s Style) String() string {
	if !s.Valid() {
		return fmt.Sprintf("style(%d)", int(s))
	}
	return fmt.Sprintf("style%d", int(s))
}

// PinRequest is the validated input handed to the composition engine. The
// image bytes have already been acquired (downloaded or AI-generated) by the
// HTTP layer; the engine performs no network I/O.
type PinRequest struct {
	Title    string
	Image    []byte
	Branding string
	Style    Style
}

// Validate enforces the contract the engine relies on: a non-empty title and
// a recognized style. Branding may be empty.
func (r PinRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if !r.Style.Valid() {
		return fmt.Errorf("%w: %d", ErrStyleNotRecognized, int(r.Style))
	}
	return nil
}

// RenderResult is the finished pin. The engine retains no reference to Data
// after returning.
type RenderResult struct {
	Data   []byte
	Width  int
	Height int
}
