package compose

import (
	"strings"

	"golang.org/x/image/font"
)

// lineSpacing is the vertical advance between wrapped lines as a multiple of
// the font size.
const lineSpacing = 1.3

// fitStep is the decrement used by the descending size search.
const fitStep = 4.0

const ellipsis = "…"

// TextLayout is the result of fitting a string into a box: the chosen font
// size, the wrapped lines, and the measured extent of the block.
type TextLayout struct {
	Size       float64
	Lines      []string
	LineHeight float64
	Width      float64
	Height     float64
	Truncated  bool
}

// FitText finds the largest size within spec's range at which text, greedily
// word-wrapped, fits maxW by maxH. The search walks from MaxSize downward so
// ties always resolve toward the larger size. If no size fits, MinSize is
// used and the block is hard-truncated with an ellipsis on the last line.
//
// A single word wider than maxW at MinSize is allowed to overflow
// horizontally rather than being broken mid-word.
func FitText(r *FontResolver, text string, maxW, maxH float64, spec FontSpec) TextLayout {
	text = strings.Join(strings.Fields(text), " ")

	for size := spec.MaxSize; size >= spec.MinSize; size -= fitStep {
		face := r.Face(spec.Candidates, size)
		lines := wrapWords(face, text, maxW)
		layout := measureBlock(face, lines, size)
		if layout.Width <= maxW && layout.Height <= maxH {
			return layout
		}
	}

	face := r.Face(spec.Candidates, spec.MinSize)
	lines := wrapWords(face, text, maxW)
	layout := measureBlock(face, lines, spec.MinSize)
	if layout.Height <= maxH {
		return layout
	}

	maxLines := int(maxH / (spec.MinSize * lineSpacing))
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = truncateLine(face, lines[maxLines-1], maxW)
	}
	layout = measureBlock(face, lines, spec.MinSize)
	layout.Truncated = true
	return layout
}

// wrapWords accumulates words into a line until the next word would exceed
// maxW. A word that alone exceeds maxW becomes its own (overflowing) line.
func wrapWords(face font.Face, text string, maxW float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measureWidth(face, candidate) <= maxW {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

func truncateLine(face font.Face, line string, maxW float64) string {
	if measureWidth(face, line+ellipsis) <= maxW {
		return line + ellipsis
	}
	runes := []rune(line)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + ellipsis
		if measureWidth(face, candidate) <= maxW {
			return candidate
		}
	}
	return string(runes) + ellipsis
}

func measureBlock(face font.Face, lines []string, size float64) TextLayout {
	layout := TextLayout{
		Size:       size,
		Lines:      lines,
		LineHeight: size * lineSpacing,
	}
	for _, line := range lines {
		if w := measureWidth(face, line); w > layout.Width {
			layout.Width = w
		}
	}
	layout.Height = float64(len(lines)) * layout.LineHeight
	return layout
}

func measureWidth(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
