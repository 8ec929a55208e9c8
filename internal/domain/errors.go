package domain

import "errors"

var (
	ErrEmptyTitle         = errors.New("title is required")
	ErrDecode             = errors.New("image decode failed")
	ErrFontLoad           = errors.New("font load failed")
	ErrStyleNotRecognized = errors.New("style not recognized")
	ErrEncode             = errors.New("image encode failed")
	ErrFetch              = errors.New("image fetch failed")
	ErrGeneration         = errors.New("image generation failed")
)
