package image

import "context"

// Generator produces raw image bytes from a text prompt. Implementations
// talk to a remote inference API; the composition engine never does.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Fetcher downloads raw image bytes from a plain URL source.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
