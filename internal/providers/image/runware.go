package image

import (
	"context"
	"fmt"

	"pinforge/internal/domain"
	"pinforge/internal/providers/runware"
)

// Pin source images are requested square; the normalizer crops to the pin
// aspect afterwards.
const (
	sourceWidth  = 1024
	sourceHeight = 1024
)

type runwareClient interface {
	GenerateImage(context.Context, runware.ImageRequest) (*runware.ImageAsset, error)
	HasCredentials() bool
	Model() string
}

// RunwareGenerator adapts the Runware client to the Generator contract.
type RunwareGenerator struct {
	client runwareClient
}

// NewRunwareGenerator wraps a configured Runware client.
func NewRunwareGenerator(client runwareClient) *RunwareGenerator {
	return &RunwareGenerator{client: client}
}

// Available reports whether the generator can serve requests.
func (g *RunwareGenerator) Available() bool {
	return g != nil && g.client != nil && g.client.HasCredentials()
}

// Generate fulfils the Generator interface.
func (g *RunwareGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if !g.Available() {
		return nil, fmt.Errorf("%w: generator not configured", domain.ErrGeneration)
	}
	asset, err := g.client.GenerateImage(ctx, runware.ImageRequest{
		Prompt: prompt,
		Width:  sourceWidth,
		Height: sourceHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return asset.Data, nil
}

func (g *RunwareGenerator) String() string {
	if g == nil || g.client == nil {
		return "runware"
	}
	return g.client.Model()
}

var _ Generator = (*RunwareGenerator)(nil)
