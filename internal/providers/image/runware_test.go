package image

import (
	"context"
	"errors"
	"testing"

	"pinforge/internal/domain"
	"pinforge/internal/providers/runware"
)

type fakeRunware struct {
	asset *runware.ImageAsset
	err   error
	creds bool
	req   runware.ImageRequest
}

func (f *fakeRunware) GenerateImage(ctx context.Context, req runware.ImageRequest) (*runware.ImageAsset, error) {
	f.req = req
	return f.asset, f.err
}

func (f *fakeRunware) HasCredentials() bool { return f.creds }
func (f *fakeRunware) Model() string        { return "fake:model@1" }

func TestRunwareGeneratorRequestsSquareSource(t *testing.T) {
	client := &fakeRunware{creds: true, asset: &runware.ImageAsset{Data: []byte("jpeg")}}
	g := NewRunwareGenerator(client)

	data, err := g.Generate(context.Background(), "a lighthouse at dusk")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(data) != "jpeg" {
		t.Fatalf("data = %q", data)
	}
	if client.req.Width != sourceWidth || client.req.Height != sourceHeight {
		t.Fatalf("requested %dx%d, want %dx%d",
			client.req.Width, client.req.Height, sourceWidth, sourceHeight)
	}
	if client.req.Prompt != "a lighthouse at dusk" {
		t.Fatalf("prompt = %q", client.req.Prompt)
	}
}

func TestRunwareGeneratorWrapsClientErrors(t *testing.T) {
	client := &fakeRunware{creds: true, err: errors.New("upstream down")}
	g := NewRunwareGenerator(client)

	if _, err := g.Generate(context.Background(), "anything"); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want ErrGeneration", err)
	}
}

func TestRunwareGeneratorUnavailableWithoutCredentials(t *testing.T) {
	g := NewRunwareGenerator(&fakeRunware{creds: false})
	if g.Available() {
		t.Fatal("Available() = true without credentials")
	}
	if _, err := g.Generate(context.Background(), "anything"); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("err = %v, want ErrGeneration", err)
	}
}
