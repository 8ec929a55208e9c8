package image

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"pinforge/internal/domain"
)

// maxFetchBytes caps the size of a downloaded source image.
const maxFetchBytes = 20 << 20

// HTTPFetcher downloads source images from plain URLs.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds a fetcher with a bounded request timeout.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{client: client}
}

// Fetch fulfils the Fetcher interface. Failures are wrapped as ErrFetch so
// the handler can report them as an upstream problem.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: unsupported url %q", domain.ErrFetch, rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", domain.ErrFetch, resp.StatusCode, u.Host)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	if len(data) > maxFetchBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", domain.ErrFetch, maxFetchBytes)
	}
	return data, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
