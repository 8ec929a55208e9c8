package image

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pinforge/internal/domain"
)

func TestFetchDownloadsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())
	data, err := f.Fetch(context.Background(), srv.URL+"/photo.jpg")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("data = %q", data)
	}
}

func TestFetchRejectsNonHTTPScheme(t *testing.T) {
	f := NewHTTPFetcher(nil)
	for _, raw := range []string{"ftp://example.com/a.jpg", "file:///etc/passwd", "not a url"} {
		if _, err := f.Fetch(context.Background(), raw); !errors.Is(err, domain.ErrFetch) {
			t.Errorf("Fetch(%q) err = %v, want ErrFetch", raw, err)
		}
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())
	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.jpg"); !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
}
