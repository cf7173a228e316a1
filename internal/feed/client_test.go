package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch_ReturnsBodyAndBustsCache(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/raw/games.txt" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("v"); got != "1772366400000" {
			t.Fatalf("unexpected cache-busting value: %q", got)
		}
		if got := r.URL.Query().Get("keep"); got != "1" {
			t.Fatalf("existing query parameter was dropped: %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Chess|Board game|icon.png|Board|https://example.com/chess.zip\n"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/raw/games.txt?keep=1", ts.Client())
	c.nowFn = func() time.Time { return now }

	body, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.HasPrefix(body, "Chess|") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, ts.Client()).Fetch(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T %v", err, err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", fetchErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestFetch_RejectsNonTextContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, ts.Client()).Fetch(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.ContentType != "image/png" {
		t.Fatalf("expected content type error, got %v", err)
	}
}

func TestFetch_RejectsInvalidUTF8(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, ts.Client()).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "UTF-8") {
		t.Fatalf("expected UTF-8 error, got %v", err)
	}
}

func TestFetch_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewClient(url, nil).Fetch(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T %v", err, err)
	}
	if fetchErr.StatusCode != 0 {
		t.Fatalf("expected no status for transport error, got %d", fetchErr.StatusCode)
	}
}

func TestFetch_HonoursContextCancellation(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(ts.URL, ts.Client()).Fetch(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestFetch_RejectsUnsupportedScheme(t *testing.T) {
	_, err := NewClient("ftp://example.com/games.txt", nil).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unsupported feed URL scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestIsTextContentType(t *testing.T) {
	cases := map[string]bool{
		"":                          true,
		"text/plain":                true,
		"text/plain; charset=utf-8": true,
		"application/octet-stream":  true,
		"application/json":          false,
		"image/png":                 false,
		"not a media type;;":        false,
	}
	for raw, want := range cases {
		if got := isTextContentType(raw); got != want {
			t.Fatalf("isTextContentType(%q) = %v, want %v", raw, got, want)
		}
	}
}
