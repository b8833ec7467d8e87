package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/config"
)

func newTestFetcher(t *testing.T, maxBytes int64) *Fetcher {
	t.Helper()
	f, err := NewFetcher(&config.Config{
		FetchTimeout:  5 * time.Second,
		MaxFetchBytes: maxBytes,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	return f
}

func TestSuffixFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"clip.wav", ".wav"},
		{"CLIP.WAV", ".wav"},
		{"https://cdn.example.com/media/clip.mp4?token=abc", ".mp4"},
		{"voice.m4a", ".m4a"},
		{"archive.tar.gz", ".bin"},
		{"noext", ".bin"},
	}
	for _, tt := range tests {
		if got := suffixFor(tt.name); got != tt.want {
			t.Errorf("suffixFor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake media bytes"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, 1<<20)

	path, cleanup, err := f.Fetch(context.Background(), srv.URL+"/clip.wav")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read spooled file: %v", err)
	}
	if string(data) != "fake media bytes" {
		t.Errorf("spooled content = %q", data)
	}
	if !strings.HasSuffix(path, ".wav") {
		t.Errorf("spool path = %q, want .wav suffix", path)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("cleanup left the temp file behind")
	}
}

func TestFetch_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := newTestFetcher(t, 1<<20)

	if _, _, err := f.Fetch(context.Background(), srv.URL+"/missing.wav"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetch_SizeCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 100))
	}))
	defer srv.Close()

	f := newTestFetcher(t, 50)

	if _, _, err := f.Fetch(context.Background(), srv.URL+"/big.wav"); err == nil || !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("error = %v, want byte limit", err)
	}
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	f := newTestFetcher(t, 1<<20)

	if _, _, err := f.Fetch(context.Background(), "ftp://host/clip.wav"); err == nil || !strings.Contains(err.Error(), "unsupported media url scheme") {
		t.Errorf("error = %v, want unsupported scheme", err)
	}
}

func TestFetch_S3NotConfigured(t *testing.T) {
	f := newTestFetcher(t, 1<<20)

	if _, _, err := f.Fetch(context.Background(), "s3://bucket/clip.wav"); err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Errorf("error = %v, want not configured", err)
	}
}

func TestSaveUpload(t *testing.T) {
	f := newTestFetcher(t, 1<<20)

	path, cleanup, err := f.SaveUpload(strings.NewReader("uploaded"), "voice.ogg")
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read spooled file: %v", err)
	}
	if string(data) != "uploaded" {
		t.Errorf("spooled content = %q", data)
	}
	if !strings.HasSuffix(path, ".ogg") {
		t.Errorf("spool path = %q, want .ogg suffix", path)
	}
}
