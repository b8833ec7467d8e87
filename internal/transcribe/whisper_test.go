package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFFfake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWhisperClient_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q, want verbose_json", got)
		}
		if got := r.FormValue("language"); got != "en" {
			t.Errorf("language = %q, want en (default)", got)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q, want whisper-1", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file part missing: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "hi bob",
			"language": "en",
			"duration": 1.4,
			"words": [
				{"word": "hi", "start": 0.0, "end": 0.5, "probability": 0.95},
				{"word": "bob", "start": 0.6, "end": 1.2, "probability": 0.9}
			],
			"segments": [{"text": "hi bob", "start": 0.0, "end": 1.4}]
		}`))
	}))
	defer srv.Close()

	wc := NewWhisperClient(srv.URL, "whisper-1", 5*time.Second)
	resp, err := wc.Transcribe(context.Background(), writeTempAudio(t), Opts{})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if resp.Text != "hi bob" {
		t.Errorf("Text = %q, want %q", resp.Text, "hi bob")
	}
	if len(resp.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(resp.Words))
	}
	if resp.Words[1].Word != "bob" || resp.Words[1].Confidence != 0.9 {
		t.Errorf("word 1 = %+v, want bob at 0.9", resp.Words[1])
	}
	if len(resp.Segments) != 1 {
		t.Errorf("got %d segments, want 1", len(resp.Segments))
	}
}

func TestWhisperClient_FlattensSegmentWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "hello world",
			"segments": [{
				"text": "hello world", "start": 0.0, "end": 2.0,
				"words": [
					{"word": "hello", "start": 0.0, "end": 1.0, "probability": 0.8},
					{"word": "world", "start": 1.0, "end": 2.0, "probability": 0.7}
				]
			}]
		}`))
	}))
	defer srv.Close()

	wc := NewWhisperClient(srv.URL, "", 5*time.Second)
	resp, err := wc.Transcribe(context.Background(), writeTempAudio(t), Opts{})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if len(resp.Words) != 2 {
		t.Fatalf("got %d words, want 2 flattened from segments", len(resp.Words))
	}
	if resp.Words[0].Word != "hello" {
		t.Errorf("word 0 = %q, want hello", resp.Words[0].Word)
	}
}

func TestWhisperClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	wc := NewWhisperClient(srv.URL, "whisper-1", 5*time.Second)
	if _, err := wc.Transcribe(context.Background(), writeTempAudio(t), Opts{}); err == nil {
		t.Error("expected error on 503 response, got nil")
	}
}
