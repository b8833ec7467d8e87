package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/analyze"
	"github.com/chirp-app/chirp-ai/internal/config"
	"github.com/chirp-app/chirp-ai/internal/media"
	"github.com/chirp-app/chirp-ai/internal/transcribe"
)

func TestUploadName(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        string
	}{
		{"clip.webm", "video/webm", "clip.webm"},
		{"voice", "audio/wav", "upload.wav"},
		{"voice", "video/mp4", "upload.mp4"},
		{"", "audio/mpeg", "upload.wav"},
	}
	for _, tt := range tests {
		if got := uploadName(tt.filename, tt.contentType); got != tt.want {
			t.Errorf("uploadName(%q, %q) = %q, want %q", tt.filename, tt.contentType, got, tt.want)
		}
	}
}

func TestFormValue_QueryFallback(t *testing.T) {
	form := url.Values{"language": {"fr"}}
	req := httptest.NewRequest(http.MethodPost, "/stt/upload", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if got := formValue(req, "language"); got != "fr" {
		t.Errorf("form field = %q, want fr", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/stt/upload?language=de", nil)
	if got := formValue(req, "language"); got != "de" {
		t.Errorf("query fallback = %q, want de", got)
	}
}

func TestHandleGenerate(t *testing.T) {
	h := NewHandlers(nil, nil, 0, zerolog.Nop())

	body := `{"text":"Meeting a new friend","difficulty":2,"tags":["greeting"],"target_age":8}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))

	h.HandleGenerate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Script struct {
			Title      string `json:"title"`
			Difficulty int    `json:"difficulty"`
			Steps      []struct {
				ID string `json:"id"`
			} `json:"steps"`
		} `json:"script_json"`
		Rubric struct {
			Levels map[string]json.RawMessage `json:"levels"`
		} `json:"rubric_json"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Script.Title != "Meeting a New Friend" {
		t.Errorf("title = %q", resp.Script.Title)
	}
	if resp.Script.Difficulty != 2 {
		t.Errorf("difficulty = %d, want 2", resp.Script.Difficulty)
	}
	if len(resp.Script.Steps) != 5 {
		t.Errorf("got %d steps, want 5", len(resp.Script.Steps))
	}
	if len(resp.Rubric.Levels) != 5 {
		t.Errorf("got %d rubric levels, want 5", len(resp.Rubric.Levels))
	}
}

func TestHandleGenerate_Validation(t *testing.T) {
	h := NewHandlers(nil, nil, 0, zerolog.Nop())

	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{"difficulty":1}`},
		{"malformed json", `{nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(tt.body))
			h.HandleGenerate(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleSTTLanguages(t *testing.T) {
	h := NewHandlers(nil, nil, 0, zerolog.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stt/languages", nil)
	h.HandleSTTLanguages(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Supported  map[string]string `json:"supported_languages"`
		Default    string            `json:"default"`
		AutoDetect bool              `json:"auto_detect_available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Supported) != 13 {
		t.Errorf("got %d languages, want 13", len(resp.Supported))
	}
	if resp.Supported["en"] != "English" || resp.Supported["auto"] != "Auto-detect" {
		t.Errorf("languages = %v", resp.Supported)
	}
	if resp.Default != "en" || !resp.AutoDetect {
		t.Errorf("default = %q, auto = %v", resp.Default, resp.AutoDetect)
	}
}

// multipartFile builds a multipart body with one "file" part carrying the
// given content type.
func multipartFile(t *testing.T, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="clip"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("media bytes"))
	mw.Close()

	return &buf, mw.FormDataContentType()
}

type staticProvider struct{}

func (staticProvider) Transcribe(ctx context.Context, audioPath string, opts transcribe.Opts) (*transcribe.Response, error) {
	return &transcribe.Response{Text: "hello", Language: "en"}, nil
}

func (staticProvider) Name() string  { return "static" }
func (staticProvider) Model() string { return "static" }

func TestHandleAnalyzeVideoUpload_RejectsAudio(t *testing.T) {
	h := NewHandlers(nil, nil, 1<<20, zerolog.Nop())

	body, ctype := multipartFile(t, "audio/wav")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze/video/upload", body)
	req.Header.Set("Content-Type", ctype)

	h.HandleAnalyzeVideoUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "file must be video" {
		t.Errorf("error = %q, want %q", resp.Error, "file must be video")
	}
}

func TestHandleSTTUpload_RejectsNonMedia(t *testing.T) {
	h := NewHandlers(nil, nil, 1<<20, zerolog.Nop())

	body, ctype := multipartFile(t, "text/plain")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stt/upload", body)
	req.Header.Set("Content-Type", ctype)

	h.HandleSTTUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "file must be audio or video" {
		t.Errorf("error = %q, want %q", resp.Error, "file must be audio or video")
	}
}

func TestHandleSTTUpload_AcceptsAudio(t *testing.T) {
	fetcher, err := media.NewFetcher(&config.Config{
		FetchTimeout:  time.Second,
		MaxFetchBytes: 1 << 20,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFetcher: %v", err)
	}
	svc := analyze.NewService(staticProvider{}, nil, zerolog.Nop())
	h := NewHandlers(svc, fetcher, 1<<20, zerolog.Nop())

	body, ctype := multipartFile(t, "audio/wav")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stt/upload", body)
	req.Header.Set("Content-Type", ctype)

	h.HandleSTTUpload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Transcript string `json:"transcript"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Transcript != "hello" {
		t.Errorf("transcript = %q, want hello", resp.Transcript)
	}
}

func TestHealthHandler_Checks(t *testing.T) {
	pool := analyze.NewPool(analyze.PoolOptions{Log: zerolog.Nop()})
	h := NewHealthHandler(pool, nil, nil, true, "1.2.3", time.Now())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(rec, req)

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Version != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", resp.Version)
	}
	for _, key := range []string{"whisper", "sox", "ffmpeg", "facemesh", "mqtt"} {
		if _, ok := resp.Checks[key]; !ok {
			t.Errorf("checks missing %q: %v", key, resp.Checks)
		}
	}
	if resp.Checks["facemesh"] != "configured" {
		t.Errorf("facemesh check = %q, want configured", resp.Checks["facemesh"])
	}
	if resp.Checks["mqtt"] != "not_configured" {
		t.Errorf("mqtt check = %q, want not_configured", resp.Checks["mqtt"])
	}
	if resp.Watcher != nil {
		t.Errorf("watcher = %+v, want omitted", resp.Watcher)
	}

	switch resp.Status {
	case "healthy", "degraded", "unhealthy":
	default:
		t.Errorf("status = %q", resp.Status)
	}
	// Status and HTTP code agree.
	if (resp.Status == "unhealthy") != (rec.Code == http.StatusServiceUnavailable) {
		t.Errorf("status %q with HTTP %d", resp.Status, rec.Code)
	}
}
