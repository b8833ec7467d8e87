package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// WhisperClient calls an OpenAI-compatible /v1/audio/transcriptions endpoint.
type WhisperClient struct {
	url     string
	model   string
	timeout time.Duration
	client  *http.Client
}

// whisperResponse is the verbose_json payload from the Whisper API.
type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Words    []struct {
		Word        string  `json:"word"`
		Start       float64 `json:"start"`
		End         float64 `json:"end"`
		Probability float64 `json:"probability"`
	} `json:"words"`
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Words []struct {
			Word        string  `json:"word"`
			Start       float64 `json:"start"`
			End         float64 `json:"end"`
			Probability float64 `json:"probability"`
		} `json:"words"`
	} `json:"segments"`
}

// NewWhisperClient creates a new Whisper HTTP client.
func NewWhisperClient(url, model string, timeout time.Duration) *WhisperClient {
	return &WhisperClient{
		url:     url,
		model:   model,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

func (wc *WhisperClient) Name() string  { return "whisper" }
func (wc *WhisperClient) Model() string { return wc.model }

// Transcribe sends an audio file to the Whisper API and returns the result.
// Uses multipart/form-data with verbose_json and word-level timestamp
// granularity, so it works with speaches, faster-whisper-server, or any
// OpenAI-compatible endpoint. When the top-level word list is absent, words
// nested inside segments are flattened; segment spans are always carried so
// callers can approximate word timing when no word data exists at all.
func (wc *WhisperClient) Transcribe(ctx context.Context, audioPath string, opts Opts) (*Response, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy audio data: %w", err)
	}

	if wc.model != "" {
		w.WriteField("model", wc.model)
	}

	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	w.WriteField("language", lang)
	w.WriteField("temperature", fmt.Sprintf("%.2f", opts.Temperature))
	w.WriteField("response_format", "verbose_json")
	w.WriteField("timestamp_granularities[]", "word")
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wc.url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := wc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper API error (status %d): %s", resp.StatusCode, string(body))
	}

	var raw whisperResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := &Response{
		Text:     raw.Text,
		Language: raw.Language,
		Duration: raw.Duration,
	}

	for _, wd := range raw.Words {
		out.Words = append(out.Words, WordTimestamp{
			Word:       wd.Word,
			Start:      wd.Start,
			End:        wd.End,
			Confidence: wd.Probability,
		})
	}

	for _, seg := range raw.Segments {
		out.Segments = append(out.Segments, Segment{
			Text:  seg.Text,
			Start: seg.Start,
			End:   seg.End,
		})
		if len(raw.Words) == 0 {
			for _, wd := range seg.Words {
				out.Words = append(out.Words, WordTimestamp{
					Word:       wd.Word,
					Start:      wd.Start,
					End:        wd.End,
					Confidence: wd.Probability,
				})
			}
		}
	}

	return out, nil
}
