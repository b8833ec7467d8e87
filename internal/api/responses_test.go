package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 3})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q, want application/json", got)
	}

	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["n"] != 3 {
		t.Errorf("body = %v", body)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "bad input")

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "bad input" || body.Detail != "" {
		t.Errorf("body = %+v", body)
	}

	// The detail field only appears when set.
	if strings.Contains(rec.Body.String(), "detail") {
		t.Errorf("empty detail serialized: %s", rec.Body.String())
	}
}

func TestWriteErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorDetail(rec, http.StatusBadRequest, "bad input", "field x missing")

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "bad input" || body.Detail != "field x missing" {
		t.Errorf("body = %+v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hello"}`))

	var v struct {
		Text string `json:"text"`
	}
	if err := DecodeJSON(req, &v); err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	if v.Text != "hello" {
		t.Errorf("Text = %q, want hello", v.Text)
	}

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	if err := DecodeJSON(bad, &v); err == nil {
		t.Error("malformed body decoded without error")
	}
}
