// Package facemesh calls a face-mesh sidecar service that turns a single
// image into a 468-point landmark set.
package facemesh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chirp-app/chirp-ai/internal/face"
)

// Client calls the face-mesh sidecar's /v1/landmarks endpoint.
type Client struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// meshResponse is the sidecar payload: at most one detected face per image.
type meshResponse struct {
	Faces [][]struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"faces"`
}

// NewClient creates a new face-mesh HTTP client.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Detect sends a JPEG frame to the sidecar and returns the landmark set of
// the first detected face, or (nil, nil) when no face is present.
func (c *Client) Detect(ctx context.Context, imagePath string) (face.LandmarkSet, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, f)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face-mesh request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("face-mesh API error (status %d) for %s: %s",
			resp.StatusCode, filepath.Base(imagePath), bytes.TrimSpace(body))
	}

	var raw meshResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(raw.Faces) == 0 || len(raw.Faces[0]) == 0 {
		return nil, nil
	}

	landmarks := make(face.LandmarkSet, len(raw.Faces[0]))
	for i, p := range raw.Faces[0] {
		landmarks[i] = face.Point{X: p.X, Y: p.Y, Z: p.Z}
	}
	return landmarks, nil
}
