package api

import (
	"net/http"
	"time"

	"github.com/chirp-app/chirp-ai/internal/analyze"
	"github.com/chirp-app/chirp-ai/internal/audio"
	"github.com/chirp-app/chirp-ai/internal/events"
	"github.com/chirp-app/chirp-ai/internal/video"
	"github.com/chirp-app/chirp-ai/internal/watch"
)

type HealthResponse struct {
	Status        string             `json:"status"`
	Version       string             `json:"version"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	Checks        map[string]string  `json:"checks"`
	Queue         analyze.QueueStats `json:"queue"`
	Watcher       *watch.Status      `json:"watcher,omitempty"`
}

type HealthHandler struct {
	pool        *analyze.Pool
	pub         *events.Publisher
	watcher     *watch.Watcher
	hasFaceMesh bool
	version     string
	startTime   time.Time
}

func NewHealthHandler(pool *analyze.Pool, pub *events.Publisher, watcher *watch.Watcher, hasFaceMesh bool, version string, startTime time.Time) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		pub:         pub,
		watcher:     watcher,
		hasFaceMesh: hasFaceMesh,
		version:     version,
		startTime:   startTime,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	// Whisper is required configuration; the service does not start without it.
	checks["whisper"] = "configured"

	// Decoder check: the audio pipelines cannot run without sox.
	if audio.CheckSox() {
		checks["sox"] = "ok"
	} else {
		checks["sox"] = "missing"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	// Frame sampler check: only the video pipeline needs ffmpeg.
	if video.CheckFFmpeg() {
		checks["ffmpeg"] = "ok"
	} else {
		checks["ffmpeg"] = "missing"
		if status == "healthy" {
			status = "degraded"
		}
	}

	if h.hasFaceMesh {
		checks["facemesh"] = "configured"
	} else {
		checks["facemesh"] = "not_configured"
		if status == "healthy" {
			status = "degraded"
		}
	}

	// MQTT check
	if h.pub != nil {
		if h.pub.IsConnected() {
			checks["mqtt"] = "ok"
		} else {
			checks["mqtt"] = "disconnected"
			if status == "healthy" {
				status = "degraded"
			}
		}
	} else {
		checks["mqtt"] = "not_configured"
	}

	resp := HealthResponse{
		Status:        status,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        checks,
		Queue:         h.pool.Stats(),
	}

	if h.watcher != nil {
		ws := h.watcher.Stats()
		resp.Watcher = &ws
		checks["watcher"] = ws.Status
	}

	WriteJSON(w, httpStatus, resp)
}
