// Package video samples frames from a video file for facial analysis.
// Sampling shells out to ffmpeg; frames come back as JPEG files in a
// temporary directory the caller releases via the returned cleanup.
package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
)

// FrameRate is the sampling rate in frames per second. Facial scores are
// slow-moving signals; 5 samples a second is plenty.
const FrameRate = 5.0

// FrameInterval is the time each sampled frame covers.
const FrameInterval = 1.0 / FrameRate

// Frame is one sampled video frame on disk.
type Frame struct {
	Path      string
	Timestamp float64
}

// ffmpegAvailable caches whether ffmpeg is in PATH (checked once at startup).
var ffmpegAvailable atomic.Pointer[bool]

// CheckFFmpeg checks if ffmpeg is available in PATH. Call once at startup.
func CheckFFmpeg() bool {
	if avail := ffmpegAvailable.Load(); avail != nil {
		return *avail
	}
	_, err := exec.LookPath("ffmpeg")
	avail := err == nil
	ffmpegAvailable.Store(&avail)
	return avail
}

// SampleFrames extracts frames from the video at FrameRate as JPEGs.
// Returns the frames in time order and a cleanup that removes them.
func SampleFrames(ctx context.Context, videoPath string) ([]Frame, func(), error) {
	noop := func() {}

	if !CheckFFmpeg() {
		return nil, noop, fmt.Errorf("sample %s: ffmpeg not found in PATH", filepath.Base(videoPath))
	}

	dir, err := os.MkdirTemp("", "chirp-ai-frames-")
	if err != nil {
		return nil, noop, fmt.Errorf("sample frames: create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	pattern := filepath.Join(dir, "frame_%05d.jpg")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%g", FrameRate),
		"-q:v", "4",
		pattern,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("ffmpeg sample %s: %w: %s", filepath.Base(videoPath), err, out)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("sample frames: read temp dir: %w", err)
	}

	frames := make([]Frame, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "frame_") || !strings.HasSuffix(name, ".jpg") {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "frame_"), ".jpg"))
		if err != nil {
			continue
		}
		// ffmpeg numbers output frames from 1.
		frames = append(frames, Frame{
			Path:      filepath.Join(dir, name),
			Timestamp: float64(seq-1) * FrameInterval,
		})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Timestamp < frames[j].Timestamp })

	return frames, cleanup, nil
}
