// Package audio decodes arbitrary media into 16kHz mono PCM samples for
// the prosody and alignment pipelines. Decoding shells out to sox; the
// resulting WAV is parsed in-process.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
)

// SampleRate is the rate every decoded signal is resampled to.
const SampleRate = 16000

// soxAvailable caches whether sox is in PATH (checked once at startup).
var soxAvailable atomic.Pointer[bool]

// CheckSox checks if sox is available in PATH. Call once at startup.
func CheckSox() bool {
	if avail := soxAvailable.Load(); avail != nil {
		return *avail
	}
	_, err := exec.LookPath("sox")
	avail := err == nil
	soxAvailable.Store(&avail)
	return avail
}

// Decode converts the media at inputPath to 16kHz mono 16-bit PCM via sox
// and returns the samples normalized to [-1,1]. The intermediate WAV is
// removed before returning.
func Decode(ctx context.Context, inputPath string) ([]float64, error) {
	if !CheckSox() {
		return nil, fmt.Errorf("decode %s: sox not found in PATH", filepath.Base(inputPath))
	}

	tmp, err := os.CreateTemp("", "chirp-ai-decode-*.wav")
	if err != nil {
		return nil, fmt.Errorf("decode: create temp: %w", err)
	}
	outPath := tmp.Name()
	tmp.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, "sox",
		inputPath, "-b", "16", "-e", "signed-integer", outPath,
		"rate", fmt.Sprintf("%d", SampleRate),
		"channels", "1",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("sox decode %s: %w: %s", filepath.Base(inputPath), err, out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("decode: read output: %w", err)
	}

	samples, _, err := ParseWAV(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(inputPath), err)
	}
	return samples, nil
}

// Duration returns the signal length in seconds at the standard rate.
func Duration(samples []float64) float64 {
	return float64(len(samples)) / float64(SampleRate)
}
