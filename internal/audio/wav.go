package audio

import (
	"encoding/binary"
	"fmt"
)

// ParseWAV decodes a RIFF/WAVE byte stream containing 16-bit signed PCM
// and returns the first channel's samples normalized to [-1,1] along with
// the sample rate. Chunks other than fmt and data are skipped.
func ParseWAV(data []byte) ([]float64, int, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("wav: not a RIFF/WAVE stream")
	}

	var (
		sampleRate int
		channels   int
		bitDepth   int
		haveFmt    bool
	)

	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, 0, fmt.Errorf("wav: fmt chunk too short (%d bytes)", chunkSize)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, 0, fmt.Errorf("wav: unsupported format code %d, want PCM", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitDepth = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, 0, fmt.Errorf("wav: data chunk before fmt chunk")
			}
			if bitDepth != 16 {
				return nil, 0, fmt.Errorf("wav: unsupported bit depth %d, want 16", bitDepth)
			}
			if channels < 1 {
				return nil, 0, fmt.Errorf("wav: invalid channel count %d", channels)
			}
			frameSize := 2 * channels
			frames := chunkSize / frameSize
			samples := make([]float64, frames)
			for i := 0; i < frames; i++ {
				raw := int16(binary.LittleEndian.Uint16(data[body+i*frameSize : body+i*frameSize+2]))
				samples[i] = float64(raw) / 32768.0
			}
			return samples, sampleRate, nil
		}

		// Chunks are word-aligned; odd sizes carry a pad byte.
		pos = body + chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}

	return nil, 0, fmt.Errorf("wav: no data chunk found")
}
