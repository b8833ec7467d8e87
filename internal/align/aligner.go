package align

import (
	"strings"

	"github.com/chirp-app/chirp-ai/internal/transcribe"
)

// PhonemeAlignment is one phoneme mapped onto a time span of the audio.
type PhonemeAlignment struct {
	Phoneme    string  `json:"phoneme"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// leftoverDuration is assigned to phonemes that remain after every
// transcribed word has been consumed (rounding drift).
const leftoverDuration = 0.1

// evenConfidence is the confidence assigned when no word-level timing
// backs an alignment.
const evenConfidence = 0.5

// AlignToWords distributes phonemes across word-level timestamps.
//
// This is proportional allocation, not forced alignment: each word receives
// roughly len(phonemes)/len(textWords) phonemes, its time span is divided
// into equal sub-intervals, and every sub-interval carries the word's
// transcription confidence. Phonemes left over after the last word are
// appended in fixed 100ms slices. Without word timestamps the phonemes are
// spread evenly over the whole clip.
func AlignToWords(phonemes []string, words []transcribe.WordTimestamp, originalText string, totalDuration float64) []PhonemeAlignment {
	if len(words) == 0 {
		return DistributeEvenly(phonemes, totalDuration)
	}

	textWords := strings.Fields(strings.ToLower(originalText))
	perWord := len(phonemes) / max(1, len(textWords))

	aligned := make([]PhonemeAlignment, 0, len(phonemes))
	idx := 0

	for wi, w := range words {
		start := w.Start
		end := w.End
		if end <= start {
			end = start + 0.5
		}

		remaining := len(phonemes) - idx
		remainingWords := len(words) - wi

		count := remaining / remainingWords
		if remaining%remainingWords > 0 {
			count++
		}
		if count > perWord {
			count = perWord
		}
		if count <= 0 {
			continue
		}

		slice := (end - start) / float64(count)
		for i := 0; i < count && idx < len(phonemes); i++ {
			ps := start + float64(i)*slice
			aligned = append(aligned, PhonemeAlignment{
				Phoneme:    phonemes[idx],
				Start:      ps,
				End:        ps + slice,
				Confidence: w.Confidence,
			})
			idx++
		}
	}

	// Rounding drift: append whatever is left in fixed 100ms slices after
	// the last aligned segment.
	for idx < len(phonemes) {
		last := 0.0
		if len(aligned) > 0 {
			last = aligned[len(aligned)-1].End
		}
		aligned = append(aligned, PhonemeAlignment{
			Phoneme:    phonemes[idx],
			Start:      last,
			End:        last + leftoverDuration,
			Confidence: evenConfidence,
		})
		idx++
	}

	return aligned
}

// DistributeEvenly splits totalDuration into len(phonemes) equal slices.
// The resulting spans partition [0, totalDuration] with no gaps or overlaps.
func DistributeEvenly(phonemes []string, totalDuration float64) []PhonemeAlignment {
	if len(phonemes) == 0 {
		return []PhonemeAlignment{}
	}

	slice := totalDuration / float64(len(phonemes))
	aligned := make([]PhonemeAlignment, len(phonemes))
	for i, p := range phonemes {
		start := float64(i) * slice
		aligned[i] = PhonemeAlignment{
			Phoneme:    p,
			Start:      start,
			End:        start + slice,
			Confidence: evenConfidence,
		}
	}
	return aligned
}
