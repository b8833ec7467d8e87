package transcribe

import "strings"

// approxConfidence is assigned to words whose timing was interpolated from
// segment spans rather than reported by the model.
const approxConfidence = 0.8

// ApproximateWords builds word-level timestamps from segment spans when the
// provider omits word timing. Each segment's duration is split evenly across
// its whitespace-separated words, all carrying a fixed 0.8 confidence.
// Returns nil when there is nothing to approximate from.
func ApproximateWords(transcript string, segments []Segment) []WordTimestamp {
	if transcript == "" || len(segments) == 0 {
		return nil
	}

	var words []WordTimestamp
	for _, seg := range segments {
		fields := strings.Fields(strings.TrimSpace(seg.Text))
		if len(fields) == 0 {
			continue
		}

		end := seg.End
		if end <= seg.Start {
			end = seg.Start + 1.0
		}
		perWord := (end - seg.Start) / float64(len(fields))

		for i, w := range fields {
			start := seg.Start + float64(i)*perWord
			words = append(words, WordTimestamp{
				Word:       w,
				Start:      start,
				End:        start + perWord,
				Confidence: approxConfidence,
			})
		}
	}
	return words
}

// OverallConfidence averages per-word confidence. With no words it reports
// 1.0 for a non-empty transcript and 0.0 otherwise.
func OverallConfidence(transcript string, words []WordTimestamp) float64 {
	if len(words) == 0 {
		if transcript != "" {
			return 1.0
		}
		return 0.0
	}
	sum := 0.0
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}
