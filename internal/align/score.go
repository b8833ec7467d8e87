package align

import "strings"

// Score weights: transcript/target word overlap dominates, phoneme coverage
// and mean confidence temper it.
const (
	weightSimilarity = 0.5
	weightCoverage   = 0.3
	weightConfidence = 0.2
)

// Score rates alignment quality in [0,1] from the model transcript, the
// target text, and the aligned phoneme sequence. An empty target scores 0.
func Score(transcript, target string, aligned []PhonemeAlignment) float64 {
	targetWords := wordSet(target)
	if len(targetWords) == 0 {
		return 0.0
	}
	transcribedWords := wordSet(transcript)

	similarity := jaccard(transcribedWords, targetWords)

	// Coverage: aligned phonemes relative to non-space characters of the target.
	chars := len(strings.ReplaceAll(target, " ", ""))
	coverage := float64(len(aligned)) / float64(max(1, chars))
	if coverage > 1.0 {
		coverage = 1.0
	}

	confidence := 0.0
	if len(aligned) > 0 {
		for _, p := range aligned {
			confidence += p.Confidence
		}
		confidence /= float64(len(aligned))
	}

	score := similarity*weightSimilarity + coverage*weightCoverage + confidence*weightConfidence
	return clamp01(score)
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
