package face

// Emotion labels produced by ClassifyEmotion.
const (
	EmotionHappy      = "happy"
	EmotionNeutral    = "neutral"
	EmotionConfused   = "confused"
	EmotionFrustrated = "frustrated"
	EmotionExcited    = "excited"
)

// NeutralEmotion is the fallback distribution when landmarks cannot
// support classification.
func NeutralEmotion() map[string]float64 {
	return map[string]float64{
		EmotionHappy:      0.2,
		EmotionNeutral:    0.6,
		EmotionConfused:   0.1,
		EmotionFrustrated: 0.05,
		EmotionExcited:    0.05,
	}
}

// ClassifyEmotion produces a five-way emotion distribution from three
// geometric features: mouth-shape smile score, eye openness, and
// eyebrow-to-eye distance. Each emotion is a fixed formula over those
// features; the result is renormalized to sum to 1.
func (ls LandmarkSet) ClassifyEmotion() map[string]float64 {
	if !ls.has(idxMouthLeft, idxMouthRight, idxLipTop, idxLipBottom) {
		return NeutralEmotion()
	}

	smile := ls.mouthRatioScore()
	eyeOpen := ls.eyeOpenness()
	browHeight := ls.eyebrowHeight()

	emotions := map[string]float64{
		EmotionHappy:    maxf(0, smile),
		EmotionConfused: maxf(0, 0.5-smile-eyeOpen),
	}

	if smile < 0.3 && eyeOpen > 0.3 {
		emotions[EmotionNeutral] = 0.5
	} else {
		emotions[EmotionNeutral] = 0.2
	}

	if smile < 0.3 {
		emotions[EmotionFrustrated] = maxf(0, browHeight-0.5)
	} else {
		emotions[EmotionFrustrated] = 0.1
	}

	if smile > 0.4 {
		emotions[EmotionExcited] = minf(1, smile*eyeOpen*2)
	} else {
		emotions[EmotionExcited] = 0.1
	}

	return Renormalize(emotions)
}

// mouthRatioScore is the emotion classifier's smile feature: pure
// width/height ratio, normalized so ratio 3 scores 0 and ratio 5 scores 1.
// Deliberately stricter than SmileProbability, which also credits corner
// elevation.
func (ls LandmarkSet) mouthRatioScore() float64 {
	width := dist(ls[idxMouthRight], ls[idxMouthLeft])
	height := dist(ls[idxLipBottom], ls[idxLipTop])
	if height <= 0 {
		return 0.0
	}
	return clamp01((width/height - 3.0) / 2.0)
}

// eyeOpenness averages the eye-aspect-ratio of both eyes, scaled so a
// typical open eye lands mid-range.
func (ls LandmarkSet) eyeOpenness() float64 {
	left := ls.eyeAspectRatio(leftEyeEAR)
	right := ls.eyeAspectRatio(rightEyeEAR)
	return clamp01((left + right) / 2.0 * 3)
}

// eyeAspectRatio computes (|p1-p5| + |p2-p4|) / (2·|p0-p3|) for one eye
// contour: vertical lid distances over the horizontal corner distance.
func (ls LandmarkSet) eyeAspectRatio(eye [6]int) float64 {
	if !ls.has(eye[:]...) {
		return 0.0
	}
	a := dist(ls[eye[1]], ls[eye[5]])
	b := dist(ls[eye[2]], ls[eye[4]])
	c := dist(ls[eye[0]], ls[eye[3]])
	if c <= 0 {
		return 0.0
	}
	return (a + b) / (2.0 * c)
}

// eyebrowHeight measures brow elevation as the mean distance from each
// mid-brow point to its same-side outer eye corner, scaled to [0,1].
// Raised brows read as surprise or concern.
func (ls LandmarkSet) eyebrowHeight() float64 {
	if !ls.has(idxLeftBrow, idxLeftEyeOuter, idxRightBrow, idxRightEyeInner) {
		return 0.5
	}
	left := dist(ls[idxLeftBrow], ls[idxLeftEyeOuter])
	right := dist(ls[idxRightBrow], ls[idxRightEyeInner])
	return clamp01((left + right) / 2.0 * 10)
}

// Renormalize scales a distribution so its values sum to 1. An all-zero
// distribution is returned unchanged.
func Renormalize(dist map[string]float64) map[string]float64 {
	total := 0.0
	for _, v := range dist {
		total += v
	}
	if total <= 0 {
		return dist
	}
	for k, v := range dist {
		dist[k] = v / total
	}
	return dist
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
