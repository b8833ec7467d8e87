package prosody

// Score weights. Pitch and rate variation dominate; energy variation and
// the speech/silence balance temper the result.
const (
	weightPitchVar    = 0.3
	weightEnergyVar   = 0.2
	weightRate        = 0.3
	weightSpeechRatio = 0.2

	pitchVarScale  = 1000.0 // pitch variance saturates at this value
	energyVarScale = 0.01   // energy variance saturates at this value

	rateOptimalLow  = 1.5 // syllables/sec band where rate scores 1.0
	rateOptimalHigh = 3.0

	ratioOptimalLow  = 0.5 // speech-ratio band where ratio scores 1.0
	ratioOptimalHigh = 0.8
)

// Score combines pitch, energy, and rhythm features into an overall
// prosody score in [0,1]. Higher variation and a speaking rate inside the
// optimal band score better.
func Score(pitch PitchFeatures, energy EnergyFeatures, rhythm RhythmFeatures) float64 {
	pitchScore := capAt1(pitch.Variance / pitchVarScale)
	energyScore := capAt1(energy.Variance / energyVarScale)

	rate := rhythm.SpeakingRate
	var rateScore float64
	switch {
	case rate >= rateOptimalLow && rate <= rateOptimalHigh:
		rateScore = 1.0
	case rate < rateOptimalLow:
		rateScore = rate / rateOptimalLow
	default:
		rateScore = 1.0 - (rate-rateOptimalHigh)/2.0
		if rateScore < 0 {
			rateScore = 0
		}
	}

	ratio := rhythm.SpeechRatio
	var ratioScore float64
	if ratio >= ratioOptimalLow && ratio <= ratioOptimalHigh {
		ratioScore = 1.0
	} else {
		mid := (ratioOptimalLow + ratioOptimalHigh) / 2
		ratioScore = 1.0 - abs(ratio-mid)/0.35
		if ratioScore < 0 {
			ratioScore = 0
		}
	}

	total := pitchScore*weightPitchVar +
		energyScore*weightEnergyVar +
		rateScore*weightRate +
		ratioScore*weightSpeechRatio

	return capAt1(total)
}

// Tone labels produced by ClassifyTone.
const (
	ToneExcited    = "excited"
	ToneEnergetic  = "energetic"
	ToneMonotone   = "monotone"
	ToneExpressive = "expressive"
	ToneCalm       = "calm"
	ToneAnimated   = "animated"
	ToneNeutral    = "neutral"
)

// ClassifyTone labels the overall delivery with a fixed-priority decision
// tree: high energy with a fast rate wins first, then flat/slow speech,
// then pitch-driven categories, with "neutral" as the residual.
func ClassifyTone(pitch PitchFeatures, energy EnergyFeatures, rhythm RhythmFeatures) string {
	switch {
	case energy.Mean > 0.15 && rhythm.SpeakingRate > 2.5:
		if pitch.Variance > 800 {
			return ToneExcited
		}
		return ToneEnergetic
	case energy.Mean < 0.05 || rhythm.SpeakingRate < 1.0:
		return ToneMonotone
	case pitch.Mean > 200 && pitch.Variance > 500:
		return ToneExpressive
	case rhythm.SpeakingRate < 1.5 && pitch.Variance < 300:
		return ToneCalm
	case pitch.Variance > 1000:
		return ToneAnimated
	default:
		return ToneNeutral
	}
}

func capAt1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
