// Package prosody extracts pitch, energy, and rhythm features from mono
// 16kHz audio and scores the expressiveness of speech. Every extractor
// degrades to a documented neutral default instead of failing: analysis of
// a request must never abort because one feature could not be computed.
package prosody

// PitchFeatures summarizes fundamental-frequency statistics over the voiced
// frames of a clip.
type PitchFeatures struct {
	Mean        float64 `json:"mean"`         // Hz
	Variance    float64 `json:"variance"`     // Hz^2
	Range       float64 `json:"range"`        // max - min, Hz
	VoicedRatio float64 `json:"voiced_ratio"` // voiced frames / total frames
}

// EnergyFeatures summarizes frame-wise RMS energy and spectral shape.
type EnergyFeatures struct {
	Mean                 float64 `json:"mean"`
	Variance             float64 `json:"variance"`
	SpectralCentroidMean float64 `json:"spectral_centroid_mean"` // Hz
	ZeroCrossingRate     float64 `json:"zero_crossing_rate"`
}

// RhythmFeatures summarizes onset timing and the speech/silence balance.
type RhythmFeatures struct {
	SpeakingRate     float64 `json:"speaking_rate"` // onsets per second
	AvgInterval      float64 `json:"avg_interval"`  // mean inter-onset gap, seconds
	IntervalVariance float64 `json:"interval_variance"`
	SpeechRatio      float64 `json:"speech_ratio"` // frames above the silence threshold
}

// Neutral defaults substituted when an extractor cannot run at all
// (empty signal, bad sample rate). These are distinct from the
// "no voiced frames" pitch result, which is a valid computed outcome.
func degradedPitch() PitchFeatures {
	return PitchFeatures{Mean: 150.0, Variance: 100.0, Range: 50.0, VoicedRatio: 0.5}
}

func degradedEnergy() EnergyFeatures {
	return EnergyFeatures{Mean: 0.1, Variance: 0.01, SpectralCentroidMean: 2000.0, ZeroCrossingRate: 0.1}
}

func degradedRhythm() RhythmFeatures {
	return RhythmFeatures{SpeakingRate: 2.0, AvgInterval: 0.5, IntervalVariance: 0.1, SpeechRatio: 0.7}
}

// unvoicedPitch is returned when the clip contains no voiced frames:
// a flat 150Hz speaker with zero variation.
func unvoicedPitch() PitchFeatures {
	return PitchFeatures{Mean: 150.0, Variance: 0.0, Range: 0.0, VoicedRatio: 0.0}
}
