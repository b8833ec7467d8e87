// Package analyze glues the decode, transcription, prosody, alignment, and
// facial scoring stages into full media pipelines.
package analyze

import (
	"github.com/chirp-app/chirp-ai/internal/align"
	"github.com/chirp-app/chirp-ai/internal/face"
	"github.com/chirp-app/chirp-ai/internal/transcribe"
)

// STTResult is a speech-to-text run over one clip.
type STTResult struct {
	Transcript string                     `json:"transcript"`
	Words      []transcribe.WordTimestamp `json:"words"`
	Language   string                     `json:"language"`
	Confidence float64                    `json:"confidence"`
}

// AudioAnalysis summarizes the prosody of one clip.
type AudioAnalysis struct {
	PitchMean    float64 `json:"pitch_mean"`
	PitchVar     float64 `json:"pitch_var"`
	EnergyMean   float64 `json:"energy_mean"`
	SpeakingRate float64 `json:"speaking_rate"`
	ToneLabel    string  `json:"tone_label"`
	ProsodyScore float64 `json:"prosody_score"`
}

// LandmarkSummary describes detection coverage across the sampled frames.
type LandmarkSummary struct {
	TotalFramesAnalyzed int     `json:"total_frames_analyzed"`
	AvgConfidence       float64 `json:"avg_landmark_confidence"`
	FaceDetectedRatio   float64 `json:"face_detected_ratio"`
}

// VideoAnalysis summarizes facial behavior over one clip.
type VideoAnalysis struct {
	FaceLandmarks   *LandmarkSummary   `json:"face_landmarks"`
	EyeContactScore float64            `json:"eye_contact_score"`
	SmileProb       float64            `json:"smile_prob"`
	Expression      map[string]float64 `json:"expression"`
	Gaze            map[string]float64 `json:"gaze"`
	Timestamps      []face.Event       `json:"timestamps"`
}

// AlignmentResult is a phoneme-level alignment of target text to a clip.
type AlignmentResult struct {
	Phonemes       []align.PhonemeAlignment `json:"phonemes"`
	AlignmentScore float64                  `json:"alignment_score"`
	Duration       float64                  `json:"duration"`
}
