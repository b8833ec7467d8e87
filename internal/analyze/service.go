package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/align"
	"github.com/chirp-app/chirp-ai/internal/audio"
	"github.com/chirp-app/chirp-ai/internal/face"
	"github.com/chirp-app/chirp-ai/internal/facemesh"
	"github.com/chirp-app/chirp-ai/internal/metrics"
	"github.com/chirp-app/chirp-ai/internal/prosody"
	"github.com/chirp-app/chirp-ai/internal/transcribe"
	"github.com/chirp-app/chirp-ai/internal/video"
)

// unprocessableTranscript is the transcript reported when transcription
// fails outright. Kept as text so clients always get a displayable string.
const unprocessableTranscript = "[Audio could not be processed]"

// fallbackDuration stands in when alignment cannot measure the real clip.
const fallbackDuration = 1.0

// landmarkConfidence is a fixed placeholder until the face-mesh sidecar
// reports real per-landmark confidences.
const landmarkConfidence = 0.8

// Service runs the analysis pipelines.
type Service struct {
	provider transcribe.Provider
	prosody  *prosody.Extractor
	mesh     *facemesh.Client
	log      zerolog.Logger
}

// NewService builds the pipeline service. mesh may be nil, in which case
// video analysis reports the no-face result.
func NewService(provider transcribe.Provider, mesh *facemesh.Client, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		prosody:  prosody.NewExtractor(log),
		mesh:     mesh,
		log:      log.With().Str("component", "analyze").Logger(),
	}
}

// Transcribe runs speech-to-text over the media file. Transcription errors
// degrade to a marker transcript at zero confidence rather than failing, so
// the calling surface always has a stable response to hand out.
func (s *Service) Transcribe(ctx context.Context, mediaPath, language string) *STTResult {
	start := time.Now()

	resp, err := s.provider.Transcribe(ctx, mediaPath, transcribe.Opts{Language: language})
	if err != nil {
		s.log.Error().Err(err).Str("path", mediaPath).Msg("transcription failed")
		metrics.AnalysesTotal.WithLabelValues("stt", "degraded").Inc()
		return &STTResult{
			Transcript: unprocessableTranscript,
			Words:      []transcribe.WordTimestamp{},
			Language:   language,
			Confidence: 0.0,
		}
	}

	transcript := strings.TrimSpace(resp.Text)
	words := resp.Words
	if len(words) == 0 {
		words = transcribe.ApproximateWords(transcript, resp.Segments)
	}
	if words == nil {
		words = []transcribe.WordTimestamp{}
	}

	detected := resp.Language
	if detected == "" {
		detected = language
	}

	metrics.AnalysesTotal.WithLabelValues("stt", "ok").Inc()
	metrics.AnalysisDuration.WithLabelValues("stt").Observe(time.Since(start).Seconds())

	return &STTResult{
		Transcript: transcript,
		Words:      words,
		Language:   detected,
		Confidence: transcribe.OverallConfidence(transcript, words),
	}
}

// AnalyzeAudio decodes the media and summarizes its prosody.
func (s *Service) AnalyzeAudio(ctx context.Context, mediaPath string) (*AudioAnalysis, error) {
	start := time.Now()

	samples, err := audio.Decode(ctx, mediaPath)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("audio", "error").Inc()
		return nil, err
	}
	if len(samples) == 0 {
		metrics.AnalysesTotal.WithLabelValues("audio", "error").Inc()
		return nil, fmt.Errorf("analyze audio: empty signal")
	}

	pitch := s.prosody.Pitch(samples, audio.SampleRate)
	energy := s.prosody.Energy(samples, audio.SampleRate)
	rhythm := s.prosody.Rhythm(samples, audio.SampleRate)

	metrics.AnalysesTotal.WithLabelValues("audio", "ok").Inc()
	metrics.AnalysisDuration.WithLabelValues("audio").Observe(time.Since(start).Seconds())

	return &AudioAnalysis{
		PitchMean:    pitch.Mean,
		PitchVar:     pitch.Variance,
		EnergyMean:   energy.Mean,
		SpeakingRate: rhythm.SpeakingRate,
		ToneLabel:    prosody.ClassifyTone(pitch, energy, rhythm),
		ProsodyScore: prosody.Score(pitch, energy, rhythm),
	}, nil
}

// Align maps the target text's phonemes onto the clip's word timings.
// Any stage failure degrades to an even distribution over a nominal
// duration at score 0.5 rather than erroring out.
func (s *Service) Align(ctx context.Context, text, mediaPath string) *AlignmentResult {
	start := time.Now()
	phonemes := align.ExpandPhonemes(text)

	samples, err := audio.Decode(ctx, mediaPath)
	if err != nil {
		s.log.Error().Err(err).Str("path", mediaPath).Msg("alignment decode failed")
		metrics.AnalysesTotal.WithLabelValues("align", "degraded").Inc()
		return &AlignmentResult{
			Phonemes:       align.DistributeEvenly(phonemes, fallbackDuration),
			AlignmentScore: 0.5,
			Duration:       fallbackDuration,
		}
	}
	duration := audio.Duration(samples)

	resp, err := s.provider.Transcribe(ctx, mediaPath, transcribe.Opts{})
	if err != nil {
		s.log.Error().Err(err).Str("path", mediaPath).Msg("alignment transcription failed")
		metrics.AnalysesTotal.WithLabelValues("align", "degraded").Inc()
		return &AlignmentResult{
			Phonemes:       align.DistributeEvenly(phonemes, fallbackDuration),
			AlignmentScore: 0.5,
			Duration:       fallbackDuration,
		}
	}

	aligned := align.AlignToWords(phonemes, resp.Words, text, duration)
	score := align.Score(resp.Text, text, aligned)

	metrics.AnalysesTotal.WithLabelValues("align", "ok").Inc()
	metrics.AnalysisDuration.WithLabelValues("align").Observe(time.Since(start).Seconds())

	return &AlignmentResult{
		Phonemes:       aligned,
		AlignmentScore: score,
		Duration:       duration,
	}
}

// noFaceResult is returned when no frame contains a detectable face.
func noFaceResult() *VideoAnalysis {
	return &VideoAnalysis{
		FaceLandmarks:   nil,
		EyeContactScore: 0.0,
		SmileProb:       0.0,
		Expression:      map[string]float64{face.EmotionNeutral: 1.0},
		Gaze:            map[string]float64{"center": 1.0, "left": 0.0, "right": 0.0},
		Timestamps:      []face.Event{},
	}
}

// AnalyzeVideo samples frames, scores each detected face, and aggregates
// the per-frame scores over the clip.
func (s *Service) AnalyzeVideo(ctx context.Context, mediaPath string) (*VideoAnalysis, error) {
	start := time.Now()

	if s.mesh == nil {
		s.log.Warn().Msg("face-mesh sidecar not configured, reporting no face")
		metrics.AnalysesTotal.WithLabelValues("video", "degraded").Inc()
		return noFaceResult(), nil
	}

	frames, cleanup, err := video.SampleFrames(ctx, mediaPath)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("video", "error").Inc()
		return nil, err
	}
	defer cleanup()

	var (
		eyeScores   []float64
		smileScores []float64
		expressions []map[string]float64
		gazes       []map[string]float64
		events      []face.Event
		detected    int
	)

	for _, frame := range frames {
		landmarks, err := s.mesh.Detect(ctx, frame.Path)
		if err != nil {
			s.log.Warn().Err(err).Float64("ts", frame.Timestamp).Msg("face detection failed for frame")
			continue
		}
		if landmarks == nil {
			continue
		}
		detected++

		eye := landmarks.EyeContactScore()
		smile := landmarks.SmileProbability()

		eyeScores = append(eyeScores, eye)
		smileScores = append(smileScores, smile)
		expressions = append(expressions, landmarks.ClassifyEmotion())
		gazes = append(gazes, landmarks.GazeDirection())
		events = append(events, face.DetectEvents(frame.Timestamp, video.FrameInterval, smile, eye)...)
	}

	if detected == 0 {
		metrics.AnalysesTotal.WithLabelValues("video", "ok").Inc()
		return noFaceResult(), nil
	}

	if events == nil {
		events = []face.Event{}
	}

	metrics.AnalysesTotal.WithLabelValues("video", "ok").Inc()
	metrics.AnalysisDuration.WithLabelValues("video").Observe(time.Since(start).Seconds())

	return &VideoAnalysis{
		FaceLandmarks: &LandmarkSummary{
			TotalFramesAnalyzed: detected,
			AvgConfidence:       landmarkConfidence,
			FaceDetectedRatio:   float64(detected) / float64(max(1, len(frames))),
		},
		EyeContactScore: face.MeanScore(eyeScores),
		SmileProb:       face.MeanScore(smileScores),
		Expression:      face.AggregateExpressions(expressions),
		Gaze:            face.AggregateGaze(gazes),
		Timestamps:      events,
	}, nil
}
