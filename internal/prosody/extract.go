package prosody

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/metrics"
)

// Pitch search band: roughly musical C2..C7, covering any human voice.
const (
	pitchMinHz = 65.0
	pitchMaxHz = 2093.0

	// A frame counts as voiced when its normalized autocorrelation peak
	// clears this threshold and it carries non-trivial energy.
	voicedThreshold = 0.3
	voicedRMSFloor  = 1e-4
)

// Extractor computes prosody features, logging whenever a stage degrades to
// its neutral default.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor returns an Extractor that logs degradations to log.
func NewExtractor(log zerolog.Logger) *Extractor {
	return &Extractor{log: log.With().Str("component", "prosody").Logger()}
}

// Pitch estimates fundamental-frequency statistics over voiced frames only.
// A clip with no voiced frames reports a flat 150Hz default; an unusable
// signal degrades to the documented neutral feature set.
func (e *Extractor) Pitch(y []float64, sampleRate int) PitchFeatures {
	if len(y) == 0 || sampleRate <= 0 {
		e.degrade("pitch")
		return degradedPitch()
	}

	minLag := int(float64(sampleRate) / pitchMaxHz)
	maxLag := int(float64(sampleRate) / pitchMinHz)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= frameLength {
		maxLag = frameLength - 1
	}

	n := frameCount(len(y))
	var voiced []float64
	for i := 0; i < n; i++ {
		frame := frameAt(y, i)
		if f0, ok := frameF0(frame, sampleRate, minLag, maxLag); ok {
			voiced = append(voiced, f0)
		}
	}

	if len(voiced) == 0 {
		return unvoicedPitch()
	}

	lo, hi := voiced[0], voiced[0]
	for _, f := range voiced {
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}

	return PitchFeatures{
		Mean:        mean(voiced),
		Variance:    variance(voiced),
		Range:       hi - lo,
		VoicedRatio: float64(len(voiced)) / float64(n),
	}
}

// frameF0 picks the strongest autocorrelation lag inside the pitch band.
// Returns false for unvoiced frames.
func frameF0(frame []float64, sampleRate, minLag, maxLag int) (float64, bool) {
	rms := 0.0
	for _, v := range frame {
		rms += v * v
	}
	rms = math.Sqrt(rms / float64(len(frame)))
	if rms < voicedRMSFloor {
		return 0, false
	}

	bestLag, bestCorr := 0, voicedThreshold
	for lag := minLag; lag <= maxLag; lag++ {
		if c := autocorrelate(frame, lag); c > bestCorr {
			bestCorr = c
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return 0, false
	}
	return float64(sampleRate) / float64(bestLag), true
}

// Energy computes frame-wise RMS statistics, mean spectral centroid, and
// mean zero-crossing rate.
func (e *Extractor) Energy(y []float64, sampleRate int) EnergyFeatures {
	if len(y) == 0 || sampleRate <= 0 {
		e.degrade("energy")
		return degradedEnergy()
	}

	rms := frameRMS(y)

	n := frameCount(len(y))
	centroids := make([]float64, n)
	for i := 0; i < n; i++ {
		centroids[i] = spectralCentroid(frameAt(y, i), sampleRate)
	}

	return EnergyFeatures{
		Mean:                 mean(rms),
		Variance:             variance(rms),
		SpectralCentroidMean: mean(centroids),
		ZeroCrossingRate:     mean(frameZCR(y)),
	}
}

// Rhythm detects onset events from the RMS envelope and measures the
// speech/silence balance. The silence threshold is the 30th percentile of
// frame RMS, so roughly the quietest third of a clip counts as pause.
func (e *Extractor) Rhythm(y []float64, sampleRate int) RhythmFeatures {
	if len(y) == 0 || sampleRate <= 0 {
		e.degrade("rhythm")
		return degradedRhythm()
	}

	rms := frameRMS(y)
	onsets := detectOnsets(rms, sampleRate)

	duration := float64(len(y)) / float64(sampleRate)
	rate := 0.0
	if duration > 0 {
		rate = float64(len(onsets)) / duration
	}

	var avgInterval, intervalVar float64
	if len(onsets) > 1 {
		intervals := make([]float64, len(onsets)-1)
		for i := 1; i < len(onsets); i++ {
			intervals[i-1] = onsets[i] - onsets[i-1]
		}
		avgInterval = mean(intervals)
		intervalVar = variance(intervals)
	}

	threshold := percentile(rms, 30)
	speech := 0
	for _, v := range rms {
		if v > threshold {
			speech++
		}
	}
	ratio := 0.0
	if len(rms) > 0 {
		ratio = float64(speech) / float64(len(rms))
	}

	return RhythmFeatures{
		SpeakingRate:     rate,
		AvgInterval:      avgInterval,
		IntervalVariance: intervalVar,
		SpeechRatio:      ratio,
	}
}

// detectOnsets returns onset times in seconds: frames where the RMS
// envelope rises sharply above its local past.
func detectOnsets(rms []float64, sampleRate int) []float64 {
	if len(rms) < 2 {
		return nil
	}

	// Positive energy flux, thresholded at its own mean to suppress
	// low-level flutter.
	flux := make([]float64, len(rms))
	for i := 1; i < len(rms); i++ {
		if d := rms[i] - rms[i-1]; d > 0 {
			flux[i] = d
		}
	}
	threshold := mean(flux) * 1.5

	var onsets []float64
	hop := float64(hopLength) / float64(sampleRate)
	for i := 1; i < len(flux)-1; i++ {
		if flux[i] > threshold && flux[i] >= flux[i-1] && flux[i] > flux[i+1] {
			onsets = append(onsets, float64(i)*hop)
		}
	}
	return onsets
}

func (e *Extractor) degrade(stage string) {
	metrics.DegradedExtractionsTotal.WithLabelValues(stage).Inc()
	e.log.Warn().Str("stage", stage).Msg("extraction degraded to neutral default")
}
