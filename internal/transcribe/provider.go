package transcribe

import "context"

// Provider is the interface for speech-to-text backends.
type Provider interface {
	Transcribe(ctx context.Context, audioPath string, opts Opts) (*Response, error)
	Name() string  // "whisper"
	Model() string // model identifier for logs
}

// Opts are per-request transcription options.
type Opts struct {
	Language    string  // ISO 639-1 code; defaults to "en"
	Temperature float64 // sampling temperature
}

// Response is the common transcription result from any provider.
type Response struct {
	Text     string
	Language string
	Duration float64         // audio duration in seconds
	Words    []WordTimestamp // nil if the provider omits word timestamps
	Segments []Segment       // segment-level timing, used as a word fallback
}

// WordTimestamp is a single transcribed word with timing and confidence.
type WordTimestamp struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Segment is a phrase-level span from the transcription model.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
