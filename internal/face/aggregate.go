package face

// Event thresholds: an instantaneous score above these marks a notable
// moment in the timeline.
const (
	SmileEventThreshold      = 0.6
	EyeContactEventThreshold = 0.7
)

// Event is a tagged interval in the analyzed clip.
type Event struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Tag   string  `json:"tag"`
}

// DetectEvents emits timeline events for one sampled frame: a smile event
// when smile clears its threshold, an eye_contact event likewise. interval
// is the time covered by this sample.
func DetectEvents(timestamp, interval, smile, eyeContact float64) []Event {
	var events []Event
	if smile > SmileEventThreshold {
		events = append(events, Event{Start: timestamp, End: timestamp + interval, Tag: "smile"})
	}
	if eyeContact > EyeContactEventThreshold {
		events = append(events, Event{Start: timestamp, End: timestamp + interval, Tag: "eye_contact"})
	}
	return events
}

// MeanScore averages a scalar score series. Empty input yields 0.
func MeanScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// AggregateExpressions averages per-frame emotion distributions label by
// label and renormalizes so the result sums to 1. Empty input yields the
// all-neutral distribution.
func AggregateExpressions(frames []map[string]float64) map[string]float64 {
	if len(frames) == 0 {
		return map[string]float64{EmotionNeutral: 1.0}
	}

	sums := make(map[string]float64)
	for _, frame := range frames {
		for emotion, p := range frame {
			sums[emotion] += p
		}
	}

	n := float64(len(frames))
	for emotion, total := range sums {
		sums[emotion] = total / n
	}
	return Renormalize(sums)
}

// AggregateGaze averages per-frame gaze distributions over the fixed
// {left, center, right} support and renormalizes. Empty input yields the
// near-uniform default.
func AggregateGaze(frames []map[string]float64) map[string]float64 {
	if len(frames) == 0 {
		return map[string]float64{"left": 0.33, "center": 0.34, "right": 0.33}
	}

	sums := map[string]float64{"left": 0, "center": 0, "right": 0}
	for _, frame := range frames {
		for dir, p := range frame {
			sums[dir] += p
		}
	}

	n := float64(len(frames))
	for dir, total := range sums {
		sums[dir] = total / n
	}
	return Renormalize(sums)
}
