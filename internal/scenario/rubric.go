package scenario

import "strconv"

// Rubric criteria. Every level scores all four at equal weight.
const (
	CriterionEyeContact    = "eye_contact"
	CriterionSpeechClarity = "speech_clarity"
	CriterionEngagement    = "engagement"
	CriterionTurnTaking    = "turn_taking"
)

// rubricLevels is the number of achievement levels in a rubric.
const rubricLevels = 5

// CriterionBand is the weight and pass threshold for one criterion at one
// level.
type CriterionBand struct {
	Weight    float64 `json:"weight"`
	Threshold float64 `json:"threshold"`
}

// Level holds the four criterion bands for one achievement level.
type Level struct {
	EyeContact    CriterionBand `json:"eye_contact"`
	SpeechClarity CriterionBand `json:"speech_clarity"`
	Engagement    CriterionBand `json:"engagement"`
	TurnTaking    CriterionBand `json:"turn_taking"`
}

// Rubric is the scoring guide attached to a generated scenario: levels
// keyed "1" through "5" plus positive and improvement feedback pools.
type Rubric struct {
	Levels   map[string]Level    `json:"levels"`
	Feedback map[string][]string `json:"feedback"`
}

// GenerateRubric builds the rubric for a scenario. Thresholds rise with
// both the level and the scenario difficulty, capped at 0.9 so the top
// band stays reachable. Tags extend the feedback pools with
// criterion-specific messages.
func GenerateRubric(difficulty int, tags []string) Rubric {
	levels := make(map[string]Level, rubricLevels)
	for level := 1; level <= rubricLevels; level++ {
		threshold := 0.3 + float64(level-1)*0.1 + float64(difficulty-1)*0.05
		if threshold > 0.9 {
			threshold = 0.9
		}
		band := CriterionBand{Weight: 0.25, Threshold: threshold}
		levels[strconv.Itoa(level)] = Level{
			EyeContact:    band,
			SpeechClarity: band,
			Engagement:    band,
			TurnTaking:    band,
		}
	}

	feedback := map[string][]string{
		"positive": {
			"Great job maintaining eye contact!",
			"Your speech was very clear!",
			"I can see you're really engaged in our conversation!",
			"Excellent turn-taking!",
			"You're doing wonderfully!",
			"I love how you're participating!",
			"Your responses show great understanding!",
		},
		"improvement": {
			"Try to look at me a bit more during our conversation",
			"Take your time and speak clearly",
			"Show me you're interested by asking questions too",
			"Remember to wait for me to finish before responding",
			"Let's practice speaking a little louder",
			"Try to give more detailed responses",
			"Great effort! Let's keep practicing together",
		},
	}

	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	if tagSet[CriterionEyeContact] {
		feedback["positive"] = append(feedback["positive"],
			"Amazing eye contact! You're looking right at me!",
			"I can tell you're really focused on our conversation!",
		)
		feedback["improvement"] = append(feedback["improvement"],
			"Remember to look at my face while we talk",
			"Try to look at me when you're speaking",
		)
	}

	if tagSet[CriterionTurnTaking] {
		feedback["positive"] = append(feedback["positive"],
			"Perfect timing! You waited for me to finish!",
			"Great job taking turns in our conversation!",
		)
		feedback["improvement"] = append(feedback["improvement"],
			"Let's practice waiting for each other to finish talking",
			"Remember: listen, then respond",
		)
	}

	return Rubric{Levels: levels, Feedback: feedback}
}
