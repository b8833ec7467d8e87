// Package scenario generates conversation-practice scripts and scoring
// rubrics from a description, difficulty tier, and tags. Generation is
// deterministic template expansion with no model calls.
package scenario

import "strings"

// Step types used by the client's avatar runtime.
const (
	StepAvatarSpeak   = "avatar_speak"
	StepAvatarAsk     = "avatar_ask"
	StepAvatarRespond = "avatar_respond"
)

// Step is one turn of the generated conversation.
type Step struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"`
	Content          string   `json:"content"`
	ExpectedResponse string   `json:"expected_response,omitempty"`
	Hints            []string `json:"hints"`
}

// Script is a full generated conversation scenario.
type Script struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  int      `json:"difficulty"`
	Tags        []string `json:"tags"`
	Steps       []Step   `json:"steps"`
}

// Scenario archetypes, selected by tag first and description keywords second.
const (
	typeGreeting          = "greeting"
	typeStorytelling      = "storytelling"
	typeQuestionAnswer    = "question_answer"
	typeSocialInteraction = "social_interaction"
	typeHelpRequest       = "help_request"
	typeEmotionSharing    = "emotion_sharing"
	typeGeneral           = "general_conversation"
)

var titles = map[string]string{
	typeGreeting:          "Meeting a New Friend",
	typeStorytelling:      "Sharing Your Story",
	typeQuestionAnswer:    "Questions and Answers",
	typeSocialInteraction: "Playing Together",
	typeHelpRequest:       "Asking for Help",
	typeEmotionSharing:    "Sharing Feelings",
	typeGeneral:           "Conversation Practice",
}

var greetings = map[string]string{
	typeGreeting:          "Hi there! I'm excited to meet you today!",
	typeStorytelling:      "Hello! I can't wait to hear your story!",
	typeQuestionAnswer:    "Hi! I have some fun questions for us to talk about!",
	typeSocialInteraction: "Hey! Want to chat and have some fun together?",
	typeHelpRequest:       "Hi! Let's practice asking for help when we need it!",
	typeEmotionSharing:    "Hello! How are you feeling today?",
	typeGeneral:           "Hi there! I'm excited to practice conversation with you today!",
}

// GenerateScript builds a scenario script for the given description,
// difficulty tier (1, 2, or 3+), and tags. targetAge is accepted for API
// compatibility; the current templates do not vary by age.
func GenerateScript(description string, difficulty int, tags []string, targetAge int) Script {
	scenarioType := determineType(description, tags)

	steps := []Step{{
		ID:      "greeting",
		Type:    StepAvatarSpeak,
		Content: greetings[scenarioType],
		Hints:   []string{"Try saying hello back!", "You can wave or say hi!"},
	}}

	switch {
	case difficulty == 1:
		steps = append(steps, basicSteps()...)
	case difficulty == 2:
		steps = append(steps, intermediateSteps()...)
	case difficulty >= 3:
		steps = append(steps, advancedSteps()...)
	}

	steps = append(steps, Step{
		ID:      "conclusion",
		Type:    StepAvatarSpeak,
		Content: "Thank you for practicing with me! You did a great job in our conversation.",
		Hints:   []string{},
	})

	return Script{
		Title:       titles[scenarioType],
		Description: description,
		Difficulty:  difficulty,
		Tags:        tags,
		Steps:       steps,
	}
}

// determineType picks an archetype: explicit tags win, then description
// keywords, then the general fallback.
func determineType(description string, tags []string) string {
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	switch {
	case tagSet["greeting"] || tagSet["introduction"]:
		return typeGreeting
	case tagSet["storytelling"] || tagSet["narrative"]:
		return typeStorytelling
	case tagSet["question_answer"] || tagSet["interview"]:
		return typeQuestionAnswer
	}

	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "friend") || strings.Contains(desc, "playground"):
		return typeSocialInteraction
	case strings.Contains(desc, "help") || strings.Contains(desc, "request"):
		return typeHelpRequest
	case strings.Contains(desc, "emotion") || strings.Contains(desc, "feeling"):
		return typeEmotionSharing
	}

	return typeGeneral
}

func basicSteps() []Step {
	return []Step{
		{
			ID:               "main_topic",
			Type:             StepAvatarAsk,
			Content:          "What's your favorite thing to do?",
			ExpectedResponse: "hobby_response",
			Hints:            []string{"Think about something you really enjoy!", "Maybe a game, sport, or activity?"},
		},
		{
			ID:               "follow_up",
			Type:             StepAvatarRespond,
			Content:          "That sounds really fun! Can you tell me more about it?",
			ExpectedResponse: "elaboration",
			Hints:            []string{"Try to add more details!", "What do you like most about it?"},
		},
	}
}

func intermediateSteps() []Step {
	return []Step{
		{
			ID:               "main_topic",
			Type:             StepAvatarAsk,
			Content:          "Tell me about something interesting that happened to you recently.",
			ExpectedResponse: "story_response",
			Hints:            []string{"Think about your day or week", "What was exciting or different?"},
		},
		{
			ID:               "clarification",
			Type:             StepAvatarAsk,
			Content:          "That's interesting! How did that make you feel?",
			ExpectedResponse: "emotion_response",
			Hints:            []string{"Were you happy, excited, surprised?", "It's okay to share your feelings!"},
		},
		{
			ID:               "connection",
			Type:             StepAvatarRespond,
			Content:          "I can understand that feeling! Have you experienced something like that before?",
			ExpectedResponse: "comparison_response",
			Hints:            []string{"Think about similar experiences", "You can say yes or no and explain"},
		},
	}
}

func advancedSteps() []Step {
	return []Step{
		{
			ID:               "complex_topic",
			Type:             StepAvatarAsk,
			Content:          "If you could solve one problem in the world, what would it be and why?",
			ExpectedResponse: "opinion_response",
			Hints:            []string{"Think about things that bother you", "What would make the world better?"},
		},
		{
			ID:               "reasoning",
			Type:             StepAvatarAsk,
			Content:          "That's a thoughtful choice! How do you think we could start working on that?",
			ExpectedResponse: "solution_response",
			Hints:            []string{"What steps could people take?", "How might you contribute?"},
		},
		{
			ID:               "perspective",
			Type:             StepAvatarAsk,
			Content:          "What do you think other people might say about this topic?",
			ExpectedResponse: "perspective_response",
			Hints:            []string{"Consider different viewpoints", "Not everyone thinks the same way"},
		},
		{
			ID:               "reflection",
			Type:             StepAvatarRespond,
			Content:          "You've shared some really interesting thoughts! What did you learn from our conversation?",
			ExpectedResponse: "reflection_response",
			Hints:            []string{"What was new or surprising?", "How do you feel about our discussion?"},
		},
	}
}
