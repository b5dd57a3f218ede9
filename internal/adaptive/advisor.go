package adaptive

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/models"
)

// Action is the advisor's recommendation for where a session should go.
type Action string

const (
	ActionContinue           Action = "continue"
	ActionIncreaseDifficulty Action = "increase_difficulty"
	ActionDecreaseDifficulty Action = "decrease_difficulty"
	ActionEvolveTopic        Action = "evolve_topic"
	ActionSuggestSubtopic    Action = "suggest_subtopic"
)

// Advice is the structured recommendation returned by the collaborator.
// Action and Rationale are required; Difficulty and FocusArea apply only
// for the actions that use them.
type Advice struct {
	Action     Action            `json:"action"`
	Rationale  string            `json:"rationale"`
	Difficulty models.Difficulty `json:"difficulty,omitempty"`
	FocusArea  string            `json:"focus_area,omitempty"`
}

// adviceSchema is the JSON shape the advisor must return.
var adviceSchema = &llm.Schema{
	Name:        "session-advice",
	Description: "A recommendation for how an adaptive quiz session should evolve",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type": "string",
				"enum": []any{"continue", "increase_difficulty", "decrease_difficulty", "evolve_topic", "suggest_subtopic"},
			},
			"rationale": map[string]any{
				"type":        "string",
				"description": "Why this action fits the recent answer history",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard", ""},
				"description": "Target tier, for the difficulty actions",
			},
			"focus_area": map[string]any{
				"type":        "string",
				"description": "Suggested focus or subtopic, for the topic actions",
			},
		},
		"required":             []any{"action", "rationale"},
		"additionalProperties": false,
	},
}

const advisorSystemPrompt = `You are coaching an adaptive quiz session.

You receive the session's topic, current difficulty, and the recent answer history. Recommend exactly one action:
- "continue" when the current difficulty and focus are working.
- "increase_difficulty" or "decrease_difficulty" when the history shows the user is under- or over-challenged. Set the "difficulty" field to the target tier.
- "evolve_topic" when the user has clearly outgrown the current material. Set "focus_area" to the direction the topic should grow.
- "suggest_subtopic" when a narrower area needs attention. Set "focus_area" to that subtopic.

Always explain your choice in "rationale".`

// AnswerSummary is one line of answer history shown to the advisor.
type AnswerSummary struct {
	QuestionText string
	Submitted    string
	Correct      bool
}

// Advisor asks the generation collaborator how a session should evolve.
type Advisor struct {
	provider llm.Provider
}

// NewAdvisor creates an Advisor.
func NewAdvisor(provider llm.Provider) *Advisor {
	return &Advisor{provider: provider}
}

// advisorMaxTokens caps the advice response.
const advisorMaxTokens = 512

// Advise sends the session's recent history to the collaborator and returns
// its structured recommendation. The response is trusted structurally: the
// schema enforces field presence, nothing second-guesses the content.
func (a *Advisor) Advise(ctx context.Context, session *models.QuizSession, topic *models.Topic, history []AnswerSummary) (*Advice, error) {
	ctx = llm.WithPurpose(ctx, "advisor")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: advisorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAdvisorMessage(session, topic, history)},
		},
		Schema:    adviceSchema,
		MaxTokens: advisorMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("advice generation failed: %w", err)
	}

	var advice Advice
	if err := json.Unmarshal(resp.Content, &advice); err != nil {
		return nil, fmt.Errorf("parse advice: %w", err)
	}

	return &advice, nil
}

// Apply writes the advice's difficulty and focus-area fields onto the
// session. The caller persists the session afterwards.
func (advice *Advice) Apply(session *models.QuizSession) {
	switch advice.Action {
	case ActionIncreaseDifficulty:
		if advice.Difficulty.Valid() {
			session.CurrentDifficulty = advice.Difficulty
		} else {
			session.CurrentDifficulty = session.CurrentDifficulty.StepUp()
		}
	case ActionDecreaseDifficulty:
		if advice.Difficulty.Valid() {
			session.CurrentDifficulty = advice.Difficulty
		} else {
			session.CurrentDifficulty = session.CurrentDifficulty.StepDown()
		}
	case ActionEvolveTopic, ActionSuggestSubtopic:
		if advice.FocusArea != "" {
			session.FocusArea = advice.FocusArea
		}
	}
}

func buildAdvisorMessage(session *models.QuizSession, topic *models.Topic, history []AnswerSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic.Title)
	if topic.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", topic.Description)
	}
	fmt.Fprintf(&b, "Current difficulty: %s\n", session.CurrentDifficulty)
	fmt.Fprintf(&b, "Answered: %d, correct: %d\n", session.TotalQuestions, session.CorrectAnswers)
	if session.FocusArea != "" {
		fmt.Fprintf(&b, "Current focus area: %s\n", session.FocusArea)
	}

	b.WriteString("\nRecent answers:\n")
	if len(history) == 0 {
		b.WriteString("None\n")
	}
	for i, h := range history {
		verdict := "wrong"
		if h.Correct {
			verdict = "correct"
		}
		fmt.Fprintf(&b, "%d. [%s] Q: %s | A: %s\n", i+1, verdict, h.QuestionText, h.Submitted)
	}

	return b.String()
}
