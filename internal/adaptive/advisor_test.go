package adaptive

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/models"
)

func testSession() *models.QuizSession {
	return &models.QuizSession{
		ID:                uuid.New(),
		CurrentDifficulty: models.DifficultyMedium,
		TotalQuestions:    8,
		CorrectAnswers:    7,
		Active:            true,
	}
}

func testTopic() *models.Topic {
	return &models.Topic{
		ID:          uuid.New(),
		Title:       "European Capitals",
		Description: "Capital cities of European countries",
	}
}

func TestAdvise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"action": "increase_difficulty",
			"rationale": "Seven of eight correct, the material is too easy.",
			"difficulty": "hard"
		}`),
	})
	advisor := NewAdvisor(mock)

	history := []AnswerSummary{
		{QuestionText: "Capital of France?", Submitted: "Paris", Correct: true},
		{QuestionText: "Capital of Spain?", Submitted: "Lisbon", Correct: false},
	}

	advice, err := advisor.Advise(context.Background(), testSession(), testTopic(), history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice.Action != ActionIncreaseDifficulty {
		t.Errorf("expected increase_difficulty, got %q", advice.Action)
	}
	if advice.Difficulty != models.DifficultyHard {
		t.Errorf("expected hard, got %q", advice.Difficulty)
	}
	if advice.Rationale == "" {
		t.Error("expected a rationale")
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "European Capitals") {
		t.Errorf("prompt missing topic title:\n%s", msg)
	}
	if !strings.Contains(msg, "Capital of Spain?") {
		t.Errorf("prompt missing history entry:\n%s", msg)
	}
	if !strings.Contains(msg, "[wrong]") || !strings.Contains(msg, "[correct]") {
		t.Errorf("prompt missing verdicts:\n%s", msg)
	}
}

func TestAdvise_EmptyHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"action": "continue", "rationale": "Too little signal yet."}`),
	})
	advisor := NewAdvisor(mock)

	advice, err := advisor.Advise(context.Background(), testSession(), testTopic(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice.Action != ActionContinue {
		t.Errorf("expected continue, got %q", advice.Action)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "None") {
		t.Error("empty history should render as None")
	}
}

func TestAdvise_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	advisor := NewAdvisor(mock)

	if _, err := advisor.Advise(context.Background(), testSession(), testTopic(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestAdviceApply(t *testing.T) {
	tests := []struct {
		name           string
		advice         Advice
		wantDifficulty models.Difficulty
		wantFocus      string
	}{
		{
			"increase with explicit tier",
			Advice{Action: ActionIncreaseDifficulty, Difficulty: models.DifficultyHard},
			models.DifficultyHard, "",
		},
		{
			"increase without tier steps up",
			Advice{Action: ActionIncreaseDifficulty},
			models.DifficultyHard, "",
		},
		{
			"decrease without tier steps down",
			Advice{Action: ActionDecreaseDifficulty},
			models.DifficultyEasy, "",
		},
		{
			"evolve topic sets focus",
			Advice{Action: ActionEvolveTopic, FocusArea: "Asian capitals"},
			models.DifficultyMedium, "Asian capitals",
		},
		{
			"suggest subtopic sets focus",
			Advice{Action: ActionSuggestSubtopic, FocusArea: "Balkan states"},
			models.DifficultyMedium, "Balkan states",
		},
		{
			"continue changes nothing",
			Advice{Action: ActionContinue},
			models.DifficultyMedium, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &models.QuizSession{CurrentDifficulty: models.DifficultyMedium}
			tt.advice.Apply(session)
			if session.CurrentDifficulty != tt.wantDifficulty {
				t.Errorf("difficulty = %s, want %s", session.CurrentDifficulty, tt.wantDifficulty)
			}
			if session.FocusArea != tt.wantFocus {
				t.Errorf("focus = %q, want %q", session.FocusArea, tt.wantFocus)
			}
		})
	}
}
