package quizgen

import (
	"strings"
	"testing"

	"github.com/abhisek/quizly/internal/models"
)

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Topic:      testTopic(),
		Difficulty: models.DifficultyMedium,
		Type:       models.TypeFillBlank,
		PriorQuestions: []string{
			"What is the capital of France?",
			"What is the capital of Spain?",
		},
	}, DefaultConfig())

	for _, want := range []string{
		"European Capitals",
		"Capital cities of European countries",
		"Difficulty: medium",
		"Question type: fill_blank",
		"1. What is the capital of France?",
		"2. What is the capital of Spain?",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatNegativeExamples(t *testing.T) {
	if got := formatNegativeExamples(nil, 5); got != "None" {
		t.Errorf("expected None, got %q", got)
	}

	got := formatNegativeExamples([]string{"a", "b", "c"}, 2)
	if strings.Contains(got, "c") {
		t.Errorf("expected cap at 2 entries, got %q", got)
	}
	if !strings.Contains(got, "1. a") || !strings.Contains(got, "2. b") {
		t.Errorf("unexpected formatting: %q", got)
	}
}
