package quizgen

import (
	"strings"
	"testing"

	"github.com/abhisek/quizly/internal/models"
)

func validMC(t *testing.T) *models.Question {
	t.Helper()
	q := &models.Question{
		Text:          "What is the capital of France?",
		Type:          models.TypeMultipleChoice,
		Difficulty:    models.DifficultyEasy,
		CorrectAnswer: "Paris",
	}
	if err := q.SetOptions([]string{"Paris", "Lyon", "Marseille", "Nice"}); err != nil {
		t.Fatalf("set options: %v", err)
	}
	return q
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	input := GenerateInput{Type: models.TypeMultipleChoice}

	if err := v.Validate(validMC(t), input); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}
}

func TestStructuralValidator_Rejections(t *testing.T) {
	v := &StructuralValidator{}

	tests := []struct {
		name    string
		mutate  func(t *testing.T, q *models.Question)
		reqType models.QuestionType
		wantMsg string
	}{
		{
			"empty text",
			func(t *testing.T, q *models.Question) { q.Text = "  " },
			models.TypeMultipleChoice,
			"text is empty",
		},
		{
			"too long",
			func(t *testing.T, q *models.Question) { q.Text = strings.Repeat("x", maxQuestionLength+1) },
			models.TypeMultipleChoice,
			"too long",
		},
		{
			"unknown type",
			func(t *testing.T, q *models.Question) { q.Type = "essay" },
			models.TypeMultipleChoice,
			"unknown question type",
		},
		{
			"type mismatch",
			func(t *testing.T, q *models.Question) { q.Type = models.TypeFillBlank },
			models.TypeMultipleChoice,
			"does not match requested",
		},
		{
			"empty answer",
			func(t *testing.T, q *models.Question) { q.CorrectAnswer = "" },
			models.TypeMultipleChoice,
			"correct answer is empty",
		},
		{
			"too few options",
			func(t *testing.T, q *models.Question) {
				if err := q.SetOptions([]string{"Paris"}); err != nil {
					t.Fatal(err)
				}
			},
			models.TypeMultipleChoice,
			"at least 2 options",
		},
		{
			"answer not among options",
			func(t *testing.T, q *models.Question) { q.CorrectAnswer = "Berlin" },
			models.TypeMultipleChoice,
			"not among the options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validMC(t)
			tt.mutate(t, q)
			err := v.Validate(q, GenerateInput{Type: tt.reqType})
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestStructuralValidator_AnswerMatchIgnoresCase(t *testing.T) {
	v := &StructuralValidator{}
	q := validMC(t)
	q.CorrectAnswer = " PARIS "

	if err := v.Validate(q, GenerateInput{Type: models.TypeMultipleChoice}); err != nil {
		t.Errorf("case-insensitive match rejected: %v", err)
	}
}

func TestStructuralValidator_TrueFalse(t *testing.T) {
	v := &StructuralValidator{}
	input := GenerateInput{Type: models.TypeTrueFalse}

	q := &models.Question{
		Text:          "The Danube flows through Vienna.",
		Type:          models.TypeTrueFalse,
		CorrectAnswer: "True",
	}
	if err := v.Validate(q, input); err != nil {
		t.Errorf("valid true/false rejected: %v", err)
	}

	q.CorrectAnswer = "yes"
	if err := v.Validate(q, input); err == nil {
		t.Error("expected rejection of non-boolean answer")
	}
}

func TestStructuralValidator_OptionsOnlyForMultipleChoice(t *testing.T) {
	v := &StructuralValidator{}
	q := &models.Question{
		Text:          "Which river runs through Budapest?",
		Type:          models.TypeShortAnswer,
		CorrectAnswer: "The Danube",
	}
	if err := q.SetOptions([]string{"The Danube", "The Rhine"}); err != nil {
		t.Fatal(err)
	}

	if err := v.Validate(q, GenerateInput{Type: models.TypeShortAnswer}); err == nil {
		t.Error("expected rejection of options on a short answer question")
	}
}
