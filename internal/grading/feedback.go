package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/models"
)

const feedbackSystemPrompt = `You are a tutor reviewing a quiz answer.

Rules:
- Write 2-4 sentences of qualitative feedback on the submitted answer.
- Compare it to the reference answer: say what the answer got right, what it missed, and one concrete way to improve.
- Be encouraging but honest. Address the user directly.
- Plain text only: no markdown, no lists, no preamble.`

// feedbackMaxTokens caps feedback responses; a few sentences is plenty.
const feedbackMaxTokens = 512

// FeedbackGenerator produces qualitative feedback for open-form answers.
type FeedbackGenerator struct {
	provider llm.Provider
}

// NewFeedbackGenerator creates a FeedbackGenerator.
func NewFeedbackGenerator(provider llm.Provider) *FeedbackGenerator {
	return &FeedbackGenerator{provider: provider}
}

// Feedback requests feedback text for a submitted open-form answer.
// Feedback is display-only and never alters correctness; callers treat a
// failure here as degradable.
func (f *FeedbackGenerator) Feedback(ctx context.Context, q *models.Question, submitted string) (string, error) {
	ctx = llm.WithPurpose(ctx, "feedback")

	resp, err := f.provider.Generate(ctx, llm.Request{
		System: feedbackSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFeedbackMessage(q, submitted)},
		},
		MaxTokens: feedbackMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("feedback generation failed: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

func buildFeedbackMessage(q *models.Question, submitted string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Question type: %s\n", q.Type)
	fmt.Fprintf(&b, "Reference answer: %s\n", q.CorrectAnswer)
	if q.Rationale != "" {
		fmt.Fprintf(&b, "Rationale: %s\n", q.Rationale)
	}
	fmt.Fprintf(&b, "Submitted answer: %s\n", submitted)
	return b.String()
}
