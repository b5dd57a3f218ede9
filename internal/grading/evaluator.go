package grading

import (
	"strings"

	"github.com/abhisek/quizly/internal/models"
)

// Normalize prepares an answer string for comparison: trimmed, lowercased,
// inner whitespace runs collapsed to a single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Grade compares a submitted answer against the question's stored answer.
// Correctness is normalized string equality for every type; open-form types
// additionally receive generated feedback, but that never changes the flag.
func Grade(q *models.Question, submitted string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}
	return Normalize(submitted) == Normalize(q.CorrectAnswer)
}
