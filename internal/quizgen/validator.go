package quizgen

import (
	"strings"

	"github.com/abhisek/quizly/internal/models"
)

// maxQuestionLength bounds the question text; anything longer is almost
// certainly the model rambling.
const maxQuestionLength = 1000

// StructuralValidator checks that a generated question has the required
// fields, a valid type, and internally consistent options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *models.Question, input GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("question text is empty")
	}
	if len(q.Text) > maxQuestionLength {
		return fail("question text is too long")
	}
	if !q.Type.Valid() {
		return fail("unknown question type " + string(q.Type))
	}
	if q.Type != input.Type {
		return fail("generated type " + string(q.Type) + " does not match requested " + string(input.Type))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fail("correct answer is empty")
	}

	opts := q.OptionList()

	switch q.Type {
	case models.TypeMultipleChoice:
		if len(opts) < 2 {
			return fail("multiple choice needs at least 2 options")
		}
		if !containsFold(opts, q.CorrectAnswer) {
			return fail("correct answer is not among the options")
		}
	case models.TypeTrueFalse:
		answer := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
		if answer != "true" && answer != "false" {
			return fail("true/false answer must be \"true\" or \"false\"")
		}
	default:
		if len(opts) > 0 {
			return fail("options are only valid for multiple choice")
		}
	}

	return nil
}

func containsFold(list []string, target string) bool {
	target = strings.TrimSpace(target)
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), target) {
			return true
		}
	}
	return false
}
