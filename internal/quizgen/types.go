package quizgen

import (
	"fmt"

	"github.com/abhisek/quizly/internal/models"
)

// GenerateInput carries the context for one generation request.
type GenerateInput struct {
	// Topic supplies title and description for the prompt.
	Topic *models.Topic

	// Difficulty is the tier the question must target.
	Difficulty models.Difficulty

	// Type is the requested question type.
	Type models.QuestionType

	// PriorQuestions are existing question texts used as negative examples
	// so the model avoids duplicates. Capped by Config.MaxNegativeExamples.
	PriorQuestions []string
}

// Validator checks a generated question before it is accepted.
type Validator interface {
	Name() string
	Validate(q *models.Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a generated question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Validator, e.Message)
}

// Config holds generation parameters.
type Config struct {
	// MaxTokens caps the generation response.
	MaxTokens int

	// Temperature for generation. Question generation wants some variety.
	Temperature float64

	// MaxNegativeExamples caps how many existing questions are embedded in
	// the prompt as duplicates to avoid.
	MaxNegativeExamples int

	// Validators run in order against every generated question.
	Validators []Validator
}

// DefaultConfig returns the stock generation parameters.
func DefaultConfig() Config {
	return Config{
		MaxTokens:           1024,
		Temperature:         0.7,
		MaxNegativeExamples: 5,
		Validators:          []Validator{&StructuralValidator{}},
	}
}
