package quizgen

import "github.com/abhisek/quizly/internal/llm"

// QuestionSchema defines the JSON shape for generated questions. The
// generation collaborator must return exactly these fields; anything else
// is rejected before a question record is created.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single quiz question with its correct answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the user, self-contained plain text",
			},
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{"multiple_choice", "fill_blank", "short_answer", "long_answer", "true_false"},
				"description": "How the user answers the question",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "The difficulty tier this question targets",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For multiple_choice: the text of the correct option. For true_false: \"true\" or \"false\".",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Exactly 4 options for multiple_choice, one of them correct. Empty array for every other type.",
			},
			"rationale": map[string]any{
				"type":        "string",
				"description": "A short explanation of why the correct answer is correct",
			},
		},
		"required":             []any{"text", "type", "difficulty", "correct_answer", "options", "rationale"},
		"additionalProperties": false,
	},
}
