package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz author creating questions for a self-study quiz application.

Rules:
- Generate a single question for the given topic, difficulty tier, and question type.
- The question text must be clear, self-contained, and answerable without external material.
- The correct answer must be factually correct and unambiguous.
- For multiple_choice, provide exactly 4 options where exactly one is correct. Distractors should be plausible, not random.
- For true_false, the correct answer is the word "true" or "false" and the options array is empty.
- For fill_blank, the question text contains a single blank written as ___ and the correct answer is the missing word or phrase.
- For short_answer and long_answer, the options array is empty and the correct answer is a model answer.
- The rationale briefly explains why the correct answer is correct.
- Difficulty easy means recall of basic facts, medium means understanding and application, hard means analysis or less commonly known material.
- Do not repeat or trivially rephrase any question from the "already in this topic" list.`

// buildUserMessage constructs the user message from the input and config.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic.Title)
	if input.Topic.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", input.Topic.Description)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Question type: %s\n", input.Type)

	b.WriteString("\nAlready in this topic (do not duplicate):\n")
	b.WriteString(formatNegativeExamples(input.PriorQuestions, cfg.MaxNegativeExamples))

	return b.String()
}

// formatNegativeExamples renders prior question texts as a numbered list,
// keeping only the most recent max entries. Returns "None" when empty.
func formatNegativeExamples(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}

	if max > 0 && len(prior) > max {
		prior = prior[:max]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
