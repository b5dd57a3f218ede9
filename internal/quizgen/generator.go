package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/models"
)

// Generator produces a question for the given input context.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*models.Question, error)
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response after schema validation.
type questionOutput struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	Rationale     string   `json:"rationale"`
}

// Generate requests one question from the provider and validates it.
// The returned question is not yet persisted; the caller decides that.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*models.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse generated question: %w", err)
	}

	q := &models.Question{
		ID:            uuid.New(),
		TopicID:       input.Topic.ID,
		Text:          raw.Text,
		Type:          models.QuestionType(raw.Type),
		Difficulty:    models.Difficulty(raw.Difficulty),
		CorrectAnswer: raw.CorrectAnswer,
		Rationale:     raw.Rationale,
		Source:        models.SourceGenerated,
	}
	if err := q.SetOptions(raw.Options); err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	// The requested tier wins over the model's self-assessment; the pool a
	// question lands in must match what the session asked for.
	q.Difficulty = input.Difficulty

	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}
