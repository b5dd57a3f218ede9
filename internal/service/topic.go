package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/store"
)

// TopicService manages topics and their question pools.
type TopicService struct {
	topics    store.TopicRepo
	questions store.QuestionRepo
}

// NewTopicService creates a TopicService.
func NewTopicService(topics store.TopicRepo, questions store.QuestionRepo) *TopicService {
	return &TopicService{topics: topics, questions: questions}
}

// CreateTopicInput carries the fields for a new topic.
type CreateTopicInput struct {
	Title       string
	Description string
	Public      bool
}

// Create creates a topic owned by the profile.
func (s *TopicService) Create(ctx context.Context, owner *models.Profile, input CreateTopicInput) (*models.Topic, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("topic title is required")
	}

	t := &models.Topic{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Public:      input.Public,
	}
	if err := s.topics.Create(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "create topic", Err: err}
	}
	return t, nil
}

// Get returns a topic the profile may read.
func (s *TopicService) Get(ctx context.Context, profile *models.Profile, topicID uuid.UUID) (*models.Topic, error) {
	t, err := s.topics.GetByID(ctx, topicID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load topic", Err: err}
	}
	if !t.ReadableBy(profile.ID) {
		return nil, ErrForbidden
	}
	return t, nil
}

// List returns all topics readable by the profile.
func (s *TopicService) List(ctx context.Context, profile *models.Profile) ([]*models.Topic, error) {
	topics, err := s.topics.ListVisible(ctx, profile.ID)
	if err != nil {
		return nil, &PersistenceError{Op: "list topics", Err: err}
	}
	return topics, nil
}

// UpdateMetadata edits a topic's title, description, and visibility.
// Only the owner may edit; nothing else about a topic ever changes.
func (s *TopicService) UpdateMetadata(ctx context.Context, profile *models.Profile, topicID uuid.UUID, input CreateTopicInput) (*models.Topic, error) {
	t, err := s.Get(ctx, profile, topicID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != profile.ID {
		return nil, ErrForbidden
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		t.Title = title
	}
	t.Description = strings.TrimSpace(input.Description)
	t.Public = input.Public

	if err := s.topics.UpdateMetadata(ctx, t); err != nil {
		return nil, &PersistenceError{Op: "update topic", Err: err}
	}
	return t, nil
}

// AddQuestionInput carries the fields for a user-authored question.
type AddQuestionInput struct {
	Text          string
	Type          models.QuestionType
	Difficulty    models.Difficulty
	CorrectAnswer string
	Options       []string
	Rationale     string
}

// AddQuestion adds a user-authored question to a topic the profile owns.
func (s *TopicService) AddQuestion(ctx context.Context, profile *models.Profile, topicID uuid.UUID, input AddQuestionInput) (*models.Question, error) {
	t, err := s.Get(ctx, profile, topicID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != profile.ID {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("question text is required")
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("unknown question type %q", input.Type)
	}
	if !input.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", input.Difficulty)
	}
	if strings.TrimSpace(input.CorrectAnswer) == "" {
		return nil, fmt.Errorf("correct answer is required")
	}
	if input.Type == models.TypeMultipleChoice && len(input.Options) < 2 {
		return nil, fmt.Errorf("multiple choice needs at least 2 options")
	}
	if input.Type != models.TypeMultipleChoice && len(input.Options) > 0 {
		return nil, fmt.Errorf("options are only valid for multiple choice")
	}

	q := &models.Question{
		ID:            uuid.New(),
		TopicID:       t.ID,
		Text:          strings.TrimSpace(input.Text),
		Type:          input.Type,
		Difficulty:    input.Difficulty,
		CorrectAnswer: strings.TrimSpace(input.CorrectAnswer),
		Rationale:     strings.TrimSpace(input.Rationale),
		Source:        models.SourceUser,
	}
	if err := q.SetOptions(input.Options); err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, &PersistenceError{Op: "create question", Err: err}
	}
	return q, nil
}

// Questions lists a topic's questions for a profile that may read it.
func (s *TopicService) Questions(ctx context.Context, profile *models.Profile, topicID uuid.UUID) ([]*models.Question, error) {
	if _, err := s.Get(ctx, profile, topicID); err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, &PersistenceError{Op: "list questions", Err: err}
	}
	return questions, nil
}
