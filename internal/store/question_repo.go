package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
)

// QuestionRepo provides access to question records.
type QuestionRepo interface {
	Create(ctx context.Context, q *models.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	// FirstUnused returns the oldest question in the (topic, difficulty)
	// pool whose ID is not in exclude. ErrNotFound when the pool is
	// exhausted. The fixed ordering makes reuse deterministic.
	FirstUnused(ctx context.Context, topicID uuid.UUID, difficulty models.Difficulty, exclude []uuid.UUID) (*models.Question, error)
	// RecentTexts returns up to limit question texts for the topic,
	// newest first. Used as negative examples in generation prompts.
	RecentTexts(ctx context.Context, topicID uuid.UUID, limit int) ([]string, error)
	ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Question, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewQuestionRepo creates a Postgres-backed QuestionRepo.
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "question")}
}

func (r *questionRepo) Create(ctx context.Context, q *models.Question) error {
	return translate(r.db.WithContext(ctx).Create(q).Error)
}

func (r *questionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	var q models.Question
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (r *questionRepo) FirstUnused(ctx context.Context, topicID uuid.UUID, difficulty models.Difficulty, exclude []uuid.UUID) (*models.Question, error) {
	query := r.db.WithContext(ctx).
		Where("topic_id = ? AND difficulty = ?", topicID, difficulty)
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var q models.Question
	if err := query.Order("created_at ASC").First(&q).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (r *questionRepo) RecentTexts(ctx context.Context, topicID uuid.UUID, limit int) ([]string, error) {
	var texts []string
	err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("topic_id = ?", topicID).
		Order("created_at DESC").
		Limit(limit).
		Pluck("text", &texts).Error
	if err != nil {
		return nil, translate(err)
	}
	return texts, nil
}

func (r *questionRepo) ListByTopic(ctx context.Context, topicID uuid.UUID) ([]*models.Question, error) {
	var questions []*models.Question
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, translate(err)
	}
	return questions, nil
}
