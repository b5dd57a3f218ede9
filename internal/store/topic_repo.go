package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
)

// TopicRepo provides access to topic records.
type TopicRepo interface {
	Create(ctx context.Context, t *models.Topic) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	UpdateMetadata(ctx context.Context, t *models.Topic) error
	// ListVisible returns topics readable by the profile: its own plus
	// public ones, newest first.
	ListVisible(ctx context.Context, profileID uuid.UUID) ([]*models.Topic, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewTopicRepo creates a Postgres-backed TopicRepo.
func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "topic")}
}

func (r *topicRepo) Create(ctx context.Context, t *models.Topic) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *topicRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	var t models.Topic
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *topicRepo) UpdateMetadata(ctx context.Context, t *models.Topic) error {
	// Topics are immutable after creation except for their metadata.
	return translate(r.db.WithContext(ctx).
		Model(&models.Topic{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"public":      t.Public,
		}).Error)
}

func (r *topicRepo) ListVisible(ctx context.Context, profileID uuid.UUID) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := r.db.WithContext(ctx).
		Where("public = ? OR owner_id = ?", true, profileID).
		Order("created_at DESC").
		Find(&topics).Error
	if err != nil {
		return nil, translate(err)
	}
	return topics, nil
}
