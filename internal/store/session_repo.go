package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
)

// SessionRepo provides access to quiz session records.
type SessionRepo interface {
	Create(ctx context.Context, s *models.QuizSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuizSession, error)
	// Save writes the full session row. Sequential last-write-wins
	// updates; concurrent edits from multiple devices are not guarded.
	Save(ctx context.Context, s *models.QuizSession) error
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*models.QuizSession, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewSessionRepo creates a Postgres-backed SessionRepo.
func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "session")}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.QuizSession) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *sessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	var s models.QuizSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *sessionRepo) Save(ctx context.Context, s *models.QuizSession) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *sessionRepo) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*models.QuizSession, error) {
	var sessions []*models.QuizSession
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, translate(err)
	}
	return sessions, nil
}
