package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
)

// AnswerRepo provides access to answer records. Records are append-only.
type AnswerRepo interface {
	Create(ctx context.Context, a *models.AnswerRecord) error
	// ListBySession returns the session's answers in submission order,
	// capped at limit when limit > 0.
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.AnswerRecord, error)
	// QuestionIDs returns the IDs of all questions answered in the session.
	QuestionIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewAnswerRepo creates a Postgres-backed AnswerRepo.
func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	return &answerRepo{db: db, log: baseLog.With("repo", "answer")}
}

func (r *answerRepo) Create(ctx context.Context, a *models.AnswerRecord) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *answerRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*models.AnswerRecord, error) {
	query := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var answers []*models.AnswerRecord
	if err := query.Find(&answers).Error; err != nil {
		return nil, translate(err)
	}
	return answers, nil
}

func (r *answerRepo) QuestionIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.AnswerRecord{}).
		Where("session_id = ?", sessionID).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}
