package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
)

// LLMLogRepo persists LLM request log entries. It satisfies the llm
// package's RequestRecorder interface.
type LLMLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewLLMLogRepo creates a Postgres-backed LLMLogRepo.
func NewLLMLogRepo(db *gorm.DB, baseLog *logger.Logger) *LLMLogRepo {
	return &LLMLogRepo{db: db, log: baseLog.With("repo", "llm_log")}
}

// RecordLLMRequest inserts one log entry.
func (r *LLMLogRepo) RecordLLMRequest(ctx context.Context, entry *models.LLMRequestLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

// Recent returns the newest entries, optionally filtered by purpose.
func (r *LLMLogRepo) Recent(ctx context.Context, purpose string, limit int) ([]*models.LLMRequestLog, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if purpose != "" {
		q = q.Where("purpose = ?", purpose)
	}
	var entries []*models.LLMRequestLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, translate(err)
	}
	return entries, nil
}
