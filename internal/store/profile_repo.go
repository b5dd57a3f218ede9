package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/models"
)

// ProfileRepo provides access to profile records.
type ProfileRepo interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByExternalID(ctx context.Context, externalID string) (*models.Profile, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewProfileRepo creates a Postgres-backed ProfileRepo.
func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "profile")}
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *profileRepo) GetByExternalID(ctx context.Context, externalID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
