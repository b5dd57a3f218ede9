package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizly/internal/models"
	"github.com/abhisek/quizly/internal/store"
)

// ProfileService resolves and registers profiles for authenticated
// identities.
type ProfileService struct {
	profiles store.ProfileRepo
}

// NewProfileService creates a ProfileService.
func NewProfileService(profiles store.ProfileRepo) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Current returns the profile for the given external identity.
// ErrMissingProfile when none exists.
func (s *ProfileService) Current(ctx context.Context, externalID string) (*models.Profile, error) {
	p, err := s.profiles.GetByExternalID(ctx, externalID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMissingProfile
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load profile", Err: err}
	}
	return p, nil
}

// Register creates a profile for an identity seen for the first time.
func (s *ProfileService) Register(ctx context.Context, externalID, displayName string) (*models.Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = externalID
	}

	p := &models.Profile{
		ID:          uuid.New(),
		ExternalID:  externalID,
		DisplayName: displayName,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, &PersistenceError{Op: "create profile", Err: err}
	}
	return p, nil
}
