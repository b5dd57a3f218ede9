package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCurrent_Missing(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	_, err := svc.Current(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrMissingProfile)
}

func TestProfileRegisterAndResolve(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	created, err := svc.Register(context.Background(), "user-1", "User One")
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.ExternalID)
	assert.Equal(t, "User One", created.DisplayName)

	resolved, err := svc.Current(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestProfileRegister_DefaultsDisplayName(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	created, err := svc.Register(context.Background(), "user-2", "  ")
	require.NoError(t, err)
	assert.Equal(t, "user-2", created.DisplayName)
}
