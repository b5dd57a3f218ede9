package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-level record for an authenticated identity.
// Every operation resolves the caller's profile first; a missing profile
// aborts the operation.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID  string    `gorm:"uniqueIndex;not null;column:external_id" json:"external_id"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
