package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a named subject area containing a pool of questions.
// Immutable after creation except for metadata edits (title, description,
// visibility).
type Topic struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Public      bool      `gorm:"not null;default:false" json:"public"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Topic) TableName() string { return "topics" }

// ReadableBy reports whether the profile may read this topic:
// public topics are readable by anyone, private ones only by their owner.
func (t *Topic) ReadableBy(profileID uuid.UUID) bool {
	return t.Public || t.OwnerID == profileID
}
