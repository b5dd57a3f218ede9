package models

import (
	"time"

	"github.com/google/uuid"
)

// AnswerRecord is one submitted answer within a session. Append-only; never
// mutated after creation.
type AnswerRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Submitted  string    `gorm:"not null" json:"submitted"`
	Correct    bool      `gorm:"not null" json:"correct"`
	Feedback   string    `json:"feedback,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AnswerRecord) TableName() string { return "answer_records" }
