package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizSession is one continuous quiz-taking interaction for one profile on
// one topic. Counters are updated sequentially after every recorded answer;
// they mirror the session's answer records (last write wins, no locking).
type QuizSession struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"profile_id"`
	TopicID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"topic_id"`
	CurrentDifficulty Difficulty `gorm:"not null;column:current_difficulty" json:"current_difficulty"`
	TotalQuestions    int        `gorm:"not null;default:0;column:total_questions" json:"total_questions"`
	CorrectAnswers    int        `gorm:"not null;default:0;column:correct_answers" json:"correct_answers"`
	FocusArea         string     `gorm:"column:focus_area" json:"focus_area,omitempty"`
	Active            bool       `gorm:"not null;default:true" json:"active"`
	StartedAt         time.Time  `gorm:"autoCreateTime" json:"started_at"`
	EndedAt           *time.Time `json:"ended_at,omitempty"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuizSession) TableName() string { return "quiz_sessions" }

// Accuracy returns the fraction of correct answers, 0 when nothing has been
// answered yet.
func (s *QuizSession) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions)
}
