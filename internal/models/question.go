package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuestionType classifies how a question is answered.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeShortAnswer    QuestionType = "short_answer"
	TypeLongAnswer     QuestionType = "long_answer"
	TypeTrueFalse      QuestionType = "true_false"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeMultipleChoice, TypeFillBlank, TypeShortAnswer, TypeLongAnswer, TypeTrueFalse:
		return true
	}
	return false
}

// Open reports whether t is an open-form type. Open-form answers keep the
// exact-match correctness check but additionally receive generated feedback.
func (t QuestionType) Open() bool {
	return t == TypeShortAnswer || t == TypeLongAnswer
}

// QuestionSource records who created a question.
type QuestionSource string

const (
	SourceUser      QuestionSource = "user"
	SourceGenerated QuestionSource = "generated"
)

// Question belongs to a topic and one difficulty pool.
type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"topic_id"`
	Text          string         `gorm:"not null" json:"text"`
	Type          QuestionType   `gorm:"not null" json:"type"`
	Difficulty    Difficulty     `gorm:"not null;index" json:"difficulty"`
	CorrectAnswer string         `gorm:"not null;column:correct_answer" json:"correct_answer"`
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	Rationale     string         `json:"rationale,omitempty"`
	Source        QuestionSource `gorm:"not null;default:user" json:"source"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Question) TableName() string { return "questions" }

// OptionList decodes the stored option array. Nil for non-multiple-choice
// questions or when no options were stored.
func (q *Question) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions stores the option array for a multiple-choice question.
func (q *Question) SetOptions(opts []string) error {
	if len(opts) == 0 {
		q.Options = nil
		return nil
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = datatypes.JSON(raw)
	return nil
}
