package models

import (
	"time"

	"github.com/google/uuid"
)

// LLMRequestLog records one call to the generation collaborator. Written
// best-effort by the llm logging decorator; a failed insert never fails the
// originating request.
type LLMRequestLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Provider     string    `gorm:"not null" json:"provider"`
	Model        string    `gorm:"not null" json:"model"`
	Purpose      string    `gorm:"not null;index" json:"purpose"`
	LatencyMs    int64     `gorm:"not null;column:latency_ms" json:"latency_ms"`
	InputTokens  int       `gorm:"column:input_tokens" json:"input_tokens"`
	OutputTokens int       `gorm:"column:output_tokens" json:"output_tokens"`
	Success      bool      `gorm:"not null" json:"success"`
	ErrorMessage string    `gorm:"column:error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LLMRequestLog) TableName() string { return "llm_request_logs" }
